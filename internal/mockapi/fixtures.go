package mockapi

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/ledgerline/ledgerline-mobile/internal/rbac"
)

// Account is a seeded backend user.
type Account struct {
	ID           int64
	Email        string
	PasswordHash []byte
	Role         string
	Grants       []rbac.Grant
}

// Record is one backend row. Rows are schemaless maps so the fixtures can
// reproduce the backend's loose typing, string amounts included.
type Record = map[string]any

// Fixtures is the in-memory data store behind the mock server.
type Fixtures struct {
	mu       sync.Mutex
	accounts []Account
	records  map[string][]Record
	tokens   map[string]int64
	nextID   int64
	perPage  int
}

// DefaultPassword is the password every seeded account accepts.
const DefaultPassword = "ledgerline"

// Seed builds a populated fixture set: one admin, one staff user with a
// narrow grant list, and enough rows per module to exercise paging.
func Seed() *Fixtures {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	f := &Fixtures{
		records: make(map[string][]Record),
		tokens:  make(map[string]int64),
		nextID:  1000,
		perPage: 10,
	}
	f.accounts = []Account{
		{
			ID: 1, Email: "admin@ledgerline.test", PasswordHash: hash, Role: "admin",
		},
		{
			ID: 2, Email: "staff@ledgerline.test", PasswordHash: hash, Role: "staff",
			Grants: []rbac.Grant{
				{Name: "expenses.view", Module: "expenses", Type: "action"},
				{Name: "expenses.create", Module: "expenses", Type: "action"},
				{Name: "invoices.management", Module: "invoices", Type: "module"},
				{Name: "return_invoices.view", Module: "return_invoices", Type: "action"},
				{Name: "return_invoices.approve", Module: "return_invoices", Type: "action"},
			},
		},
	}

	seedRows := func(module string, n int, build func(i int) Record) {
		rows := make([]Record, 0, n)
		for i := 1; i <= n; i++ {
			row := build(i)
			row["id"] = int64(i)
			rows = append(rows, row)
		}
		f.records[module] = rows
	}

	statuses := []string{"pending", "approved", "rejected"}
	seedRows("expenses", 23, func(i int) Record {
		amount := any(float64(40 + i*3))
		if i%7 == 0 {
			// Some endpoints quote their amounts.
			amount = fmt.Sprintf("%.2f", float64(40+i*3))
		}
		return Record{
			"reference": fmt.Sprintf("EXP-%04d", i),
			"title":     fmt.Sprintf("Expense %d", i),
			"category":  "operations",
			"status":    statuses[i%len(statuses)],
			"amount":    amount,
			"date":      "2026-08-01",
		}
	})
	seedRows("inventory", 8, func(i int) Record {
		return Record{
			"sku":      fmt.Sprintf("SKU-%03d", i),
			"name":     fmt.Sprintf("Stocked good %d", i),
			"status":   "in_stock",
			"quantity": float64(10 * i),
			"value":    float64(250 * i),
		}
	})
	seedRows("items", 9, func(i int) Record {
		return Record{
			"name":   fmt.Sprintf("Catalog item %d", i),
			"unit":   "pc",
			"status": "active",
			"price":  float64(15 * i),
		}
	})
	seedRows("payments", 17, func(i int) Record {
		return Record{
			"reference": fmt.Sprintf("PAY-%04d", i),
			"method":    []string{"cash", "card", "transfer"}[i%3],
			"status":    statuses[i%2],
			"amount":    float64(100 * i),
			"paid_at":   "2026-08-15",
		}
	})
	seedRows("invoices", 12, func(i int) Record {
		return Record{
			"number":   fmt.Sprintf("INV-%04d", i),
			"customer": fmt.Sprintf("Customer %d", i),
			"status":   statuses[i%len(statuses)],
			"total":    float64(500 + 25*i),
			"paid":     float64(100 * (i % 4)),
		}
	})
	seedRows("return_invoices", 6, func(i int) Record {
		return Record{
			"number":   fmt.Sprintf("RET-%04d", i),
			"customer": fmt.Sprintf("Customer %d", i),
			"status":   "pending",
			"total":    float64(120 * i),
		}
	})
	seedRows("staff", 5, func(i int) Record {
		return Record{
			"name":   fmt.Sprintf("Staff member %d", i),
			"phone":  fmt.Sprintf("+1-555-01%02d", i),
			"status": "active",
		}
	})
	seedRows("users", 4, func(i int) Record {
		return Record{
			"name":   fmt.Sprintf("User %d", i),
			"email":  fmt.Sprintf("user%d@ledgerline.test", i),
			"role":   "staff",
			"status": "active",
		}
	})
	return f
}

// AccountByEmail finds a seeded account.
func (f *Fixtures) AccountByEmail(email string) (Account, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.Email == email {
			return acc, true
		}
	}
	return Account{}, false
}

// AccountByID finds a seeded account.
func (f *Fixtures) AccountByID(id int64) (Account, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.ID == id {
			return acc, true
		}
	}
	return Account{}, false
}

// IssueToken registers a bearer token for the account.
func (f *Fixtures) IssueToken(token string, accountID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens[token] = accountID
}

// ResolveToken maps a bearer token back to an account id.
func (f *Fixtures) ResolveToken(token string) (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, ok := f.tokens[token]
	return id, ok
}

// PerPage is the fixed page size every list endpoint uses.
func (f *Fixtures) PerPage() int { return f.perPage }

// Page returns one page of a module's rows plus the total row count. The
// second page index is 1-based; an out-of-range page is empty, not an error.
func (f *Fixtures) Page(module string, page int) ([]Record, int, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows, ok := f.records[module]
	if !ok {
		return nil, 0, false
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * f.perPage
	if start >= len(rows) {
		return []Record{}, len(rows), true
	}
	end := start + f.perPage
	if end > len(rows) {
		end = len(rows)
	}
	out := make([]Record, end-start)
	copy(out, rows[start:end])
	return out, len(rows), true
}

// Create appends a row and returns its id.
func (f *Fixtures) Create(module string, row Record) (int64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[module]; !ok {
		return 0, false
	}
	f.nextID++
	row["id"] = f.nextID
	if _, ok := row["status"]; !ok {
		row["status"] = "pending"
	}
	f.records[module] = append(f.records[module], row)
	return f.nextID, true
}

// Update merges fields into the row with the given id.
func (f *Fixtures) Update(module string, id int64, fields Record) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.records[module] {
		if rowID(row) == id {
			for k, v := range fields {
				if k != "id" {
					row[k] = v
				}
			}
			return true
		}
	}
	return false
}

// Delete removes the row with the given id.
func (f *Fixtures) Delete(module string, id int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows := f.records[module]
	for i, row := range rows {
		if rowID(row) == id {
			f.records[module] = append(rows[:i], rows[i+1:]...)
			return true
		}
	}
	return false
}

// SetStatus updates the status of the row with the given id.
func (f *Fixtures) SetStatus(module string, id int64, status string) bool {
	return f.Update(module, id, Record{"status": status})
}

// Count returns the number of rows in a module.
func (f *Fixtures) Count(module string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records[module])
}

func rowID(row Record) int64 {
	switch v := row["id"].(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	default:
		return 0
	}
}
