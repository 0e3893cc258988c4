// Package resources binds the business modules to their endpoints and wires
// list controllers, capability checks, and mutations together per screen.
package resources

import "github.com/ledgerline/ledgerline-mobile/internal/stats"

// Expense is a recorded business expense.
type Expense struct {
	ID        int64        `json:"id"`
	Reference string       `json:"reference"`
	Title     string       `json:"title"`
	Category  string       `json:"category"`
	Status    string       `json:"status"`
	Amount    stats.Amount `json:"amount"`
	Date      string       `json:"date"`
}

func (e Expense) StatusKey() string { return e.Status }

func (e Expense) Amounts() map[string]float64 {
	return map[string]float64{"amount": float64(e.Amount)}
}

func (e Expense) SearchText() string { return e.Title + " " + e.Reference }

// InventoryItem is one stocked good with its valuation.
type InventoryItem struct {
	ID       int64        `json:"id"`
	SKU      string       `json:"sku"`
	Name     string       `json:"name"`
	Status   string       `json:"status"`
	Quantity float64      `json:"quantity"`
	Value    stats.Amount `json:"value"`
}

func (i InventoryItem) StatusKey() string { return i.Status }

func (i InventoryItem) Amounts() map[string]float64 {
	return map[string]float64{"value": float64(i.Value)}
}

func (i InventoryItem) SearchText() string { return i.Name + " " + i.SKU }

// Item is a sellable catalog entry.
type Item struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name"`
	Unit   string       `json:"unit"`
	Status string       `json:"status"`
	Price  stats.Amount `json:"price"`
}

func (i Item) StatusKey() string { return i.Status }

func (i Item) Amounts() map[string]float64 {
	return map[string]float64{"price": float64(i.Price)}
}

func (i Item) SearchText() string { return i.Name }

// Payment is a received or issued payment.
type Payment struct {
	ID        int64        `json:"id"`
	Reference string       `json:"reference"`
	Method    string       `json:"method"`
	Status    string       `json:"status"`
	Amount    stats.Amount `json:"amount"`
	PaidAt    string       `json:"paid_at"`
}

func (p Payment) StatusKey() string { return p.Status }

func (p Payment) Amounts() map[string]float64 {
	return map[string]float64{"amount": float64(p.Amount)}
}

func (p Payment) SearchText() string { return p.Reference + " " + p.Method }

// Invoice is a customer invoice.
type Invoice struct {
	ID       int64        `json:"id"`
	Number   string       `json:"number"`
	Customer string       `json:"customer"`
	Status   string       `json:"status"`
	Total    stats.Amount `json:"total"`
	Paid     stats.Amount `json:"paid"`
}

func (i Invoice) StatusKey() string { return i.Status }

func (i Invoice) Amounts() map[string]float64 {
	return map[string]float64{
		"total": float64(i.Total),
		"paid":  float64(i.Paid),
	}
}

func (i Invoice) SearchText() string { return i.Number + " " + i.Customer }

// ReturnInvoice is a customer return awaiting approval.
type ReturnInvoice struct {
	ID       int64        `json:"id"`
	Number   string       `json:"number"`
	Customer string       `json:"customer"`
	Status   string       `json:"status"`
	Total    stats.Amount `json:"total"`
}

func (r ReturnInvoice) StatusKey() string { return r.Status }

func (r ReturnInvoice) Amounts() map[string]float64 {
	return map[string]float64{"total": float64(r.Total)}
}

func (r ReturnInvoice) SearchText() string { return r.Number + " " + r.Customer }

// StaffMember is an employee record.
type StaffMember struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Status string `json:"status"`
}

func (s StaffMember) StatusKey() string { return s.Status }

func (s StaffMember) Amounts() map[string]float64 { return nil }

func (s StaffMember) SearchText() string { return s.Name + " " + s.Phone }

// User is an application account.
type User struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

func (u User) StatusKey() string { return u.Status }

func (u User) Amounts() map[string]float64 { return nil }

func (u User) SearchText() string { return u.Name + " " + u.Email }
