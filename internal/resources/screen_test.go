package resources

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline-mobile/internal/backend"
	"github.com/ledgerline/ledgerline-mobile/internal/mockapi"
	"github.com/ledgerline/ledgerline-mobile/internal/mutation"
	"github.com/ledgerline/ledgerline-mobile/internal/platform/httpx"
	"github.com/ledgerline/ledgerline-mobile/internal/rbac"
	"github.com/ledgerline/ledgerline-mobile/internal/session"
)

// harness wires a real client against the mock backend, counting list
// requests per path so tests can assert which fetches were issued.
type harness struct {
	srv      *httptest.Server
	fixtures *mockapi.Fixtures

	mu   sync.Mutex
	hits map[string]int64
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{fixtures: mockapi.Seed(), hits: map[string]int64{}}
	inner := mockapi.New(h.fixtures, nil)
	h.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/") {
			h.mu.Lock()
			h.hits[r.URL.Path]++
			h.mu.Unlock()
		}
		inner.ServeHTTP(w, r)
	}))
	t.Cleanup(h.srv.Close)
	return h
}

func (h *harness) listHits(module rbac.Module) int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hits[Path(module)]
}

func (h *harness) login(t *testing.T, email string) (string, session.Session) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"email": email, "password": mockapi.DefaultPassword})
	resp, err := http.Post(h.srv.URL+"/api/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var env httpx.Envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	require.True(t, env.OK())
	var data struct {
		Token string `json:"token"`
		User  struct {
			ID   int64  `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}
	require.NoError(t, env.DecodeData(&data))
	return data.Token, session.Session{UserID: data.User.ID, Role: session.Role(data.User.Role)}
}

func (h *harness) client(token string) *backend.Client {
	return backend.NewClient(h.srv.URL, session.StaticCredentials(token), 5*time.Second, nil)
}

func (h *harness) store(client *backend.Client, sess session.Session) *rbac.Store {
	return rbac.NewStore(session.StaticProvider(sess), client, nil)
}

func TestStaffDeniedScreenIssuesNoListFetch(t *testing.T) {
	h := newHarness(t)
	token, sess := h.login(t, "staff@ledgerline.test")
	client := h.client(token)

	scr, err := Mount(context.Background(), h.store(client, sess), PaymentList(client, nil), rbac.ModulePayments, nil)
	require.NoError(t, err)
	require.True(t, scr.Denied)
	require.False(t, scr.Can(rbac.ActionView))
	require.EqualValues(t, 0, h.listHits(rbac.ModulePayments), "denied screen must not fetch the list")
}

func TestStaffExpenseScreenPagesToEnd(t *testing.T) {
	h := newHarness(t)
	token, sess := h.login(t, "staff@ledgerline.test")
	client := h.client(token)
	ctx := context.Background()

	scr, err := Mount(ctx, h.store(client, sess), ExpenseList(client, nil), rbac.ModuleExpenses, nil)
	require.NoError(t, err)
	require.False(t, scr.Denied)
	require.True(t, scr.Can(rbac.ActionCreate))
	require.False(t, scr.Can(rbac.ActionDelete))

	st := scr.List.State()
	require.Len(t, st.Items, 10)
	require.True(t, st.HasMore)

	require.NoError(t, scr.List.LoadMore(ctx))
	require.NoError(t, scr.List.LoadMore(ctx))
	st = scr.List.State()
	require.Len(t, st.Items, 23)
	require.False(t, st.HasMore)
	require.Equal(t, 3, st.Page)

	// Exhausted load-more is a silent no-op without a request.
	hits := h.listHits(rbac.ModuleExpenses)
	require.NoError(t, scr.List.LoadMore(ctx))
	require.Equal(t, hits, h.listHits(rbac.ModuleExpenses))

	summary := Summarize(scr.List)
	require.Equal(t, 23, summary.Count)
	require.Positive(t, summary.Sums["amount"])
}

func TestManagementGrantOpensInvoiceView(t *testing.T) {
	h := newHarness(t)
	token, sess := h.login(t, "staff@ledgerline.test")
	client := h.client(token)

	scr, err := Mount(context.Background(), h.store(client, sess), InvoiceList(client, nil), rbac.ModuleInvoices, nil)
	require.NoError(t, err)
	require.False(t, scr.Denied, "invoices.management implies view")
	require.Len(t, scr.List.State().Items, 10)
}

func TestStaffDeleteExpenseDeniedBeforeNetwork(t *testing.T) {
	h := newHarness(t)
	token, sess := h.login(t, "staff@ledgerline.test")
	client := h.client(token)
	ctx := context.Background()

	scr, err := Mount(ctx, h.store(client, sess), ExpenseList(client, nil), rbac.ModuleExpenses, nil)
	require.NoError(t, err)
	before := h.fixtures.Count("expenses")

	err = scr.Mutate(ctx,
		mutation.Request{Module: rbac.ModuleExpenses, Action: rbac.ActionDelete, Confirmed: true},
		RecordCall(client, rbac.ModuleExpenses, 1, rbac.ActionDelete, nil))
	require.ErrorIs(t, err, rbac.ErrAccessDenied)
	require.Equal(t, before, h.fixtures.Count("expenses"))
}

func TestApproveReturnInvoiceResyncsList(t *testing.T) {
	h := newHarness(t)
	token, sess := h.login(t, "staff@ledgerline.test")
	client := h.client(token)
	ctx := context.Background()

	scr, err := Mount(ctx, h.store(client, sess), ReturnInvoiceList(client, nil), rbac.ModuleReturnInvoices, nil)
	require.NoError(t, err)
	require.True(t, scr.Can(rbac.ActionApprove))

	// The confirmation step is mandatory for approve.
	err = scr.Mutate(ctx,
		mutation.Request{Module: rbac.ModuleReturnInvoices, Action: rbac.ActionApprove},
		RecordCall(client, rbac.ModuleReturnInvoices, 2, rbac.ActionApprove, nil))
	require.ErrorIs(t, err, mutation.ErrConfirmationRequired)

	hits := h.listHits(rbac.ModuleReturnInvoices)
	err = scr.Mutate(ctx,
		mutation.Request{Module: rbac.ModuleReturnInvoices, Action: rbac.ActionApprove, Confirmed: true},
		RecordCall(client, rbac.ModuleReturnInvoices, 2, rbac.ActionApprove, nil))
	require.NoError(t, err)
	require.Equal(t, hits+1, h.listHits(rbac.ModuleReturnInvoices), "approve re-reads the list")

	var approved bool
	for _, row := range scr.List.State().Items {
		if row.ID == 2 {
			approved = row.Status == "approved"
		}
	}
	require.True(t, approved)
}

func TestAdminCreatesExpenseAndListRefreshes(t *testing.T) {
	h := newHarness(t)
	token, sess := h.login(t, "admin@ledgerline.test")
	client := h.client(token)
	ctx := context.Background()

	scr, err := MountEager(ctx, h.store(client, sess), ExpenseList(client, nil), rbac.ModuleExpenses, nil)
	require.NoError(t, err)
	require.True(t, scr.Can(rbac.ActionDelete), "admin bypasses grant checks")

	payload := map[string]any{"title": "Team offsite", "amount": 950.0, "status": "pending"}
	err = scr.Mutate(ctx,
		mutation.Request{Module: rbac.ModuleExpenses, Action: rbac.ActionCreate},
		CreateCall(client, rbac.ModuleExpenses, payload))
	require.NoError(t, err)
	require.Equal(t, 24, h.fixtures.Count("expenses"))
	require.Equal(t, 1, scr.List.State().Page, "resync resets to the first page")
}
