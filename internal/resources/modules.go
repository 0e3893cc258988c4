package resources

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ledgerline/ledgerline-mobile/internal/backend"
	"github.com/ledgerline/ledgerline-mobile/internal/listing"
	"github.com/ledgerline/ledgerline-mobile/internal/mutation"
	"github.com/ledgerline/ledgerline-mobile/internal/rbac"
)

// Path returns the collection endpoint for a module.
func Path(m rbac.Module) string {
	return "/api/" + string(m)
}

// NewList builds the list controller for one module's collection endpoint.
func NewList[T any](c *backend.Client, m rbac.Module, logger *slog.Logger) *listing.Controller[T] {
	path := Path(m)
	return listing.NewController(func(ctx context.Context, page int) (backend.Page[T], error) {
		return backend.ListPage[T](ctx, c, path, page)
	}, logger)
}

// Typed list constructors, one per screen.

func ExpenseList(c *backend.Client, logger *slog.Logger) *listing.Controller[Expense] {
	return NewList[Expense](c, rbac.ModuleExpenses, logger)
}

func InventoryList(c *backend.Client, logger *slog.Logger) *listing.Controller[InventoryItem] {
	return NewList[InventoryItem](c, rbac.ModuleInventory, logger)
}

func ItemList(c *backend.Client, logger *slog.Logger) *listing.Controller[Item] {
	return NewList[Item](c, rbac.ModuleItems, logger)
}

func PaymentList(c *backend.Client, logger *slog.Logger) *listing.Controller[Payment] {
	return NewList[Payment](c, rbac.ModulePayments, logger)
}

func InvoiceList(c *backend.Client, logger *slog.Logger) *listing.Controller[Invoice] {
	return NewList[Invoice](c, rbac.ModuleInvoices, logger)
}

func ReturnInvoiceList(c *backend.Client, logger *slog.Logger) *listing.Controller[ReturnInvoice] {
	return NewList[ReturnInvoice](c, rbac.ModuleReturnInvoices, logger)
}

func StaffList(c *backend.Client, logger *slog.Logger) *listing.Controller[StaffMember] {
	return NewList[StaffMember](c, rbac.ModuleStaff, logger)
}

func UserList(c *backend.Client, logger *slog.Logger) *listing.Controller[User] {
	return NewList[User](c, rbac.ModuleUsers, logger)
}

// CreateCall builds the mutation call that creates a record in a module.
func CreateCall(c *backend.Client, m rbac.Module, payload any) mutation.Call {
	path := Path(m)
	return func(ctx context.Context, key string) error {
		return c.Mutate(ctx, path, payload, key)
	}
}

// RecordCall builds the mutation call for an action on one existing record,
// e.g. /api/expenses/7/delete.
func RecordCall(c *backend.Client, m rbac.Module, id int64, a rbac.Action, payload any) mutation.Call {
	path := fmt.Sprintf("%s/%d/%s", Path(m), id, a)
	return func(ctx context.Context, key string) error {
		return c.Mutate(ctx, path, payload, key)
	}
}
