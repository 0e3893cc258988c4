package rbac

// Module is a named resource domain that permissions are scoped to.
type Module string

const (
	ModuleExpenses       Module = "expenses"
	ModuleInventory      Module = "inventory"
	ModuleItems          Module = "items"
	ModulePayments       Module = "payments"
	ModuleInvoices       Module = "invoices"
	ModuleReturnInvoices Module = "return_invoices"
	ModuleStaff          Module = "staff"
	ModuleUsers          Module = "users"
)

// Action is a permitted operation on a module.
type Action string

const (
	ActionView       Action = "view"
	ActionCreate     Action = "create"
	ActionEdit       Action = "edit"
	ActionDelete     Action = "delete"
	ActionApprove    Action = "approve"
	ActionManagement Action = "management"
)

var crud = []Action{ActionView, ActionCreate, ActionEdit, ActionDelete, ActionManagement}

// catalog declares which actions apply to each module. Approve only exists on
// return invoices; querying an action a module does not declare resolves the
// same way as a missing grant.
var catalog = map[Module][]Action{
	ModuleExpenses:       crud,
	ModuleInventory:      crud,
	ModuleItems:          crud,
	ModulePayments:       crud,
	ModuleInvoices:       crud,
	ModuleReturnInvoices: append([]Action{ActionApprove}, crud...),
	ModuleStaff:          crud,
	ModuleUsers:          crud,
}

// Modules lists every known module.
func Modules() []Module {
	out := make([]Module, 0, len(catalog))
	for m := range catalog {
		out = append(out, m)
	}
	return out
}

// Applicable reports whether the action is declared for the module.
func Applicable(m Module, a Action) bool {
	for _, candidate := range catalog[m] {
		if candidate == a {
			return true
		}
	}
	return false
}
