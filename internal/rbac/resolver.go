package rbac

import "github.com/ledgerline/ledgerline-mobile/internal/session"

// Can answers whether the session may perform action on module. It is a pure
// function of its inputs: no I/O, no hidden state.
//
// Every role except staff is fully privileged and passes unconditionally.
// For staff the grant set must contain "<module>.<action>" scoped to the
// module; for view queries a "<module>.management" grant also satisfies the
// check. Unknown modules or actions resolve to false for staff rather than
// erroring.
func Can(sess session.Session, grants GrantSet, m Module, a Action) bool {
	if !sess.Restricted() {
		return true
	}
	if grants.Has(m, a) {
		return true
	}
	if a == ActionView && grants.Has(m, ActionManagement) {
		return true
	}
	return false
}
