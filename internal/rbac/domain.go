package rbac

import (
	"errors"
	"fmt"
)

// Grant is one permission entry for the restricted role. Name follows the
// "<module>.<action>" convention; Module scopes it to one resource domain.
// Names are not globally unique across modules, so a grant only takes effect
// when both fields match the query.
type Grant struct {
	Name   string `json:"name"`
	Module string `json:"module"`
	Type   string `json:"type"`
}

type grantKey struct {
	name   string
	module string
}

// GrantSet is the deduplicated, read-only grant collection for one user.
// It is never mutated after construction and may be shared across screens.
type GrantSet struct {
	entries map[grantKey]struct{}
}

// NewGrantSet builds a GrantSet from raw grants, keyed by (name, module).
func NewGrantSet(grants []Grant) GrantSet {
	entries := make(map[grantKey]struct{}, len(grants))
	for _, g := range grants {
		if g.Name == "" || g.Module == "" {
			continue
		}
		entries[grantKey{name: g.Name, module: g.Module}] = struct{}{}
	}
	return GrantSet{entries: entries}
}

// Has reports whether an entry named "<module>.<action>" scoped to module is
// present.
func (s GrantSet) Has(m Module, a Action) bool {
	key := grantKey{name: string(m) + "." + string(a), module: string(m)}
	_, ok := s.entries[key]
	return ok
}

// Len returns the number of distinct grants.
func (s GrantSet) Len() int {
	return len(s.entries)
}

// ErrAccessDenied indicates a capability check failed for an attempted
// action. It is raised before any network call is made.
var ErrAccessDenied = errors.New("rbac: access denied")

// Denied builds an access-denied failure carrying the offending query for
// diagnostics.
func Denied(m Module, a Action) error {
	return fmt.Errorf("%w: %s.%s", ErrAccessDenied, m, a)
}
