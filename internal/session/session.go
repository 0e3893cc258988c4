package session

import (
	"context"
	"errors"
)

// Role identifies the user's role as stored by the backend.
type Role string

const (
	// RoleOwner is the account owner.
	RoleOwner Role = "owner"
	// RoleAdmin is a full administrator.
	RoleAdmin Role = "admin"
	// RoleManager runs day-to-day operations without restriction.
	RoleManager Role = "manager"
	// RoleStaff is the only role subject to fine-grained permission checks.
	RoleStaff Role = "staff"
)

// ErrNoSession indicates that no signed-in user is available.
var ErrNoSession = errors.New("session: not signed in")

// Session identifies the signed-in user for the lifetime of a screen flow.
// It is read once per mount and treated as immutable afterwards.
type Session struct {
	UserID int64
	Role   Role
}

// Restricted reports whether the session's role is subject to per-module
// permission checks. Every other role is fully privileged.
func (s Session) Restricted() bool {
	return s.Role == RoleStaff
}

// CredentialProvider yields the bearer token used for backend calls. An empty
// token means the user cannot reach the backend at all; callers surface that
// as a sign-in condition rather than retrying.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// Provider resolves the current session from wherever the surrounding app
// persists it. Implementations wrap local credential storage.
type Provider interface {
	Current(ctx context.Context) (Session, error)
}
