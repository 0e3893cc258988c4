package session

import (
	"context"
	"strings"
)

// StaticCredentials is a CredentialProvider backed by a fixed token, used by
// the CLI and by tests.
type StaticCredentials string

// Token returns the fixed token.
func (c StaticCredentials) Token(ctx context.Context) (string, error) {
	return strings.TrimSpace(string(c)), nil
}

// StaticProvider is a Provider backed by a fixed session.
type StaticProvider Session

// Current returns the fixed session, or ErrNoSession when no user id is set.
func (p StaticProvider) Current(ctx context.Context) (Session, error) {
	if p.UserID == 0 || p.Role == "" {
		return Session{}, ErrNoSession
	}
	return Session(p), nil
}
