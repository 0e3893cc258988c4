package httpx

import "errors"

// Failure classes for backend calls. Remote and transport failures are
// recovered from identically (existing state is left untouched) but logged as
// distinct kinds; a missing credential is its own condition and is never
// folded into the network errors.
var (
	// ErrUnauthenticated means no bearer token is available; the user must
	// sign in before any backend call can be made.
	ErrUnauthenticated = errors.New("httpx: not signed in")
	// ErrRemote means the backend answered with a non-success status.
	ErrRemote = errors.New("httpx: backend error")
	// ErrTransport means the call itself failed: connection, timeout, or an
	// unparseable body.
	ErrTransport = errors.New("httpx: transport failure")
)
