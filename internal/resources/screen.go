package resources

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ledgerline/ledgerline-mobile/internal/listing"
	"github.com/ledgerline/ledgerline-mobile/internal/mutation"
	"github.com/ledgerline/ledgerline-mobile/internal/rbac"
	"github.com/ledgerline/ledgerline-mobile/internal/session"
	"github.com/ledgerline/ledgerline-mobile/internal/stats"
)

// Screen ties one module's list controller to the session's resolved
// capabilities. Each screen owns its controller instance; nothing is shared
// across screens except the read-only grant set.
type Screen[T any] struct {
	Module      rbac.Module
	Session     session.Session
	Grants      rbac.GrantSet
	List        *listing.Controller[T]
	Coordinator *mutation.Coordinator
	// Denied is set when the session may not view the module at all; such a
	// screen never issued a list request.
	Denied bool
}

// Can answers the capability question for this screen's session.
func (s *Screen[T]) Can(a rbac.Action) bool {
	return rbac.Can(s.Session, s.Grants, s.Module, a)
}

// Mutate runs one mutation through the coordinator and refreshes the list on
// success.
func (s *Screen[T]) Mutate(ctx context.Context, req mutation.Request, call mutation.Call) error {
	return s.Coordinator.Execute(ctx, req, call, s.List.Refresh)
}

// Mount resolves capabilities first and fetches the first page only when the
// session may view the module; a denied screen issues no list request. The
// returned error is the list load's outcome — the screen itself is usable
// either way once the session resolved.
func Mount[T any](ctx context.Context, store *rbac.Store, list *listing.Controller[T], m rbac.Module, logger *slog.Logger) (*Screen[T], error) {
	sess, grants, err := store.LoadForCurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	scr := &Screen[T]{
		Module:      m,
		Session:     sess,
		Grants:      grants,
		List:        list,
		Coordinator: mutation.NewCoordinator(sess, grants, logger),
	}
	if !scr.Can(rbac.ActionView) {
		scr.Denied = true
		return scr, nil
	}
	return scr, list.InitialLoad(ctx)
}

// MountEager starts the capability load and the first page fetch at the same
// time, for screens whose list is public while individual actions stay
// gated. Action rendering still waits on the grants: MountEager does not
// return until both are done.
func MountEager[T any](ctx context.Context, store *rbac.Store, list *listing.Controller[T], m rbac.Module, logger *slog.Logger) (*Screen[T], error) {
	var (
		sess    session.Session
		grants  rbac.GrantSet
		listErr error
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sess, grants, err = store.LoadForCurrentUser(gctx)
		return err
	})
	g.Go(func() error {
		// A list failure leaves the screen with an empty list; it must not
		// cancel the capability load.
		listErr = list.InitialLoad(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &Screen[T]{
		Module:      m,
		Session:     sess,
		Grants:      grants,
		List:        list,
		Coordinator: mutation.NewCoordinator(sess, grants, logger),
	}, listErr
}

// Summarize recomputes the aggregate counters for the controller's current
// items.
func Summarize[T stats.Source](list *listing.Controller[T]) stats.Summary {
	return stats.Compute(list.State().Items)
}
