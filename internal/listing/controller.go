// Package listing is the paginated collection state machine behind every
// resource screen. One Controller instance owns one screen's items; the
// resource-specific fetch is injected, never re-implemented per screen.
package listing

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ledgerline/ledgerline-mobile/internal/backend"
)

// Fetcher loads one page of a resource collection.
type Fetcher[T any] func(ctx context.Context, page int) (backend.Page[T], error)

// Controller tracks items, the page cursor, and the in-flight flags for one
// resource collection. The three load operations are mutually exclusive:
// whichever starts first wins and the others are dropped, except that a
// refresh requested during a load-more takes over as a full reset.
type Controller[T any] struct {
	fetch  Fetcher[T]
	logger *slog.Logger

	mu          sync.Mutex
	items       []T
	page        int
	hasMore     bool
	loading     bool
	refreshing  bool
	loadingMore bool
	generation  uint64
}

// Snapshot is a point-in-time copy of the controller state for rendering.
type Snapshot[T any] struct {
	Items       []T
	Page        int
	HasMore     bool
	Loading     bool
	Refreshing  bool
	LoadingMore bool
}

// NewController constructs a Controller around fetch.
func NewController[T any](fetch Fetcher[T], logger *slog.Logger) *Controller[T] {
	return &Controller[T]{fetch: fetch, logger: logger}
}

// State returns a snapshot of the current state. The items slice is a copy;
// callers may not mutate controller-owned storage.
func (c *Controller[T]) State() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]T, len(c.items))
	copy(items, c.items)
	return Snapshot[T]{
		Items:       items,
		Page:        c.page,
		HasMore:     c.hasMore,
		Loading:     c.loading,
		Refreshing:  c.refreshing,
		LoadingMore: c.loadingMore,
	}
}

// InitialLoad fetches page 1 for a freshly mounted screen. On failure the
// list stays empty; there was nothing to preserve.
func (c *Controller[T]) InitialLoad(ctx context.Context) error {
	return c.reload(ctx, &c.loading)
}

// Refresh re-reads page 1 and replaces the items wholesale, resetting the
// page cursor regardless of how far load-more had advanced it. A refresh
// arriving while a load-more is in flight takes over; the stale load-more
// result is discarded when it lands. On failure the previous items survive.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	return c.reload(ctx, &c.refreshing)
}

func (c *Controller[T]) reload(ctx context.Context, flag *bool) error {
	c.mu.Lock()
	if c.loading || c.refreshing {
		c.mu.Unlock()
		return nil
	}
	c.loadingMore = false
	*flag = true
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	page, err := c.fetch(ctx, 1)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		// A newer operation reset the state while this one was in flight.
		return nil
	}
	*flag = false
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("list reload failed", slog.Any("error", err))
		}
		return err
	}
	c.items = page.Items
	c.page = 1
	c.hasMore = HasMore(page.Meta, len(page.Items))
	return nil
}

// LoadMore fetches the next page and appends it. It is silently dropped when
// no more data is available or any load is already in flight; a dropped call
// issues no request. On failure the items and cursor are left untouched.
func (c *Controller[T]) LoadMore(ctx context.Context) error {
	c.mu.Lock()
	if !c.hasMore || c.loading || c.refreshing || c.loadingMore {
		c.mu.Unlock()
		return nil
	}
	c.loadingMore = true
	c.generation++
	gen := c.generation
	next := c.page + 1
	c.mu.Unlock()

	page, err := c.fetch(ctx, next)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.generation {
		return nil
	}
	c.loadingMore = false
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("load more failed", slog.Int("page", next), slog.Any("error", err))
		}
		return err
	}
	c.items = append(c.items, page.Items...)
	c.page = next
	c.hasMore = HasMore(page.Meta, len(page.Items))
	return nil
}

// MutateThenResync guards a mutation with a capability check, runs it, and on
// success re-derives the list from the server. The guard failing means no
// network call is made at all. resync defaults to Refresh: after a delete or
// approve the list is always re-read rather than patched locally, because
// totals and page boundaries depend on full list integrity.
func (c *Controller[T]) MutateThenResync(ctx context.Context, guard func() error, mutate func(context.Context) error, resync func(context.Context) error) error {
	if guard != nil {
		if err := guard(); err != nil {
			return err
		}
	}
	if err := mutate(ctx); err != nil {
		return err
	}
	if resync == nil {
		resync = c.Refresh
	}
	return resync(ctx)
}
