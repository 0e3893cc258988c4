package listing

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline-mobile/internal/backend"
)

type row struct {
	ID     int64
	Status string
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func rows(from, n int) []row {
	out := make([]row, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, row{ID: int64(from + i), Status: "pending"})
	}
	return out
}

func fullPages(perPage, lastPage int) Fetcher[row] {
	return func(ctx context.Context, page int) (backend.Page[row], error) {
		n := perPage
		if page >= lastPage {
			n = perPage / 2
		}
		return backend.Page[row]{
			Items: rows((page-1)*perPage+1, n),
			Meta:  backend.PageMeta{PerPage: intPtr(perPage)},
		}, nil
	}
}

func TestInitialLoadReplacesItems(t *testing.T) {
	c := NewController(fullPages(10, 3), nil)
	require.NoError(t, c.InitialLoad(context.Background()))

	st := c.State()
	require.Len(t, st.Items, 10)
	require.Equal(t, 1, st.Page)
	require.True(t, st.HasMore)
	require.False(t, st.Loading)
}

func TestInitialLoadFailureLeavesListEmpty(t *testing.T) {
	boom := errors.New("boom")
	c := NewController(func(ctx context.Context, page int) (backend.Page[row], error) {
		return backend.Page[row]{}, boom
	}, nil)

	require.ErrorIs(t, c.InitialLoad(context.Background()), boom)
	st := c.State()
	require.Empty(t, st.Items)
	require.False(t, st.Loading)
	require.False(t, st.HasMore)
}

func TestEmptyFirstPageIsValidTerminalState(t *testing.T) {
	c := NewController(func(ctx context.Context, page int) (backend.Page[row], error) {
		return backend.Page[row]{Items: nil, Meta: backend.PageMeta{PerPage: intPtr(10)}}, nil
	}, nil)

	require.NoError(t, c.InitialLoad(context.Background()))
	st := c.State()
	require.Empty(t, st.Items)
	require.Equal(t, 1, st.Page)
	require.False(t, st.HasMore)
}

func TestLoadMoreAppendsAndAdvances(t *testing.T) {
	c := NewController(func(ctx context.Context, page int) (backend.Page[row], error) {
		n := 10
		if page == 4 {
			n = 4
		}
		return backend.Page[row]{
			Items: rows((page-1)*10+1, n),
			Meta:  backend.PageMeta{PerPage: intPtr(10)},
		}, nil
	}, nil)
	ctx := context.Background()
	require.NoError(t, c.InitialLoad(ctx))
	require.NoError(t, c.LoadMore(ctx))
	require.NoError(t, c.LoadMore(ctx))
	require.NoError(t, c.LoadMore(ctx))

	st := c.State()
	// Three full pages of ten then a short fourth page of four.
	require.Len(t, st.Items, 34)
	require.Equal(t, 4, st.Page)
	require.False(t, st.HasMore)
	require.EqualValues(t, 1, st.Items[0].ID)
	require.EqualValues(t, 34, st.Items[33].ID)
}

func TestLoadMoreNoOpWhenExhausted(t *testing.T) {
	var calls atomic.Int64
	c := NewController(func(ctx context.Context, page int) (backend.Page[row], error) {
		calls.Add(1)
		return backend.Page[row]{Items: rows(1, 4), Meta: backend.PageMeta{PerPage: intPtr(10)}}, nil
	}, nil)
	ctx := context.Background()
	require.NoError(t, c.InitialLoad(ctx))
	require.EqualValues(t, 1, calls.Load())

	require.NoError(t, c.LoadMore(ctx))
	require.NoError(t, c.LoadMore(ctx))

	st := c.State()
	require.Len(t, st.Items, 4)
	require.Equal(t, 1, st.Page)
	require.EqualValues(t, 1, calls.Load(), "exhausted load-more must not issue requests")
}

func TestRefreshResetsPageAndReplaces(t *testing.T) {
	c := NewController(fullPages(10, 6), nil)
	ctx := context.Background()
	require.NoError(t, c.InitialLoad(ctx))
	for i := 0; i < 4; i++ {
		require.NoError(t, c.LoadMore(ctx))
	}
	require.Equal(t, 5, c.State().Page)

	require.NoError(t, c.Refresh(ctx))
	st := c.State()
	require.Equal(t, 1, st.Page)
	require.Len(t, st.Items, 10)
	require.True(t, st.HasMore)
	require.False(t, st.Refreshing)
}

func TestFailedRefreshPreservesItems(t *testing.T) {
	fail := false
	c := NewController(func(ctx context.Context, page int) (backend.Page[row], error) {
		if fail {
			return backend.Page[row]{}, errors.New("offline")
		}
		return backend.Page[row]{Items: rows(1, 10), Meta: backend.PageMeta{PerPage: intPtr(10)}}, nil
	}, nil)
	ctx := context.Background()
	require.NoError(t, c.InitialLoad(ctx))

	fail = true
	require.Error(t, c.Refresh(ctx))
	st := c.State()
	require.Len(t, st.Items, 10, "failed refresh keeps the prior items")
	require.False(t, st.Refreshing)
}

func TestFailedLoadMorePreservesItems(t *testing.T) {
	fail := false
	c := NewController(func(ctx context.Context, page int) (backend.Page[row], error) {
		if fail {
			return backend.Page[row]{}, errors.New("offline")
		}
		return backend.Page[row]{Items: rows(1, 10), Meta: backend.PageMeta{PerPage: intPtr(10)}}, nil
	}, nil)
	ctx := context.Background()
	require.NoError(t, c.InitialLoad(ctx))

	fail = true
	require.Error(t, c.LoadMore(ctx))
	st := c.State()
	require.Len(t, st.Items, 10)
	require.Equal(t, 1, st.Page, "page only advances on success")
	require.True(t, st.HasMore)
}

func TestLoadMoreDroppedWhileRefreshInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int64
	c := NewController(func(ctx context.Context, page int) (backend.Page[row], error) {
		if calls.Add(1) == 2 {
			close(started)
			<-release
		}
		return backend.Page[row]{Items: rows(1, 10), Meta: backend.PageMeta{PerPage: intPtr(10)}}, nil
	}, nil)
	ctx := context.Background()
	require.NoError(t, c.InitialLoad(ctx))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.Refresh(ctx)
	}()
	<-started

	require.NoError(t, c.LoadMore(ctx))
	require.EqualValues(t, 2, calls.Load(), "load-more during refresh is dropped")

	close(release)
	<-done
}

func TestRefreshSupersedesInFlightLoadMore(t *testing.T) {
	loadMoreStarted := make(chan struct{})
	releaseLoadMore := make(chan struct{})
	c := NewController(func(ctx context.Context, page int) (backend.Page[row], error) {
		if page == 2 {
			close(loadMoreStarted)
			<-releaseLoadMore
			return backend.Page[row]{Items: rows(11, 10), Meta: backend.PageMeta{PerPage: intPtr(10)}}, nil
		}
		return backend.Page[row]{Items: rows(1, 10), Meta: backend.PageMeta{PerPage: intPtr(10)}}, nil
	}, nil)
	ctx := context.Background()
	require.NoError(t, c.InitialLoad(ctx))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = c.LoadMore(ctx)
	}()
	<-loadMoreStarted

	// The refresh takes over as a full reset while page 2 is still in flight.
	require.NoError(t, c.Refresh(ctx))
	close(releaseLoadMore)
	<-done

	st := c.State()
	require.Len(t, st.Items, 10, "stale load-more result must be discarded")
	require.Equal(t, 1, st.Page)
	require.False(t, st.LoadingMore)
	require.False(t, st.Refreshing)
}

func TestMutateThenResyncDeniedIssuesNoCalls(t *testing.T) {
	denied := errors.New("denied")
	var fetches, mutations atomic.Int64
	c := NewController(func(ctx context.Context, page int) (backend.Page[row], error) {
		fetches.Add(1)
		return backend.Page[row]{}, nil
	}, nil)

	err := c.MutateThenResync(context.Background(),
		func() error { return denied },
		func(ctx context.Context) error { mutations.Add(1); return nil },
		nil)
	require.ErrorIs(t, err, denied)
	require.EqualValues(t, 0, mutations.Load())
	require.EqualValues(t, 0, fetches.Load())
}

func TestMutateThenResyncRefreshesByDefault(t *testing.T) {
	var fetches atomic.Int64
	c := NewController(func(ctx context.Context, page int) (backend.Page[row], error) {
		fetches.Add(1)
		return backend.Page[row]{Items: rows(1, 3), Meta: backend.PageMeta{PerPage: intPtr(10)}}, nil
	}, nil)
	ctx := context.Background()
	require.NoError(t, c.InitialLoad(ctx))

	err := c.MutateThenResync(ctx, nil, func(ctx context.Context) error { return nil }, nil)
	require.NoError(t, err)
	require.EqualValues(t, 2, fetches.Load(), "successful mutation re-reads the list")
	require.Equal(t, 1, c.State().Page)
}

func TestMutateThenResyncMutationFailureSkipsResync(t *testing.T) {
	var fetches atomic.Int64
	boom := errors.New("boom")
	c := NewController(func(ctx context.Context, page int) (backend.Page[row], error) {
		fetches.Add(1)
		return backend.Page[row]{}, nil
	}, nil)

	err := c.MutateThenResync(context.Background(), nil,
		func(ctx context.Context) error { return boom }, nil)
	require.ErrorIs(t, err, boom)
	require.EqualValues(t, 0, fetches.Load())
}
