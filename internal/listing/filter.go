package listing

import "strings"

// Filter is a predicate over one item.
type Filter[T any] func(T) bool

// Searchable exposes the text a free-text filter matches against.
type Searchable interface {
	SearchText() string
}

// Apply returns the items passing every filter. It is a pure view over the
// in-memory items: the input is never mutated and pagination is unaffected,
// so it is cheap enough to recompute on every keystroke.
func Apply[T any](items []T, filters ...Filter[T]) []T {
	if len(filters) == 0 {
		return items
	}
	out := make([]T, 0, len(items))
next:
	for _, item := range items {
		for _, keep := range filters {
			if !keep(item) {
				continue next
			}
		}
		out = append(out, item)
	}
	return out
}

// TextFilter matches items whose search text contains the query, case
// insensitively. An empty query matches everything.
func TextFilter[T Searchable](query string) Filter[T] {
	query = strings.ToLower(strings.TrimSpace(query))
	return func(item T) bool {
		if query == "" {
			return true
		}
		return strings.Contains(strings.ToLower(item.SearchText()), query)
	}
}
