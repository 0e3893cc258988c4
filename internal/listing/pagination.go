package listing

import "github.com/ledgerline/ledgerline-mobile/internal/backend"

// HasMore decides whether another page exists after a page that returned got
// items. Endpoints disagree about which pagination metadata they send, so the
// decision runs in precedence order: an explicit next-page pointer is trusted
// first, then current/last page counters, then a full page inferred from the
// page size. With no metadata at all there is no basis to expect more data.
func HasMore(meta backend.PageMeta, got int) bool {
	if meta.NextPageURL != nil {
		return *meta.NextPageURL != ""
	}
	if meta.CurrentPage != nil && meta.LastPage != nil {
		return *meta.CurrentPage < *meta.LastPage
	}
	if meta.PerPage != nil && *meta.PerPage > 0 {
		return got == *meta.PerPage
	}
	return false
}
