package entry

import (
	"time"

	"fleetdesk/internal/shared/query"
)

const (
	FilterAll    = "all"
	FilterRecent = "recent"

	SortSignedAt  = "signed_at"
	SortCreatedAt = "created_at"
)

// JobFilter selects jobs. With Recent set, only open jobs and jobs closed after
// Since are returned.
type JobFilter struct {
	Recent bool
	Since  time.Time
	SortBy string
	Page   query.Page
}

// NewJobFilter validates the filter and sort names received from clients.
// Unknown names fall back to "all" and "signed_at".
func NewJobFilter(filter, sort string, page query.Page, now time.Time) JobFilter {
	f := JobFilter{SortBy: SortSignedAt, Page: page}
	if filter == FilterRecent {
		f.Recent = true
		f.Since = now.Add(-RecentWindow)
	}
	if sort == SortCreatedAt {
		f.SortBy = SortCreatedAt
	}
	return f
}
