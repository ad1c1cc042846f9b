package entry

import (
	"context"
	"time"

	"fleetdesk/internal/shared/query"
)

type Repository interface {
	List(ctx context.Context, page query.Page) ([]*Entry, error)
	ListByLabel(ctx context.Context, label int, page query.Page) ([]*Entry, error)
	ListJobs(ctx context.Context, filter JobFilter) ([]*Job, error)
	CountJobs(ctx context.Context, filter JobFilter) (int64, error)
	// GetPolicy returns nil, nil when the entry does not exist.
	GetPolicy(ctx context.Context, id int) (*Policy, error)
	Traffic(ctx context.Context, since time.Time, networks []string) ([]TrafficPoint, error)
	Create(ctx context.Context, e *Entry) error
	Sign(ctx context.Context, id int, sign Sign) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
}
