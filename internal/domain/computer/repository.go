package computer

import (
	"context"

	"fleetdesk/internal/shared/query"
)

type Repository interface {
	Count(ctx context.Context) (int64, error)
	CountSearch(ctx context.Context, term string) (int64, error)
	CountByNetwork(ctx context.Context) ([]NetworkCount, error)
	// MaxLabel returns 0 when no computer exists.
	MaxLabel(ctx context.Context) (int, error)
	// LastGeneratedHostName returns the greatest HOST-xxxxx name, or "".
	LastGeneratedHostName(ctx context.Context) (string, error)
	Create(ctx context.Context, c *Computer) error
	// GetByLabel and GetByHostName return nil, nil when nothing matches.
	GetByLabel(ctx context.Context, label int) (*Computer, error)
	GetByHostName(ctx context.Context, hostName string) (*Computer, error)
	List(ctx context.Context, page query.Page) ([]*Computer, error)
	Search(ctx context.Context, term string, page query.Page) ([]*Computer, error)
	Update(ctx context.Context, label int, c *Computer) (int64, error)
	Delete(ctx context.Context, label int) (int64, error)
}
