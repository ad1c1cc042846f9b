// Package ticket describes helpdesk support tickets.
package ticket

import (
	"context"
	"time"

	"fleetdesk/internal/shared/query"
)

type Ticket struct {
	ID           int
	CreatedBy    string
	CreatedAt    time.Time
	Status       Status
	Priority     string
	Division     *string
	OfficeNumber *string
	Phone        *string
	ClientName   *string
	Descr        *string
	Title        string
}

// Patch holds the fields of an update; nil fields are left unchanged.
type Patch struct {
	Priority     string
	Status       *Status
	Division     *string
	OfficeNumber *string
	Phone        *string
	ClientName   *string
	Descr        *string
	Title        *string
}

// Filter selects tickets. An empty Statuses matches every status.
type Filter struct {
	Statuses []Status
	Page     query.Page
}

type Repository interface {
	List(ctx context.Context, filter Filter) ([]*Ticket, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
	// GetByID returns nil, nil when the ticket does not exist.
	GetByID(ctx context.Context, id int) (*Ticket, error)
	Create(ctx context.Context, t *Ticket) error
	Update(ctx context.Context, id int, patch Patch) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
}
