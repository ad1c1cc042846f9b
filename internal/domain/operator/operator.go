// Package operator describes the helpdesk operators who register and sign jobs.
package operator

import (
	"context"
	"strings"

	"fleetdesk/internal/shared/query"
)

type Operator struct {
	ID    int
	Rank  string
	FName string
	LName string
}

// DisplayName is "rank lname fname", the form used by the registration page.
func (o *Operator) DisplayName() string {
	return strings.Join([]string{o.Rank, o.LName, o.FName}, " ")
}

// Patch holds the fields of a partial update.
type Patch struct {
	Rank  *string
	FName *string
	LName *string
}

type Repository interface {
	List(ctx context.Context, page query.Page) ([]*Operator, error)
	// GetByID returns nil, nil when the operator does not exist.
	GetByID(ctx context.Context, id int) (*Operator, error)
	Create(ctx context.Context, o *Operator) error
	Update(ctx context.Context, id int, patch Patch) (int64, error)
	Delete(ctx context.Context, id int) (int64, error)
}
