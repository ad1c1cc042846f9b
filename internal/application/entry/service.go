// Package entry implements the job and history operations.
package entry

import (
	"context"
	"fmt"
	"time"

	"fleetdesk/internal/application/entry/dto"
	"fleetdesk/internal/domain/computer"
	"fleetdesk/internal/domain/entry"
	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
	"fleetdesk/internal/shared/query"
)

type Service struct {
	entries   entry.Repository
	computers computer.Repository
	logger    logger.Interface
	now       func() time.Time
}

func NewService(entries entry.Repository, computers computer.Repository, logger logger.Interface) *Service {
	return &Service{
		entries:   entries,
		computers: computers,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) List(ctx context.Context, page query.Page) ([]dto.EntryDTO, error) {
	entries, err := s.entries.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return dto.ToEntryDTOs(entries), nil
}

func (s *Service) History(ctx context.Context, label int, page query.Page) (*dto.HistoryDTO, error) {
	entries, err := s.entries.ListByLabel(ctx, label, page)
	if err != nil {
		return nil, err
	}
	history := dto.ToEntryDTOs(entries)
	return &dto.HistoryDTO{Count: len(history), History: history}, nil
}

func (s *Service) ListJobs(ctx context.Context, q dto.JobsQuery, page query.Page) ([]dto.JobDTO, error) {
	jobs, err := s.entries.ListJobs(ctx, entry.NewJobFilter(q.Filter, q.Sort, page, s.now()))
	if err != nil {
		return nil, err
	}
	return dto.ToJobDTOs(jobs), nil
}

func (s *Service) CountJobs(ctx context.Context, filter string) (int64, error) {
	return s.entries.CountJobs(ctx, entry.NewJobFilter(filter, "", query.Page{}, s.now()))
}

func (s *Service) GetPolicy(ctx context.Context, id int) (*dto.PolicyDTO, error) {
	policy, err := s.entries.GetPolicy(ctx, id)
	if err != nil {
		return nil, err
	}
	if policy == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("Job with id %d does not exist...", id))
	}
	return dto.ToPolicyDTO(policy), nil
}

// Traffic returns the per-day entry counts of the traffic networks.
func (s *Service) Traffic(ctx context.Context) ([]dto.TrafficDTO, error) {
	since := s.now().UTC().Add(-entry.TrafficWindow)
	points, err := s.entries.Traffic(ctx, since, entry.TrafficNetworks)
	if err != nil {
		return nil, err
	}
	return dto.ToTrafficDTOs(points), nil
}

// Create records an entry against an existing computer and returns the
// number of rows written.
func (s *Service) Create(ctx context.Context, req dto.CreateEntryRequest) (int64, error) {
	label := *req.UUIDLabel
	c, err := s.computers.GetByLabel(ctx, label)
	if err != nil {
		return 0, err
	}
	if c == nil {
		return 0, errors.NewValidationError(fmt.Sprintf("Computer with label %d does not exist...", label))
	}

	e := &entry.Entry{
		Label:     label,
		CreatedBy: req.CreatedBy,
		Reason:    req.Reason,
		Status:    entry.StatusOpen,
		SignedBy:  req.SignedBy,
	}
	if req.Status != nil && *req.Status != "" {
		e.Status = *req.Status
	}

	if err := s.entries.Create(ctx, e); err != nil {
		return 0, err
	}

	s.logger.Infow("entry created", "uuid", e.ID, "uuid_label", label, "reason", e.Reason)
	return 1, nil
}

// Sign applies req to the entry and stamps signed_at with the server time.
// An omitted status closes the job; an omitted signer is the caller.
func (s *Service) Sign(ctx context.Context, id int, req dto.SignEntryRequest, username string) (int64, error) {
	sign := entry.Sign{
		Label:     req.UUIDLabel,
		CreatedBy: req.CreatedBy,
		Reason:    req.Reason,
		Status:    req.Status,
		SignedBy:  req.SignedBy,
		SignedAt:  s.now().UTC(),
	}
	if sign.Status == nil {
		closed := entry.StatusClosed
		sign.Status = &closed
	}
	if sign.SignedBy == nil && username != "" {
		sign.SignedBy = &username
	}

	affected, err := s.entries.Sign(ctx, id, sign)
	if err != nil {
		return 0, err
	}

	s.logger.Infow("entry signed", "uuid", id, "status", *sign.Status, "affected", affected)
	return affected, nil
}

func (s *Service) Delete(ctx context.Context, id int) (int64, error) {
	affected, err := s.entries.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.logger.Infow("entry deleted", "uuid", id, "affected", affected)
	return affected, nil
}
