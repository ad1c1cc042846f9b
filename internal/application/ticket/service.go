// Package ticket implements the helpdesk ticket operations.
package ticket

import (
	"context"
	"fmt"
	"time"

	"fleetdesk/internal/application/ticket/dto"
	"fleetdesk/internal/domain/ticket"
	"fleetdesk/internal/shared/db"
	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
	"fleetdesk/internal/shared/query"
	"fleetdesk/internal/shared/services/markdown"
)

const notifyTimeout = 10 * time.Second

// Notifier announces new tickets. Delivery is best-effort.
type Notifier interface {
	TicketCreated(ctx context.Context, t *ticket.Ticket) error
}

type Service struct {
	tickets  ticket.Repository
	notifier Notifier
	renderer markdown.Renderer
	logger   logger.Interface
}

func NewService(
	tickets ticket.Repository,
	notifier Notifier,
	renderer markdown.Renderer,
	logger logger.Interface,
) *Service {
	return &Service{
		tickets:  tickets,
		notifier: notifier,
		renderer: renderer,
		logger:   logger,
	}
}

// List returns tickets in any of the given statuses; no statuses means all.
func (s *Service) List(ctx context.Context, statuses []string, page query.Page) ([]dto.TicketDTO, error) {
	parsed, err := ticket.ParseStatuses(statuses)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	ts, err := s.tickets.List(ctx, ticket.Filter{Statuses: parsed, Page: page})
	if err != nil {
		return nil, err
	}
	return dto.ToTicketDTOs(ts), nil
}

func (s *Service) CountOpen(ctx context.Context) (int64, error) {
	return s.tickets.CountByStatus(ctx, ticket.StatusOpen)
}

// Get reports an unknown id as a validation error.
func (s *Service) Get(ctx context.Context, id int) (*dto.TicketDTO, error) {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, errors.NewValidationError(fmt.Sprintf("Ticket with id %d does not exist...", id))
	}
	out := dto.ToTicketDTO(t)
	return &out, nil
}

// View is Get with the description rendered from Markdown.
func (s *Service) View(ctx context.Context, id int) (*dto.TicketView, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &dto.TicketView{TicketDTO: *t}
	if t.Descr != nil {
		rendered, err := s.renderer.Render(*t.Descr)
		if err != nil {
			return nil, fmt.Errorf("failed to render ticket description: %w", err)
		}
		view.DescrHTML = rendered
	}
	return view, nil
}

func (s *Service) Create(ctx context.Context, req dto.CreateTicketRequest) (int, error) {
	t := &ticket.Ticket{
		CreatedBy:    req.CreatedBy,
		Status:       ticket.StatusOpen,
		Priority:     req.Priority,
		Division:     req.Division,
		OfficeNumber: req.OfficeNumber,
		Phone:        req.Phone,
		ClientName:   req.ClientName,
		Descr:        req.Descr,
		Title:        req.Title,
	}
	if err := s.tickets.Create(ctx, t); err != nil {
		return 0, err
	}

	s.logger.Infow("ticket created", "id", t.ID, "priority", t.Priority, "created_by", t.CreatedBy)
	if s.notifier != nil {
		snapshot := *t
		db.AfterCommit(ctx, func() { s.notify(ctx, &snapshot) })
	}
	return t.ID, nil
}

// notify sends the creation notice once the ticket is committed; failures are only logged.
func (s *Service) notify(ctx context.Context, t *ticket.Ticket) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), notifyTimeout)
	defer cancel()
	if err := s.notifier.TicketCreated(ctx, t); err != nil {
		s.logger.Warnw("failed to send ticket notification", "ticket_id", t.ID, "error", err)
	}
}

func (s *Service) Update(ctx context.Context, id int, req dto.UpdateTicketRequest) (int64, error) {
	patch := ticket.Patch{
		Priority:     req.Priority,
		Division:     req.Division,
		OfficeNumber: req.OfficeNumber,
		Phone:        req.Phone,
		ClientName:   req.ClientName,
		Descr:        req.Descr,
		Title:        req.Title,
	}
	if req.Status != nil {
		status := ticket.Status(*req.Status)
		if !status.IsValid() {
			return 0, errors.NewValidationError(fmt.Sprintf("invalid ticket status: %s", *req.Status))
		}
		patch.Status = &status
	}

	affected, err := s.tickets.Update(ctx, id, patch)
	if err != nil {
		return 0, err
	}
	s.logger.Infow("ticket updated", "id", id, "affected", affected)
	return affected, nil
}

func (s *Service) Delete(ctx context.Context, id int) (int64, error) {
	affected, err := s.tickets.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.logger.Infow("ticket deleted", "id", id, "affected", affected)
	return affected, nil
}
