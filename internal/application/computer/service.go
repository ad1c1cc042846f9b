// Package computer implements the computer registry operations.
package computer

import (
	"context"
	"fmt"

	"fleetdesk/internal/application/computer/dto"
	entrydto "fleetdesk/internal/application/entry/dto"
	"fleetdesk/internal/domain/computer"
	"fleetdesk/internal/domain/entry"
	"fleetdesk/internal/domain/operator"
	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
	"fleetdesk/internal/shared/query"
)

type Service struct {
	computers computer.Repository
	entries   entry.Repository
	operators operator.Repository
	logger    logger.Interface
}

func NewService(
	computers computer.Repository,
	entries entry.Repository,
	operators operator.Repository,
	logger logger.Interface,
) *Service {
	return &Service{
		computers: computers,
		entries:   entries,
		operators: operators,
		logger:    logger,
	}
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.computers.Count(ctx)
}

func (s *Service) CountSearch(ctx context.Context, term string) (int64, error) {
	return s.computers.CountSearch(ctx, term)
}

func (s *Service) Classes(ctx context.Context) ([]dto.NetworkCountDTO, error) {
	counts, err := s.computers.CountByNetwork(ctx)
	if err != nil {
		return nil, err
	}
	return dto.ToNetworkCountDTOs(counts), nil
}

func (s *Service) List(ctx context.Context, page query.Page) ([]dto.ComputerDTO, error) {
	cs, err := s.computers.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return dto.ToComputerDTOs(cs), nil
}

func (s *Service) Search(ctx context.Context, term string, page query.Page) ([]dto.ComputerDTO, error) {
	cs, err := s.computers.Search(ctx, term, page)
	if err != nil {
		return nil, err
	}
	return dto.ToComputerDTOs(cs), nil
}

// GetByLabel returns the computer and a page of its history. An unknown label
// is reported as a validation error.
func (s *Service) GetByLabel(ctx context.Context, label int, page query.Page) (*dto.ComputerDetailDTO, error) {
	c, err := s.computers.GetByLabel(ctx, label)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.NewValidationError(fmt.Sprintf("Computer with label %d does not exist...", label))
	}
	return s.withHistory(ctx, c, page)
}

func (s *Service) GetByHostName(ctx context.Context, hostName string, page query.Page) (*dto.ComputerDetailDTO, error) {
	c, err := s.computers.GetByHostName(ctx, hostName)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, errors.NewValidationError(fmt.Sprintf("Computer with hostname %s does not exist...", hostName))
	}
	return s.withHistory(ctx, c, page)
}

func (s *Service) withHistory(ctx context.Context, c *computer.Computer, page query.Page) (*dto.ComputerDetailDTO, error) {
	entries, err := s.entries.ListByLabel(ctx, c.Label, page)
	if err != nil {
		return nil, err
	}
	history := entrydto.ToEntryDTOs(entries)
	return &dto.ComputerDetailDTO{
		Computer: dto.ToComputerDTO(c),
		Entries:  entrydto.HistoryDTO{Count: len(history), History: history},
	}, nil
}

// NextLabel is the label a registration without uuid_label receives.
func (s *Service) NextLabel(ctx context.Context) (int, error) {
	highest, err := s.computers.MaxLabel(ctx)
	if err != nil {
		return 0, err
	}
	if highest == 0 {
		return computer.FirstLabel, nil
	}
	return highest + 1, nil
}

// Create registers the computer and its Registration entry. Both rows share
// the request transaction.
func (s *Service) Create(ctx context.Context, req dto.RegistrationRequest) (*dto.CreateComputerResult, error) {
	label := 0
	if req.UUIDLabel != nil {
		label = *req.UUIDLabel
	} else {
		next, err := s.NextLabel(ctx)
		if err != nil {
			return nil, err
		}
		label = next
	}

	c := req.ToComputer(label)
	if err := s.computers.Create(ctx, c); err != nil {
		return nil, err
	}

	e := &entry.Entry{
		Label:     c.Label,
		CreatedBy: req.CreatedBy,
		Reason:    entry.ReasonRegistration,
		Status:    entry.StatusOpen,
	}
	if err := s.entries.Create(ctx, e); err != nil {
		return nil, err
	}

	s.logger.Infow("computer registered", "uuid_label", c.Label, "host_name", c.HostName, "created_by", req.CreatedBy)
	return &dto.CreateComputerResult{Computer: c.Label, Entry: e.ID}, nil
}

// Update replaces every column of the computer except its label.
func (s *Service) Update(ctx context.Context, label int, req dto.RegistrationRequest) (int64, error) {
	affected, err := s.computers.Update(ctx, label, req.ToComputer(label))
	if err != nil {
		return 0, err
	}
	s.logger.Infow("computer updated", "uuid_label", label, "affected", affected, "updated_by", req.CreatedBy)
	return affected, nil
}

func (s *Service) Delete(ctx context.Context, label int) (int64, error) {
	affected, err := s.computers.Delete(ctx, label)
	if err != nil {
		return 0, err
	}
	s.logger.Infow("computer deleted", "uuid_label", label, "affected", affected)
	return affected, nil
}

// RegistrationForm gathers the defaults shown on the new computer page.
func (s *Service) RegistrationForm(ctx context.Context) (*dto.RegistrationForm, error) {
	label, err := s.NextLabel(ctx)
	if err != nil {
		return nil, err
	}

	last, err := s.computers.LastGeneratedHostName(ctx)
	if err != nil {
		return nil, err
	}

	ops, err := s.operators.List(ctx, query.Page{})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ops))
	for _, o := range ops {
		names = append(names, o.DisplayName())
	}

	return &dto.RegistrationForm{
		NextLabel:    label,
		NextHostName: computer.NextHostName(last),
		Operators:    names,
	}, nil
}
