package operator

import (
	"context"
	"fmt"

	"fleetdesk/internal/application/operator/dto"
	"fleetdesk/internal/domain/operator"
	"fleetdesk/internal/shared/errors"
	"fleetdesk/internal/shared/logger"
	"fleetdesk/internal/shared/query"
)

type Service struct {
	operators operator.Repository
	logger    logger.Interface
}

func NewService(operators operator.Repository, logger logger.Interface) *Service {
	return &Service{operators: operators, logger: logger}
}

func (s *Service) List(ctx context.Context, page query.Page) ([]dto.OperatorDTO, error) {
	ops, err := s.operators.List(ctx, page)
	if err != nil {
		return nil, err
	}
	return dto.ToOperatorDTOs(ops), nil
}

func (s *Service) Get(ctx context.Context, id int) (*dto.OperatorDTO, error) {
	o, err := s.operators.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("Operator with id %d does not exist...", id))
	}
	out := dto.ToOperatorDTO(o)
	return &out, nil
}

func (s *Service) Create(ctx context.Context, req dto.CreateOperatorRequest) (int, error) {
	o := &operator.Operator{Rank: req.Rank, FName: req.FName, LName: req.LName}
	if err := s.operators.Create(ctx, o); err != nil {
		return 0, err
	}
	s.logger.Infow("operator created", "id", o.ID)
	return o.ID, nil
}

func (s *Service) Update(ctx context.Context, id int, req dto.UpdateOperatorRequest) (int64, error) {
	if req.Rank == nil && req.LName == nil && req.FName == nil {
		return 0, errors.NewValidationError("Expected a json, got nothing")
	}

	affected, err := s.operators.Update(ctx, id, operator.Patch{
		Rank:  req.Rank,
		FName: req.FName,
		LName: req.LName,
	})
	if err != nil {
		return 0, err
	}
	s.logger.Infow("operator updated", "id", id, "affected", affected)
	return affected, nil
}

// Delete returns 0 for an unknown id.
func (s *Service) Delete(ctx context.Context, id int) (int64, error) {
	affected, err := s.operators.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.logger.Infow("operator deleted", "id", id, "affected", affected)
	return affected, nil
}
