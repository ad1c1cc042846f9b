package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fleetdesk/internal/domain/operator"
	"fleetdesk/internal/infrastructure/persistence/mappers"
	"fleetdesk/internal/infrastructure/persistence/models"
	"fleetdesk/internal/shared/db"
	"fleetdesk/internal/shared/query"
)

type OperatorRepository struct {
	db *gorm.DB
}

func NewOperatorRepository(gdb *gorm.DB) *OperatorRepository {
	return &OperatorRepository{db: gdb}
}

func (r *OperatorRepository) List(ctx context.Context, page query.Page) ([]*operator.Operator, error) {
	var rows []models.OperatorModel
	err := db.GetTxFromContext(ctx, r.db).
		Order("id").
		Scopes(db.Paginate(page.Limit, page.Offset)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list operators: %w", err)
	}
	return mappers.OperatorsToEntities(rows), nil
}

func (r *OperatorRepository) GetByID(ctx context.Context, id int) (*operator.Operator, error) {
	var model models.OperatorModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}
	return mappers.OperatorToEntity(&model), nil
}

func (r *OperatorRepository) Create(ctx context.Context, o *operator.Operator) error {
	model := mappers.OperatorToModel(o)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create operator: %w", err)
	}
	o.ID = model.ID
	return nil
}

func (r *OperatorRepository) Update(ctx context.Context, id int, patch operator.Patch) (int64, error) {
	updates := map[string]interface{}{}
	if patch.Rank != nil {
		updates["rank"] = *patch.Rank
	}
	if patch.FName != nil {
		updates["fname"] = *patch.FName
	}
	if patch.LName != nil {
		updates["lname"] = *patch.LName
	}

	tx := db.GetTxFromContext(ctx, r.db).Model(&models.OperatorModel{}).Where("id = ?", id)
	if len(updates) == 0 {
		// Nothing to change; report whether the row exists.
		var count int64
		if err := tx.Count(&count).Error; err != nil {
			return 0, fmt.Errorf("failed to update operator: %w", err)
		}
		return count, nil
	}

	result := tx.Updates(updates)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update operator: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *OperatorRepository) Delete(ctx context.Context, id int) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.OperatorModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete operator: %w", result.Error)
	}
	return result.RowsAffected, nil
}
