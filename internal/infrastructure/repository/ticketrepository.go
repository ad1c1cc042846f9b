package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fleetdesk/internal/domain/ticket"
	"fleetdesk/internal/infrastructure/persistence/mappers"
	"fleetdesk/internal/infrastructure/persistence/models"
	"fleetdesk/internal/shared/db"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(gdb *gorm.DB) *TicketRepository {
	return &TicketRepository{db: gdb}
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, s.String())
		}
		tx = tx.Where("status IN ?", statuses)
	}

	var rows []models.TicketModel
	err := tx.Scopes(db.OrderDesc("created_at"), db.Paginate(filter.Page.Limit, filter.Page.Offset)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	return mappers.TicketsToEntities(rows), nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context, status ticket.Status) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("status = ?", status.String()).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return count, nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id int) (*ticket.Ticket, error) {
	var model models.TicketModel
	err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return mappers.TicketToEntity(&model), nil
}

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := mappers.TicketToModel(t)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	t.ID = model.ID
	t.CreatedAt = model.CreatedAt
	t.Status = ticket.Status(model.Status)
	return nil
}

// Update always writes priority; the other fields only when set.
func (r *TicketRepository) Update(ctx context.Context, id int, patch ticket.Patch) (int64, error) {
	updates := map[string]interface{}{
		"priority": patch.Priority,
	}
	if patch.Status != nil {
		updates["status"] = patch.Status.String()
	}
	optional := map[string]*string{
		"division":      patch.Division,
		"office_number": patch.OfficeNumber,
		"phone":         patch.Phone,
		"client_name":   patch.ClientName,
		"descr":         patch.Descr,
		"title":         patch.Title,
	}
	for column, value := range optional {
		if value != nil {
			updates[column] = *value
		}
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.TicketModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *TicketRepository) Delete(ctx context.Context, id int) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Where("id = ?", id).Delete(&models.TicketModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete ticket: %w", result.Error)
	}
	return result.RowsAffected, nil
}
