package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"fleetdesk/internal/domain/entry"
	"fleetdesk/internal/infrastructure/persistence/mappers"
	"fleetdesk/internal/infrastructure/persistence/models"
	"fleetdesk/internal/shared/db"
	"fleetdesk/internal/shared/query"
)

const jobColumns = "entries.uuid, entries.uuid_label, computers.host_name, entries.created_by, " +
	"entries.created_at, entries.signed_by, entries.signed_at, entries.status, entries.reason"

type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(gdb *gorm.DB) *EntryRepository {
	return &EntryRepository{db: gdb}
}

func (r *EntryRepository) List(ctx context.Context, page query.Page) ([]*entry.Entry, error) {
	var rows []models.EntryModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OrderDesc("created_at"), db.Paginate(page.Limit, page.Offset)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return mappers.EntriesToEntities(rows), nil
}

func (r *EntryRepository) ListByLabel(ctx context.Context, label int, page query.Page) ([]*entry.Entry, error) {
	var rows []models.EntryModel
	err := db.GetTxFromContext(ctx, r.db).
		Where("uuid_label = ?", label).
		Scopes(db.OrderDesc("created_at"), db.Paginate(page.Limit, page.Offset)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list entries of computer %d: %w", label, err)
	}
	return mappers.EntriesToEntities(rows), nil
}

// recentScope keeps open jobs and jobs closed after since.
func recentScope(f entry.JobFilter) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if !f.Recent {
			return tx
		}
		return tx.Where(
			"entries.status = ? OR (entries.status = ? AND entries.signed_at >= ?)",
			entry.StatusOpen, entry.StatusClosed, f.Since,
		)
	}
}

func (r *EntryRepository) ListJobs(ctx context.Context, f entry.JobFilter) ([]*entry.Job, error) {
	var rows []models.JobRow
	err := db.GetTxFromContext(ctx, r.db).
		Table("entries").
		Select(jobColumns).
		Joins("JOIN computers ON entries.uuid_label = computers.uuid_label").
		Scopes(recentScope(f), db.OrderDesc("entries."+f.SortBy), db.Paginate(f.Page.Limit, f.Page.Offset)).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	return mappers.JobsToEntities(rows), nil
}

func (r *EntryRepository) CountJobs(ctx context.Context, f entry.JobFilter) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.EntryModel{}).
		Scopes(recentScope(f)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count jobs: %w", err)
	}
	return count, nil
}

func (r *EntryRepository) GetPolicy(ctx context.Context, id int) (*entry.Policy, error) {
	var row models.PolicyRow
	err := db.GetTxFromContext(ctx, r.db).
		Table("entries").
		Select("entries.uuid_label, computers.host_name, computers.mac_address, computers.ipv4_address, "+
			"computers.user_name, computers.office_location, computers.telephone").
		Joins("JOIN computers ON entries.uuid_label = computers.uuid_label").
		Where("entries.uuid = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get policy of entry %d: %w", id, err)
	}
	return mappers.PolicyToEntity(&row), nil
}

type trafficKey struct {
	date    datatypes.Date
	network string
}

// Traffic buckets entries per UTC day in Go so the query stays portable across drivers.
func (r *EntryRepository) Traffic(ctx context.Context, since time.Time, networks []string) ([]entry.TrafficPoint, error) {
	var rows []struct {
		CreatedAt time.Time
		Network   string
	}
	err := db.GetTxFromContext(ctx, r.db).
		Table("entries").
		Select("entries.created_at, computers.network").
		Joins("JOIN computers ON entries.uuid_label = computers.uuid_label").
		Where("computers.network IN ? AND entries.created_at >= ?", networks, since).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to read traffic: %w", err)
	}

	counts := make(map[trafficKey]int64)
	for _, row := range rows {
		t := row.CreatedAt.UTC()
		day := datatypes.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
		counts[trafficKey{date: day, network: row.Network}]++
	}

	points := make([]entry.TrafficPoint, 0, len(counts))
	for k, n := range counts {
		points = append(points, entry.TrafficPoint{Date: time.Time(k.date), Network: k.network, Count: n})
	}
	sort.Slice(points, func(i, j int) bool {
		if !points[i].Date.Equal(points[j].Date) {
			return points[i].Date.Before(points[j].Date)
		}
		return points[i].Network < points[j].Network
	})
	return points, nil
}

func (r *EntryRepository) Create(ctx context.Context, e *entry.Entry) error {
	model := mappers.EntryToModel(e)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	e.ID = model.UUID
	e.CreatedAt = model.CreatedAt
	return nil
}

func (r *EntryRepository) Sign(ctx context.Context, id int, sign entry.Sign) (int64, error) {
	updates := map[string]interface{}{
		"signed_at": sign.SignedAt,
	}
	if sign.Status != nil {
		updates["status"] = *sign.Status
	}
	if sign.SignedBy != nil {
		updates["signed_by"] = *sign.SignedBy
	}
	if sign.Label != nil {
		updates["uuid_label"] = *sign.Label
	}
	if sign.CreatedBy != nil {
		updates["created_by"] = *sign.CreatedBy
	}
	if sign.Reason != nil {
		updates["reason"] = *sign.Reason
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.EntryModel{}).
		Where("uuid = ?", id).
		Updates(updates)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to sign entry: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *EntryRepository) Delete(ctx context.Context, id int) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Where("uuid = ?", id).Delete(&models.EntryModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete entry: %w", result.Error)
	}
	return result.RowsAffected, nil
}
