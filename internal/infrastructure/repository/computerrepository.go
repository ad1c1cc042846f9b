package repository

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"fleetdesk/internal/domain/computer"
	"fleetdesk/internal/infrastructure/persistence/mappers"
	"fleetdesk/internal/infrastructure/persistence/models"
	"fleetdesk/internal/shared/db"
	"fleetdesk/internal/shared/query"
)

type ComputerRepository struct {
	db *gorm.DB
}

func NewComputerRepository(gdb *gorm.DB) *ComputerRepository {
	return &ComputerRepository{db: gdb}
}

// searchScope matches term against host name, label, secseal, IPv4 address
// and the MAC address with its colons removed.
func (r *ComputerRepository) searchScope(term string) func(*gorm.DB) *gorm.DB {
	// A Caser is stateful, so one is built per search.
	pattern := "%" + cases.Lower(language.Und).String(term) + "%"
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where(
			"LOWER(host_name) LIKE ? OR "+castText(tx, "uuid_label")+" LIKE ? OR "+
				castText(tx, "secseal")+" LIKE ? OR ipv4_address LIKE ? OR "+
				"LOWER(REPLACE(mac_address, ':', '')) LIKE ?",
			pattern, pattern, pattern, pattern, pattern,
		)
	}
}

func (r *ComputerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.ComputerModel{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count computers: %w", err)
	}
	return count, nil
}

func (r *ComputerRepository) CountSearch(ctx context.Context, term string) (int64, error) {
	var count int64
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ComputerModel{}).
		Scopes(r.searchScope(term)).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count searched computers: %w", err)
	}
	return count, nil
}

func (r *ComputerRepository) CountByNetwork(ctx context.Context) ([]computer.NetworkCount, error) {
	var rows []struct {
		Network string
		Count   int64
	}
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ComputerModel{}).
		Select("network, COUNT(network) AS count").
		Group("network").
		Order("network").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count computers by network: %w", err)
	}

	out := make([]computer.NetworkCount, 0, len(rows))
	for _, row := range rows {
		out = append(out, computer.NetworkCount{Network: row.Network, Count: row.Count})
	}
	return out, nil
}

func (r *ComputerRepository) MaxLabel(ctx context.Context) (int, error) {
	var label int
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ComputerModel{}).
		Select("COALESCE(MAX(uuid_label), 0)").
		Scan(&label).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read max label: %w", err)
	}
	return label, nil
}

func (r *ComputerRepository) LastGeneratedHostName(ctx context.Context) (string, error) {
	var names []string
	err := db.GetTxFromContext(ctx, r.db).
		Model(&models.ComputerModel{}).
		Where("host_name LIKE ?", computer.HostNamePrefix+"%").
		Order("host_name DESC").
		Limit(1).
		Pluck("host_name", &names).Error
	if err != nil {
		return "", fmt.Errorf("failed to read last host name: %w", err)
	}
	if len(names) == 0 {
		return "", nil
	}
	return names[0], nil
}

func (r *ComputerRepository) Create(ctx context.Context, c *computer.Computer) error {
	model := mappers.ComputerToModel(c)
	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create computer: %w", err)
	}
	c.Label = model.UUIDLabel
	return nil
}

func (r *ComputerRepository) first(ctx context.Context, where string, arg any) (*computer.Computer, error) {
	var model models.ComputerModel
	err := db.GetTxFromContext(ctx, r.db).Where(where, arg).First(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get computer: %w", err)
	}
	return mappers.ComputerToEntity(&model), nil
}

func (r *ComputerRepository) GetByLabel(ctx context.Context, label int) (*computer.Computer, error) {
	return r.first(ctx, "uuid_label = ?", label)
}

func (r *ComputerRepository) GetByHostName(ctx context.Context, hostName string) (*computer.Computer, error) {
	return r.first(ctx, "host_name = ?", hostName)
}

func (r *ComputerRepository) List(ctx context.Context, page query.Page) ([]*computer.Computer, error) {
	var rows []models.ComputerModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.OrderDesc("uuid_label"), db.Paginate(page.Limit, page.Offset)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list computers: %w", err)
	}
	return mappers.ComputersToEntities(rows), nil
}

func (r *ComputerRepository) Search(ctx context.Context, term string, page query.Page) ([]*computer.Computer, error) {
	var rows []models.ComputerModel
	err := db.GetTxFromContext(ctx, r.db).
		Scopes(r.searchScope(term), db.OrderDesc("uuid_label"), db.Paginate(page.Limit, page.Offset)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search computers: %w", err)
	}
	return mappers.ComputersToEntities(rows), nil
}

// requiredComputerColumns are written on every update, zero values included.
var requiredComputerColumns = []string{
	"host_name", "mac_address", "ipv4_address", "network", "os", "network_adapter", "secseal",
}

// Update overwrites the record; nil optional fields keep their stored value.
func (r *ComputerRepository) Update(ctx context.Context, label int, c *computer.Computer) (int64, error) {
	model := mappers.ComputerToModel(c)
	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.ComputerModel{}).
		Where("uuid_label = ?", label).
		Select(updateColumns(model)).
		Updates(model)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update computer: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// updateColumns lists the columns Updates must touch; a struct update alone skips zero values.
func updateColumns(m *models.ComputerModel) []string {
	cols := append([]string(nil), requiredComputerColumns...)
	optional := []struct {
		column string
		value  *string
	}{
		{"make", m.Make},
		{"model", m.Model},
		{"pc_serialnumber", m.PCSerialNumber},
		{"net_adapter_serialnumber", m.NetAdapterSerialNumber},
		{"user_name", m.UserName},
		{"yat", m.YAT},
		{"office_number", m.OfficeNumber},
		{"telephone", m.Telephone},
		{"office_location", m.OfficeLocation},
	}
	for _, o := range optional {
		if o.value != nil {
			cols = append(cols, o.column)
		}
	}
	return cols
}

func (r *ComputerRepository) Delete(ctx context.Context, label int) (int64, error) {
	result := db.GetTxFromContext(ctx, r.db).Where("uuid_label = ?", label).Delete(&models.ComputerModel{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete computer: %w", result.Error)
	}
	return result.RowsAffected, nil
}
