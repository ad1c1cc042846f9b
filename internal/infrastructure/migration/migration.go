package migration

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"fleetdesk/internal/shared/logger"
)

const (
	ToolGoose   = "goose"
	ToolMigrate = "migrate"
	ToolAuto    = "auto"
)

// NewStrategy picks the strategy for tool. An empty tool selects goose on
// postgres and AutoMigrate elsewhere.
func NewStrategy(tool, driver string, log logger.Interface) (Strategy, error) {
	switch strings.ToLower(tool) {
	case "":
		if driver == "" || driver == "postgres" {
			return NewGooseStrategy(log), nil
		}
		return NewAutoMigrateStrategy(log), nil
	case ToolGoose:
		return NewGooseStrategy(log), nil
	case ToolMigrate:
		return NewGolangMigrateStrategy(log), nil
	case ToolAuto:
		return NewAutoMigrateStrategy(log), nil
	default:
		return nil, fmt.Errorf("unknown migration tool: %s", tool)
	}
}

// Manager runs a migration strategy and logs around it.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

func NewManager(strategy Strategy, log logger.Interface) *Manager {
	return &Manager{
		strategy: strategy,
		logger:   log.Named("migration.manager"),
	}
}

// Migrate executes the configured migration strategy
func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())

	if err := m.strategy.Migrate(db); err != nil {
		m.logger.Errorw("migration failed",
			"strategy", m.strategy.GetName(),
			"error", err)
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}

	m.logger.Infow("database migration completed successfully", "strategy", m.strategy.GetName())
	return nil
}

func (m *Manager) Strategy() Strategy {
	return m.strategy
}

// Describe returns a human readable description of the strategy.
func Describe(s Strategy) string {
	switch s.GetName() {
	case "gorm_auto_migrate":
		return "GORM AutoMigrate - schema derived from the model definitions"
	case "golang_migrate":
		return "golang-migrate - versioned SQL scripts (up/down files)"
	case "goose":
		return "goose - versioned SQL scripts"
	default:
		return "Unknown migration strategy"
	}
}
