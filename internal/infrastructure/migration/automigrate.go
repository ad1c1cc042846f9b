package migration

import (
	"fmt"

	"gorm.io/gorm"

	"fleetdesk/internal/infrastructure/persistence/models"
	"fleetdesk/internal/shared/logger"
)

// AutoMigrateStrategy creates the schema from the gorm models. It works on every
// driver and is the only strategy for sqlite and mysql.
type AutoMigrateStrategy struct {
	logger logger.Interface
}

func NewAutoMigrateStrategy(log logger.Interface) *AutoMigrateStrategy {
	return &AutoMigrateStrategy{logger: log.With("component", "migration.auto")}
}

func (s *AutoMigrateStrategy) Migrate(db *gorm.DB) error {
	all := models.All()
	s.logger.Infow("starting gorm auto migration", "models_count", len(all))

	if err := db.AutoMigrate(all...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	return nil
}

func (s *AutoMigrateStrategy) MigrateDown(db *gorm.DB, steps int) error {
	return fmt.Errorf("down migration is not supported by the auto strategy")
}

// Version is always 0; AutoMigrate keeps no history.
func (s *AutoMigrateStrategy) Version(db *gorm.DB) (int64, error) {
	return 0, nil
}

func (s *AutoMigrateStrategy) GetName() string {
	return "gorm_auto_migrate"
}
