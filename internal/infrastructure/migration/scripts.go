package migration

import "embed"

// Scripts target PostgreSQL. Other drivers use the gorm AutoMigrate strategy.
//
//go:embed scripts/goose/*.sql scripts/migrate/*.sql
var scriptsFS embed.FS

const (
	gooseDir   = "scripts/goose"
	migrateDir = "scripts/migrate"
)
