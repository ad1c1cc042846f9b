package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"

	"fleetdesk/internal/shared/logger"
)

// Generator creates new migration files on disk. Created files are picked up by
// the embedded script set at the next build.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
	now         func() time.Time
}

// NewGenerator creates a generator rooted at scriptsPath (the directory holding
// the goose and migrate sub-directories).
func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log.With("component", "migration.generator"),
		now:         time.Now,
	}
}

// CreateGoose writes a sequentially numbered goose SQL migration.
func (g *Generator) CreateGoose(name string) error {
	dir := filepath.Join(g.scriptsPath, "goose")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create scripts directory: %w", err)
	}

	goose.SetSequential(true)
	if err := goose.Create(nil, dir, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}

	g.logger.Infow("goose migration created", "name", name, "dir", dir)
	return nil
}

// CreatePair writes an up/down pair for golang-migrate and returns both paths.
func (g *Generator) CreatePair(name string) (string, string, error) {
	dir := filepath.Join(g.scriptsPath, "migrate")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create scripts directory: %w", err)
	}

	timestamp := g.now().UTC().Format("20060102150405")
	upPath := filepath.Join(dir, fmt.Sprintf("%s_%s.up.sql", timestamp, name))
	downPath := filepath.Join(dir, fmt.Sprintf("%s_%s.down.sql", timestamp, name))

	created := g.now().UTC().Format("2006-01-02 15:04:05")
	if err := os.WriteFile(upPath, []byte(fmt.Sprintf("-- Migration: %s\n-- Created: %s\n\n", name, created)), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to create up migration file: %w", err)
	}
	if err := os.WriteFile(downPath, []byte(fmt.Sprintf("-- Rollback Migration: %s\n-- Created: %s\n\n", name, created)), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to create down migration file: %w", err)
	}

	g.logger.Infow("migration files created",
		"up_file", upPath,
		"down_file", downPath)

	return upPath, downPath, nil
}
