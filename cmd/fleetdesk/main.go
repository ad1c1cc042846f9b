package main

import (
	"os"

	"github.com/spf13/cobra"

	configCmd "fleetdesk/internal/interfaces/cli/config"
	"fleetdesk/internal/interfaces/cli/migrate"
	"fleetdesk/internal/interfaces/cli/server"
	"fleetdesk/internal/shared/version"
)

// @title           Fleetdesk API
// @version         1.0
// @description     Helpdesk backend for computers, jobs, tickets and identity users.
// @BasePath        /api/v1
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	rootCmd := &cobra.Command{
		Use:     "fleetdesk",
		Short:   "Fleetdesk - helpdesk backend",
		Long:    `Fleetdesk serves the helpdesk JSON API and web UI, and ships migration and configuration tools.`,
		Version: version.String(),
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		configCmd.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
