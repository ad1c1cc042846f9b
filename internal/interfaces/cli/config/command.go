package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	appConfig "fleetdesk/internal/infrastructure/config"
	"fleetdesk/internal/shared/utils"
)

var (
	env        string
	configPath string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long:  `Print the configuration after merging the config file, .env and FLEETDESK_* variables. Secrets are masked.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := appConfig.Load(env, configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	out, err := Render(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// Render marshals cfg as YAML with every secret masked.
func Render(cfg *appConfig.Config) ([]byte, error) {
	masked := *cfg
	masked.Database.Password = utils.MaskSecret(cfg.Database.Password)
	masked.Identity.ClientSecret = utils.MaskSecret(cfg.Identity.ClientSecret)
	masked.Email.SMTPPassword = utils.MaskSecret(cfg.Email.SMTPPassword)
	masked.Redis.Password = utils.MaskSecret(cfg.Redis.Password)

	out, err := yaml.Marshal(&masked)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
