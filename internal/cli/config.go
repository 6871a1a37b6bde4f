package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tacogips/ignite/internal/app"
)

// configCmd groups configuration subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the ignite configuration file",
	Long: `Manage the ignite configuration file.

The file is read from ~/.config/ignite/config.yaml unless --config is given.
Every key can be overridden with an IGNITE_ environment variable, for
example IGNITE_REGISTRY or IGNITE_GITHUB_TOKEN.`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the default configuration file.

Examples:
  ignite config init
  ignite config init --force
  ignite --config ./ignite.yaml config init`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, FlagForce, false, DescForce)

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := app.InitConfig(app.InitConfigOptions{
		Path:  globalConfig,
		Force: configInitForce,
	})
	if err != nil {
		return err
	}
	printSuccess(fmt.Sprintf("Configuration written to %s", path))
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.GitHub.Token != "" {
		cfg.GitHub.Token = "********"
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}
