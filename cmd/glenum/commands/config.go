package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/glenum/config"
	"github.com/teranos/glenum/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and validate glenum configuration",
	Long: `Display and validate glenum configuration.

Configuration sources (in order of precedence):
1. Command line flags
2. Environment variables (GLENUM_* prefix, e.g. GLENUM_API_FAMILY)
3. Project config (glenum.toml, searched upwards from the working directory)
4. Default values

Examples:
  glenum config show                    # Show current configuration
  glenum config show --format json      # Show configuration in JSON format
  glenum config validate                # Validate current configuration`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the effective glenum configuration from all sources",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Long:  "Validate the effective configuration and report unknown keys in the config file",
	RunE:  runConfigValidate,
}

var configFormat string

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	out := cmd.OutOrStdout()
	if configFormat != "json" {
		source := config.UsedConfigFile()
		if source == "" {
			source = "defaults"
		}
		fmt.Fprintf(out, "# glenum configuration (%s)\n", source)
	}
	return writeFormatted(out, configFormat, cfg)
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	out := cmd.OutOrStdout()
	if path := config.UsedConfigFile(); path != "" {
		keys, err := config.UnknownKeys(path)
		if err != nil {
			return err
		}
		for _, k := range keys {
			pterm.Warning.WithWriter(out).Printf("Unknown key %q in %s\n", k, path)
		}
	}

	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}

	pterm.Success.WithWriter(out).Println("Configuration is valid")
	return nil
}
