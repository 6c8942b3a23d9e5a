package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/glenum/cmd/glenum/commands"
	"github.com/teranos/glenum/config"
	"github.com/teranos/glenum/errors"
	"github.com/teranos/glenum/logger"
)

var rootCmd = &cobra.Command{
	Use:   "glenum",
	Short: "glenum - GL registry enumerant extractor",
	Long: `glenum - extract enumerated constants from an API registry (gl.xml) and
emit typed constant declarations for Rust, Go and C.

Each value gets the narrowest 8, 32 or 64-bit type that holds it, signed
only when the literal is negative.

Available commands:
  generate - Write constant declarations for the configured targets
  check    - Verify generated files are up to date
  dump     - Print extracted enumerants as yaml, toml or json
  watch    - Regenerate whenever the registry changes
  config   - Show or validate configuration
  version  - Show version information

Examples:
  glenum generate --registry gl.xml --api gl --target rust,c
  glenum check
  glenum dump --format json -v`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		jsonLog, _ := cmd.Flags().GetBool("log-json")
		if err := logger.Initialize(jsonLog, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}

		if path, _ := cmd.Flags().GetString("config"); path != "" {
			config.SetConfigFile(path)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().Bool("log-json", false, "Emit logs and progress as JSON")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default: glenum.toml found upwards from the working directory)")

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.DumpCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		for _, hint := range errors.GetAllHints(err) {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		logger.Cleanup()
		os.Exit(1)
	}
}
