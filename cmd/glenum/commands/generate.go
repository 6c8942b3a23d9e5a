package commands

import (
	"github.com/spf13/cobra"

	"github.com/teranos/glenum/logger"
)

// GenerateCmd represents the generate command
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Extract enumerants from the registry and emit constant declarations",
	Long: `Read the registry document, keep the enumerants that apply to the
selected API family and write one constant declaration file per target.

Targets are rendered concurrently. Files are only replaced once every target
has rendered, and each file is replaced atomically, so a failed run leaves
existing output untouched.

Settings come from (highest precedence first): flags, GLENUM_* environment
variables, glenum.toml (searched upwards from the working directory) and
built-in defaults.

Examples:
  glenum generate                                  # Use glenum.toml / defaults
  glenum generate --api gles2 --target rust,c      # OpenGL ES, two targets
  glenum generate -o - --target go                 # Print Go source to stdout
  glenum generate --skip-invalid                   # Warn on bad entries instead of failing`,
	RunE: runGenerate,
}

func init() {
	addBuildFlags(GenerateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, opts, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	progress := NewEmitter(cmd.ErrOrStderr(), logger.JSONOutput, logger.Verbosity)
	return runBuild(cmd.Context(), cfg, opts, cmd.OutOrStdout(), progress)
}
