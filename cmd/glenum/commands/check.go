package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/glenum/emit"
	"github.com/teranos/glenum/errors"
)

// ErrStale is returned by check when generated files differ from disk.
var ErrStale = errors.New("generated files are out of date")

// CheckCmd checks if generated files are up to date
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Check if generated files are up to date",
	Long: `Regenerate every target in memory and compare with the files in the
output directory, ignoring the generator banner line that changes between
glenum releases.

Exits non-zero when any file is missing or differs.

Examples:
  glenum check                     # Check configured targets
  glenum check --target c -o include`,
	RunE: runCheck,
}

func init() {
	addBuildFlags(CheckCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, opts, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Output.Dir == "" || cfg.Output.Dir == stdoutDir {
		return errors.WithHint(errors.New("check needs an output directory"), "set output.dir or pass --output")
	}

	spec, _, err := readSpec(cfg.Registry.Path, opts)
	if err != nil {
		return err
	}
	files, err := renderAll(cmd.Context(), cfg, spec)
	if err != nil {
		return err
	}

	rendered := make(map[string]string, len(files))
	for _, f := range files {
		rendered[f.Name] = f.Content
	}
	result, err := emit.Compare(cfg.Output.Dir, rendered)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.UpToDate {
		pterm.Success.WithWriter(out).Println("Generated files are up to date")
		return nil
	}

	pterm.Error.WithWriter(out).Println("Generated files are out of date:")
	for _, name := range result.Stale() {
		pterm.Fprintln(out, fmt.Sprintf("  - %s (%s)", name, result.Differences[name]))
	}
	return errors.WithHint(ErrStale, "run 'glenum generate' to update them")
}
