package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/glenum/logger"
	"github.com/teranos/glenum/watch"
)

// WatchCmd regenerates whenever the registry changes.
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the registry file changes",
	Long: `Run generate once, then again each time the registry document is
written. Rapid successive writes are collapsed (watch.debounce_ms).
A failed rebuild is reported and watching continues. Stop with Ctrl-C.

Examples:
  glenum watch
  glenum watch --registry ../OpenGL-Registry/xml/gl.xml --target go`,
	RunE: runWatch,
}

func init() {
	addBuildFlags(WatchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, opts, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := NewEmitter(cmd.ErrOrStderr(), logger.JSONOutput, logger.Verbosity)
	build := func(ctx context.Context) error {
		return runBuild(ctx, cfg, opts, cmd.OutOrStdout(), progress)
	}

	w, err := watch.New(cfg.Registry.Path, time.Duration(cfg.Watch.DebounceMS)*time.Millisecond)
	if err != nil {
		return err
	}

	// The initial build may fail; the user is expected to fix the registry.
	if err := build(ctx); err != nil {
		logger.Errorw("Initial build failed", logger.FieldError, err.Error())
	}

	progress.EmitInfo("Watching " + w.Path())
	return w.Run(ctx, build)
}
