package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/glenum/config"
	"github.com/teranos/glenum/emit"
	"github.com/teranos/glenum/emit/c"
	"github.com/teranos/glenum/emit/golang"
	"github.com/teranos/glenum/emit/rust"
	"github.com/teranos/glenum/errors"
	"github.com/teranos/glenum/logger"
	"github.com/teranos/glenum/registry"
)

// stdoutDir as an output directory writes generated files to stdout.
const stdoutDir = "-"

// flagBinding maps a command flag onto a config key.
type flagBinding struct {
	flag string
	key  string
}

// buildFlagBindings are shared by every command that reads the registry.
var buildFlagBindings = []flagBinding{
	{"registry", "registry.path"},
	{"api", "api.family"},
	{"gl-version", "api.version"},
	{"profile", "api.profile"},
	{"target", "output.targets"},
	{"output", "output.dir"},
	{"basename", "output.basename"},
}

// addBuildFlags registers the flags listed in buildFlagBindings.
func addBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringP("registry", "r", "", "Registry document (default from config: "+config.DefaultRegistryPath+")")
	f.String("api", "", "API family: gl, gles, glsc2 (or a registry api token such as gles2)")
	f.String("gl-version", "", "API version recorded in output headers, e.g. 4.6")
	f.String("profile", "", "Profile recorded in output headers: core, compatibility")
	f.StringSliceP("target", "t", nil, "Output languages: rust, go, c")
	f.StringP("output", "o", "", "Output directory ('-' for stdout)")
	f.String("basename", "", "Output file name without extension")
	f.Bool("skip-invalid", false, "Skip invalid enum entries with a warning instead of failing")
}

// loadConfig binds the command's flags over file and environment settings,
// then loads and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, registry.Options, error) {
	v, err := config.GetViper()
	if err != nil {
		return nil, registry.Options{}, err
	}
	for _, b := range buildFlagBindings {
		if fl := cmd.Flags().Lookup(b.flag); fl != nil {
			if err := v.BindPFlag(b.key, fl); err != nil {
				return nil, registry.Options{}, errors.Wrapf(err, "binding --%s", b.flag)
			}
		}
	}
	if skip, err := cmd.Flags().GetBool("skip-invalid"); err == nil && skip {
		v.Set("build.entry_policy", string(registry.PolicySkip))
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, registry.Options{}, err
	}
	warnUnknownKeys()

	if err := cfg.Validate(); err != nil {
		return nil, registry.Options{}, errors.Wrap(err, "configuration validation failed")
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, registry.Options{}, err
	}

	if logger.ShouldOutput(logger.Verbosity, logger.OutputConfig) {
		logger.Debugw("Configuration resolved",
			logger.FieldFile, config.UsedConfigFile(),
			logger.FieldRegistry, cfg.Registry.Path,
			logger.FieldAPI, string(opts.API),
			logger.FieldVersion, opts.VersionString(),
			logger.FieldProfile, string(opts.Profile),
			"targets", cfg.Output.Targets,
			"entry_policy", string(opts.EntryPolicy),
			"verbosity", logger.LevelName(logger.Verbosity))
	}
	return cfg, opts, nil
}

func warnUnknownKeys() {
	path := config.UsedConfigFile()
	if path == "" {
		return
	}
	keys, err := config.UnknownKeys(path)
	if err != nil {
		logger.Warnw("Could not check config for unknown keys", logger.FieldFile, path, logger.FieldError, err.Error())
		return
	}
	for _, k := range keys {
		logger.Warnw("Unknown config key ignored", "key", k, logger.FieldFile, path)
	}
}

// readSpec walks the registry file at path.
func readSpec(path string, opts registry.Options) (*registry.Spec, registry.WalkStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, registry.WalkStats{}, errors.WithHint(
			errors.Wrapf(err, "failed to open registry %s", path),
			"set registry.path in glenum.toml or pass --registry")
	}
	defer f.Close()

	spec, stats, err := registry.WalkEvents(registry.NewEventReader(bufio.NewReader(f)), opts)
	if err != nil {
		return nil, stats, errors.Wrapf(err, "registry %s", path)
	}
	return spec, stats, nil
}

// generatorFor returns the emitter for a target name.
func generatorFor(target string, cfg *config.Config) (emit.Generator, error) {
	switch target {
	case "rust":
		return rust.NewGenerator(), nil
	case "go":
		return golang.NewGenerator(cfg.Output.GoPackage), nil
	case "c":
		return c.NewGenerator(cfg.Output.Basename), nil
	default:
		return nil, errors.WrapInvalidConfig("unknown output target %q", target)
	}
}

// renderedFile is one generated output held in memory.
type renderedFile struct {
	Target  string
	Name    string
	Content string
}

// renderAll generates every configured target concurrently. Results keep
// the configured target order.
func renderAll(ctx context.Context, cfg *config.Config, spec *registry.Spec) ([]renderedFile, error) {
	gens := make([]emit.Generator, 0, len(cfg.Output.Targets))
	for _, t := range cfg.Output.Targets {
		gen, err := generatorFor(t, cfg)
		if err != nil {
			return nil, err
		}
		gens = append(gens, gen)
	}

	files := make([]renderedFile, len(gens))
	g, ctx := errgroup.WithContext(ctx)
	for i, gen := range gens {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			content, err := gen.GenerateFile(spec)
			if err != nil {
				return errors.Wrapf(err, "generating %s output", gen.Language())
			}
			logger.Debugw("Rendered target",
				logger.FieldTarget, cfg.Output.Targets[i],
				logger.FieldCount, len(content))
			files[i] = renderedFile{
				Target:  cfg.Output.Targets[i],
				Name:    emit.FileName(cfg.Output.Basename, gen),
				Content: content,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// writeAll stages every rendered file concurrently, then replaces them
// all. If any file fails, no destination is left changed.
func writeAll(ctx context.Context, dir string, files []renderedFile) ([]string, error) {
	staged := make([]*emit.StagedFile, len(files))
	discard := func() {
		for _, sf := range staged {
			sf.Discard()
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sf, err := emit.Stage(dir, f.Name, []byte(f.Content))
			if err != nil {
				return err
			}
			staged[i] = sf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		discard()
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		discard()
		return nil, err
	}

	if err := emit.Commit(staged); err != nil {
		return nil, err
	}
	paths := make([]string, len(staged))
	for i, sf := range staged {
		paths[i] = sf.Dest
	}
	return paths, nil
}

// runBuild is the full read, render and write pipeline shared by generate
// and watch. Nothing is written unless every target renders.
func runBuild(ctx context.Context, cfg *config.Config, opts registry.Options, stdout io.Writer, progress ProgressEmitter) error {
	start := time.Now()

	progress.EmitStage("read", cfg.Registry.Path)
	spec, stats, err := readSpec(cfg.Registry.Path, opts)
	if err != nil {
		progress.EmitError("read", err)
		return err
	}

	progress.EmitStage("render", fmt.Sprintf("%d enumerants for %v", spec.Len(), cfg.Output.Targets))
	files, err := renderAll(ctx, cfg, spec)
	if err != nil {
		progress.EmitError("render", err)
		return err
	}

	if cfg.Output.Dir == "" || cfg.Output.Dir == stdoutDir {
		for _, f := range files {
			if _, err := io.WriteString(stdout, f.Content); err != nil {
				return errors.Wrap(err, "writing to stdout")
			}
		}
		return nil
	}

	progress.EmitStage("write", cfg.Output.Dir)
	paths, err := writeAll(ctx, cfg.Output.Dir, files)
	if err != nil {
		progress.EmitError("write", err)
		return err
	}
	for i, p := range paths {
		progress.EmitFile(files[i].Target, p)
	}

	progress.EmitComplete(map[string]interface{}{
		"enumerants":      spec.Len(),
		"groups":          len(spec.Groups),
		"sections":        stats.Sections,
		"skipped_api":     stats.SkippedAPI,
		"skipped_invalid": stats.SkippedInvalid,
		"duration_ms":     time.Since(start).Milliseconds(),
	})
	return nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
