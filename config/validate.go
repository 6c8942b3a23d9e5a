package config

import (
	"slices"
	"strings"

	"github.com/teranos/glenum/errors"
	"github.com/teranos/glenum/registry"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Registry.Path) == "" {
		return errors.WrapInvalidConfig("registry.path cannot be empty")
	}

	// API settings share their parsing with the walker options.
	if _, err := c.Options(); err != nil {
		return err
	}

	if len(c.Output.Targets) == 0 {
		return errors.WithHint(
			errors.WrapInvalidConfig("output.targets cannot be empty"),
			"supported targets: "+strings.Join(KnownTargets, ", "))
	}
	seen := make(map[string]bool, len(c.Output.Targets))
	for _, t := range c.Output.Targets {
		if !slices.Contains(KnownTargets, t) {
			return errors.WithHint(
				errors.WrapInvalidConfig("unknown output target %q", t),
				"supported targets: "+strings.Join(KnownTargets, ", "))
		}
		if seen[t] {
			return errors.WrapInvalidConfig("output target %q listed twice", t)
		}
		seen[t] = true
	}

	if c.Output.Dir != "" && strings.TrimSpace(c.Output.Basename) == "" {
		return errors.WrapInvalidConfig("output.basename cannot be empty when output.dir is set")
	}
	if strings.ContainsAny(c.Output.Basename, `/\`) {
		return errors.WrapInvalidConfig("output.basename must be a file name, got %q", c.Output.Basename)
	}

	// Zero disables debouncing, negative is invalid
	if c.Watch.DebounceMS < 0 {
		return errors.WrapInvalidConfig("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}

	return nil
}

// Options converts the API and build sections into walker options.
func (c *Config) Options() (registry.Options, error) {
	return registry.NewOptions(c.API.Family, c.API.Version, c.API.Profile, c.Build.EntryPolicy)
}
