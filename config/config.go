// Package config loads glenum settings from defaults, a project glenum.toml,
// GLENUM_* environment variables and command-line flags, in rising
// precedence.
package config

// Config is the complete glenum configuration.
type Config struct {
	Registry RegistryConfig `mapstructure:"registry" toml:"registry" yaml:"registry" json:"registry"`
	API      APIConfig      `mapstructure:"api" toml:"api" yaml:"api" json:"api"`
	Output   OutputConfig   `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Build    BuildConfig    `mapstructure:"build" toml:"build" yaml:"build" json:"build"`
	Watch    WatchConfig    `mapstructure:"watch" toml:"watch" yaml:"watch" json:"watch"`
}

// RegistryConfig locates the registry document.
type RegistryConfig struct {
	Path string `mapstructure:"path" toml:"path" yaml:"path" json:"path"`
}

// APIConfig selects which enumerants are extracted.
type APIConfig struct {
	// Family is gl, gles or glsc2. Registry api tokens (gles2) are accepted.
	Family  string `mapstructure:"family" toml:"family" yaml:"family" json:"family"`
	Version string `mapstructure:"version" toml:"version" yaml:"version" json:"version"`
	Profile string `mapstructure:"profile" toml:"profile" yaml:"profile" json:"profile"`
}

// OutputConfig controls where and in which languages output is written.
type OutputConfig struct {
	// Dir is the output directory. Empty writes to stdout.
	Dir      string   `mapstructure:"dir" toml:"dir" yaml:"dir" json:"dir"`
	Basename string   `mapstructure:"basename" toml:"basename" yaml:"basename" json:"basename"`
	Targets  []string `mapstructure:"targets" toml:"targets" yaml:"targets" json:"targets"`
	// GoPackage is the package clause for the go target.
	GoPackage string `mapstructure:"go_package" toml:"go_package" yaml:"go_package" json:"go_package"`
}

// BuildConfig holds extraction behaviour.
type BuildConfig struct {
	// EntryPolicy is abort or skip.
	EntryPolicy string `mapstructure:"entry_policy" toml:"entry_policy" yaml:"entry_policy" json:"entry_policy"`
}

// WatchConfig tunes the watch command.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms" toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"`
}
