package config

import "github.com/spf13/viper"

const (
	// ProjectConfigName is searched for from the working directory upwards.
	ProjectConfigName = "glenum.toml"

	// EnvPrefix prefixes environment overrides, e.g. GLENUM_API_FAMILY.
	EnvPrefix = "GLENUM"

	DefaultRegistryPath = "gl.xml"
	DefaultFamily       = "gl"
	DefaultVersion      = "4.6"
	DefaultProfile      = "core"
	DefaultOutputDir    = "generated"
	DefaultBasename     = "gl_enums"
	DefaultGoPackage    = "gl"
	DefaultEntryPolicy  = "abort"
	DefaultDebounceMS   = 300
)

// DefaultTargets is used when no target is configured.
var DefaultTargets = []string{"rust"}

// KnownTargets lists every output language, in display order.
var KnownTargets = []string{"rust", "go", "c"}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("registry.path", DefaultRegistryPath)

	v.SetDefault("api.family", DefaultFamily)
	v.SetDefault("api.version", DefaultVersion)
	v.SetDefault("api.profile", DefaultProfile)

	v.SetDefault("output.dir", DefaultOutputDir)
	v.SetDefault("output.basename", DefaultBasename)
	v.SetDefault("output.targets", DefaultTargets)
	v.SetDefault("output.go_package", DefaultGoPackage)

	v.SetDefault("build.entry_policy", DefaultEntryPolicy)

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
}
