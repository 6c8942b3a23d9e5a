package config

import (
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/teranos/glenum/errors"
)

// UnknownKeys returns keys present in a config file that no Config field
// decodes, typically misspellings. Viper ignores such keys silently.
func UnknownKeys(path string) ([]string, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	undecoded := md.Undecoded()
	keys := make([]string, 0, len(undecoded))
	for _, k := range undecoded {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)
	return keys, nil
}
