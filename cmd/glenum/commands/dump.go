package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/glenum/emit"
	"github.com/teranos/glenum/errors"
	"github.com/teranos/glenum/registry"
)

// DumpCmd prints the extracted enumerants without generating code.
var DumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the extracted enumerants",
	Long: `Walk the registry and print every accepted enumerant with its inferred
type, plus group membership. Useful for inspecting what generate would emit.

Examples:
  glenum dump                       # YAML
  glenum dump --format json --api gles2`,
	RunE: runDump,
}

var dumpFormat string

func init() {
	addBuildFlags(DumpCmd)
	DumpCmd.Flags().StringVar(&dumpFormat, "format", "yaml", "Output format: yaml, toml, json")
}

// dumpDocument is the serialised view of a Spec. Values are rendered as
// literals so every format can carry the full 64-bit range.
type dumpDocument struct {
	API     string              `json:"api" yaml:"api" toml:"api"`
	Version string              `json:"version" yaml:"version" toml:"version"`
	Profile string              `json:"profile" yaml:"profile" toml:"profile"`
	Enums   []dumpEnum          `json:"enums" yaml:"enums" toml:"enums"`
	Groups  map[string][]string `json:"groups" yaml:"groups" toml:"groups"`
}

type dumpEnum struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Type  string `json:"type" yaml:"type" toml:"type"`
	Value string `json:"value" yaml:"value" toml:"value"`
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty" toml:"alias,omitempty"`
}

func newDumpDocument(spec *registry.Spec) dumpDocument {
	doc := dumpDocument{
		API:     string(spec.Options.API),
		Version: spec.Options.VersionString(),
		Profile: string(spec.Options.Profile),
		Enums:   make([]dumpEnum, 0, spec.Len()),
		Groups:  spec.Groups,
	}
	for _, e := range spec.Enums {
		doc.Enums = append(doc.Enums, dumpEnum{
			Name:  e.Name,
			Type:  e.Value.Type.String(),
			Value: emit.FormatValue(e.Value),
			Alias: e.Alias,
		})
	}
	return doc
}

func runDump(cmd *cobra.Command, args []string) error {
	cfg, opts, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	spec, _, err := readSpec(cfg.Registry.Path, opts)
	if err != nil {
		return err
	}
	return writeFormatted(cmd.OutOrStdout(), dumpFormat, newDumpDocument(spec))
}

// writeFormatted marshals v as json, yaml or toml.
func writeFormatted(w io.Writer, format string, v interface{}) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(v)
	case "toml":
		data, err = toml.Marshal(v)
	default:
		return errors.Newf("unsupported format: %s (supported: toml, json, yaml)", format)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", format)
	}
	_, err = fmt.Fprint(w, string(data))
	return err
}
