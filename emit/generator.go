// Package emit renders a registry.Spec into target-language constant
// declarations.
//
// Each target implements Generator. Output depends only on the Spec, so
// generating twice from the same Spec yields byte-identical files.
package emit

import (
	"fmt"
	"strings"

	"github.com/teranos/glenum/constant"
	"github.com/teranos/glenum/registry"
	"github.com/teranos/glenum/version"
)

// Generator defines the interface for language-specific emitters.
type Generator interface {
	// GenerateFile renders a complete output file for a Spec
	GenerateFile(spec *registry.Spec) (string, error)

	// FileExtension returns the file extension without the dot (e.g. "rs")
	FileExtension() string

	// Language returns the target name used on the command line
	Language() string
}

// TypeKey identifies an internal integral representation.
type TypeKey struct {
	Signed   bool
	BitWidth uint
}

// TypeTable maps each supported representation to a target type name.
type TypeTable struct {
	Names map[TypeKey]string
	// Fallback is returned for representations outside the table.
	Fallback string
}

// Lookup returns the target type for t and whether it came from the table.
func (tt TypeTable) Lookup(t constant.IntegralType) (string, bool) {
	name, ok := tt.Names[TypeKey{Signed: t.Signed, BitWidth: t.BitWidth}]
	if !ok {
		return tt.Fallback, false
	}
	return name, true
}

// NewTypeTable builds a table from the six standard type names.
func NewTypeTable(u8, u32, u64, i8, i32, i64, fallback string) TypeTable {
	return TypeTable{
		Names: map[TypeKey]string{
			{false, 8}:  u8,
			{false, 32}: u32,
			{false, 64}: u64,
			{true, 8}:   i8,
			{true, 32}:  i32,
			{true, 64}:  i64,
		},
		Fallback: fallback,
	}
}

// FormatValue renders a constant's value as a source literal.
//
// Unsigned values are uppercase hex with a 0x prefix, zero-padded to at
// least one digit per byte of width (0x1, 0x0500, 0xFFFFFFFF). Signed
// values are a minus sign followed by the decimal magnitude; they are never
// written in hex.
//
// Padding stops at one digit per byte rather than the full width so small
// values keep the short spelling the registry itself uses (GL_TRUE is 0x1,
// not 0x00000001) and diffs against hand-written bindings stay readable.
func FormatValue(c constant.Constant) string {
	if c.Type.Signed {
		return fmt.Sprintf("-%d", c.Value)
	}
	digits := int(c.Type.BitWidth / 8)
	if digits < 1 {
		digits = 1
	}
	return fmt.Sprintf("0x%0*X", digits, c.Value)
}

// Preamble type aliases shared by every target, in emission order.
// Each entry names a foundational registry type and its representation.
var Preamble = []struct {
	Name string
	Type constant.IntegralType
}{
	{"GLenum", constant.IntegralType{BitWidth: 32}},
	{"GLboolean", constant.IntegralType{BitWidth: 8}},
	{"GLbitfield", constant.IntegralType{BitWidth: 32}},
	{"GLbyte", constant.IntegralType{BitWidth: 8, Signed: true}},
	{"GLubyte", constant.IntegralType{BitWidth: 8}},
	{"GLint", constant.IntegralType{BitWidth: 32, Signed: true}},
	{"GLuint", constant.IntegralType{BitWidth: 32}},
	{"GLsizei", constant.IntegralType{BitWidth: 32, Signed: true}},
	{"GLint64", constant.IntegralType{BitWidth: 64, Signed: true}},
	{"GLuint64", constant.IntegralType{BitWidth: 64}},
}

// MetadataPrefix is carried by the header line naming the generator build.
// Check ignores lines carrying it so a tool upgrade alone does not mark
// output stale.
const MetadataPrefix = "generated by " + version.Tool

// HeaderLines returns the descriptive header shared by all targets,
// without comment markers.
func HeaderLines(spec *registry.Spec) []string {
	opts := spec.Options
	lines := []string{
		fmt.Sprintf("Code generated by %s. DO NOT EDIT.", version.Get().Banner()),
	}
	target := []string{"API: " + string(opts.API)}
	if v := opts.VersionString(); v != "" {
		target = append(target, "version "+v)
	}
	if opts.Profile != "" {
		target = append(target, "profile "+string(opts.Profile))
	}
	lines = append(lines, strings.Join(target, ", "))
	lines = append(lines, fmt.Sprintf("%d enumerants, %d groups", spec.Len(), len(spec.Groups)))
	return lines
}
