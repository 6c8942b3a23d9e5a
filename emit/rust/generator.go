// Package rust emits enumerants as Rust constants.
package rust

import (
	"fmt"
	"strings"

	"github.com/teranos/glenum/emit"
	"github.com/teranos/glenum/errors"
	"github.com/teranos/glenum/registry"
)

// Types maps internal representations to Rust primitive types.
// Rust has no untyped constants, so the fallback is never emitted; a
// representation missing from the table is reported as an error.
var Types = emit.NewTypeTable("u8", "u32", "u64", "i8", "i32", "i64", "_")

// Generator implements emit.Generator for Rust
type Generator struct{}

// NewGenerator creates a new Rust generator
func NewGenerator() *Generator {
	return &Generator{}
}

// Language returns "rust"
func (g *Generator) Language() string {
	return "rust"
}

// FileExtension returns "rs"
func (g *Generator) FileExtension() string {
	return "rs"
}

// GenerateFile renders a Spec as a Rust module.
func (g *Generator) GenerateFile(spec *registry.Spec) (string, error) {
	var sb strings.Builder

	for _, line := range emit.HeaderLines(spec) {
		sb.WriteString("// " + line + "\n")
	}
	sb.WriteString("\n#![allow(non_upper_case_globals, dead_code)]\n\n")

	for _, p := range emit.Preamble {
		ty, _ := Types.Lookup(p.Type)
		sb.WriteString(fmt.Sprintf("pub type %s = %s;\n", p.Name, ty))
	}

	if spec.Len() > 0 {
		sb.WriteString("\n")
	}
	for _, e := range spec.Enums {
		ty, ok := Types.Lookup(e.Value.Type)
		if !ok {
			return "", errors.Newf("no Rust type for %s (enum %s)", e.Value.Type, e.Name)
		}
		if e.Alias != "" {
			sb.WriteString(fmt.Sprintf("/// Alias of `%s`.\n", e.Alias))
		}
		sb.WriteString(fmt.Sprintf("pub const %s: %s = %s;\n", e.Name, ty, emit.FormatValue(e.Value)))
	}

	return sb.String(), nil
}
