// Package golang emits enumerants as Go constants.
package golang

import (
	"fmt"
	"go/format"
	"strings"

	"github.com/teranos/glenum/emit"
	"github.com/teranos/glenum/errors"
	"github.com/teranos/glenum/registry"
)

// DefaultPackage is the package clause used when none is configured.
const DefaultPackage = "gl"

// Types maps internal representations to Go integer types. An empty
// fallback emits an untyped constant.
var Types = emit.NewTypeTable("uint8", "uint32", "uint64", "int8", "int32", "int64", "")

// Generator implements emit.Generator for Go
type Generator struct {
	// Package is the package clause of the generated file.
	Package string
}

// NewGenerator creates a new Go generator for the given package name.
func NewGenerator(pkg string) *Generator {
	if pkg == "" {
		pkg = DefaultPackage
	}
	return &Generator{Package: pkg}
}

// Language returns "go"
func (g *Generator) Language() string {
	return "go"
}

// FileExtension returns "go"
func (g *Generator) FileExtension() string {
	return "go"
}

// GenerateFile renders a Spec as a Go source file, formatted with gofmt.
func (g *Generator) GenerateFile(spec *registry.Spec) (string, error) {
	var sb strings.Builder

	for _, line := range emit.HeaderLines(spec) {
		sb.WriteString("// " + line + "\n")
	}
	sb.WriteString(fmt.Sprintf("\npackage %s\n\n", g.Package))

	sb.WriteString("type (\n")
	for _, p := range emit.Preamble {
		ty, _ := Types.Lookup(p.Type)
		sb.WriteString(fmt.Sprintf("\t%s = %s\n", p.Name, ty))
	}
	sb.WriteString(")\n")

	if spec.Len() > 0 {
		sb.WriteString("\nconst (\n")
		for _, e := range spec.Enums {
			ty, _ := Types.Lookup(e.Value.Type)
			decl := e.Name
			if ty != "" {
				decl += " " + ty
			}
			decl += " = " + emit.FormatValue(e.Value)
			if e.Alias != "" {
				decl += " // alias of " + e.Alias
			}
			sb.WriteString("\t" + decl + "\n")
		}
		sb.WriteString(")\n")
	}

	out, err := format.Source([]byte(sb.String()))
	if err != nil {
		return "", errors.Wrap(err, "formatting generated Go source")
	}
	return string(out), nil
}
