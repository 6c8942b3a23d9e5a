// Package c emits enumerants as C preprocessor constants.
package c

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/teranos/glenum/constant"
	"github.com/teranos/glenum/emit"
	"github.com/teranos/glenum/registry"
)

// Types maps internal representations to <stdint.h> types. An empty
// fallback emits the bare literal without a cast.
var Types = emit.NewTypeTable("uint8_t", "uint32_t", "uint64_t", "int8_t", "int32_t", "int64_t", "")

// Generator implements emit.Generator for C headers
type Generator struct {
	// Guard is the include guard macro.
	Guard string
}

// NewGenerator creates a C generator whose include guard is derived from
// the output basename.
func NewGenerator(basename string) *Generator {
	return &Generator{Guard: GuardName(basename)}
}

// Language returns "c"
func (g *Generator) Language() string {
	return "c"
}

// FileExtension returns "h"
func (g *Generator) FileExtension() string {
	return "h"
}

// GuardName turns a basename into an include guard macro, e.g.
// "gl_enums" becomes "GLENUM_GL_ENUMS_H".
func GuardName(basename string) string {
	var sb strings.Builder
	sb.WriteString("GLENUM_")
	for _, r := range basename {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			sb.WriteRune(unicode.ToUpper(r))
		} else {
			sb.WriteByte('_')
		}
	}
	sb.WriteString("_H")
	return sb.String()
}

// GenerateFile renders a Spec as a C header.
func (g *Generator) GenerateFile(spec *registry.Spec) (string, error) {
	var sb strings.Builder

	for _, line := range emit.HeaderLines(spec) {
		sb.WriteString("/* " + line + " */\n")
	}
	sb.WriteString(fmt.Sprintf("\n#ifndef %s\n#define %s\n\n#include <stdint.h>\n\n", g.Guard, g.Guard))

	for _, p := range emit.Preamble {
		ty, _ := Types.Lookup(p.Type)
		sb.WriteString(fmt.Sprintf("typedef %s %s;\n", ty, p.Name))
	}

	if spec.Len() > 0 {
		sb.WriteString("\n")
	}
	for _, e := range spec.Enums {
		lit := Literal(e.Value)
		if ty, ok := Types.Lookup(e.Value.Type); ok {
			lit = fmt.Sprintf("((%s)%s)", ty, lit)
		}
		line := fmt.Sprintf("#define %s %s", e.Name, lit)
		if e.Alias != "" {
			line += " /* alias of " + e.Alias + " */"
		}
		sb.WriteString(line + "\n")
	}

	sb.WriteString(fmt.Sprintf("\n#endif /* %s */\n", g.Guard))
	return sb.String(), nil
}

// Literal renders a constant as a C integer literal. 64-bit values carry
// a ULL or LL suffix. The most negative 64-bit value is written as an
// expression since its magnitude has no signed literal form.
func Literal(c constant.Constant) string {
	if c.Type.Signed && c.Type.BitWidth == 64 && c.Value == uint64(math.MaxInt64)+1 {
		return "(-9223372036854775807LL - 1)"
	}
	lit := emit.FormatValue(c)
	if c.Type.BitWidth == 64 {
		if c.Type.Signed {
			lit += "LL"
		} else {
			lit += "ULL"
		}
	}
	return lit
}
