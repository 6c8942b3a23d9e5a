package golang

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/glenum/constant"
	"github.com/teranos/glenum/registry"
)

func walk(t *testing.T, doc string) *registry.Spec {
	t.Helper()
	opts, err := registry.NewOptions("gl", "4.6", "core", "abort")
	require.NoError(t, err)
	spec, err := registry.Walk(strings.NewReader(doc), opts)
	require.NoError(t, err)
	return spec
}

func TestGenerateFile(t *testing.T) {
	out, err := NewGenerator("").GenerateFile(walk(t, `<registry><enums>
		<enum name="FOO" value="1"/>
		<enum name="BAR" value="-2"/>
		<enum name="BAZ" value="0xFFFFFFFFFFFFFFFF" alias="FOO"/>
	</enums></registry>`))
	require.NoError(t, err)

	assert.Contains(t, out, "\npackage gl\n")
	assert.Contains(t, out, "GLenum     = uint32")
	assert.Contains(t, out, "FOO uint8  = 0x1")
	assert.Contains(t, out, "BAR int8   = -2")
	assert.Contains(t, out, "BAZ uint64 = 0xFFFFFFFFFFFFFFFF // alias of FOO")

	// The header must be recognised as generated code by Go tooling.
	assert.True(t, strings.HasPrefix(out, "// Code generated by glenum "))

	_, err = parser.ParseFile(token.NewFileSet(), "gl.go", out, parser.AllErrors)
	assert.NoError(t, err)
}

func TestGenerateFilePackage(t *testing.T) {
	out, err := NewGenerator("glenums").GenerateFile(walk(t, `<registry/>`))
	require.NoError(t, err)
	assert.Contains(t, out, "\npackage glenums\n")
	assert.NotContains(t, out, "const (")
}

func TestGenerateFileIdempotent(t *testing.T) {
	spec := walk(t, `<registry><enums><enum name="A" value="7"/></enums></registry>`)
	g := NewGenerator("")

	first, err := g.GenerateFile(spec)
	require.NoError(t, err)
	second, err := g.GenerateFile(spec)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFallbackUntyped(t *testing.T) {
	ty, ok := Types.Lookup(constant.IntegralType{BitWidth: 16})
	assert.False(t, ok)
	assert.Empty(t, ty)
}

func TestInvalidIdentifier(t *testing.T) {
	_, err := NewGenerator("").GenerateFile(walk(t, `<registry><enums>
		<enum name="1BAD" value="1"/>
	</enums></registry>`))
	assert.Error(t, err)
}
