package rust

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

const fooBar = `<registry><enums>
	<enum name="FOO" value="1"/>
	<enum name="BAR" value="-2"/>
</enums></registry>`

func TestGenerateFile(t *testing.T) {
	out, err := NewGenerator().GenerateFile(walk(t, fooBar))
	require.NoError(t, err)

	assert.Contains(t, out, "pub type GLenum = u32;\n")
	assert.Contains(t, out, "pub type GLbyte = i8;\n")
	assert.Contains(t, out, "pub type GLuint64 = u64;\n")
	assert.Contains(t, out, "pub const FOO: u8 = 0x1;\npub const BAR: i8 = -2;\n")
	assert.True(t, strings.HasPrefix(out, "// Code generated by glenum"))
}

func TestGenerateFileIdempotent(t *testing.T) {
	spec := walk(t, fooBar)
	g := NewGenerator()

	first, err := g.GenerateFile(spec)
	require.NoError(t, err)
	second, err := g.GenerateFile(spec)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGenerateFileWidths(t *testing.T) {
	out, err := NewGenerator().GenerateFile(walk(t, `<registry><enums>
		<enum name="A" value="0x500"/>
		<enum name="B" value="0xFFFFFFFFFFFFFFFF"/>
		<enum name="C" value="-129"/>
		<enum name="D" value="0x8CA6" alias="A"/>
	</enums></registry>`))
	require.NoError(t, err)

	assert.Contains(t, out, "pub const A: u32 = 0x0500;\n")
	assert.Contains(t, out, "pub const B: u64 = 0xFFFFFFFFFFFFFFFF;\n")
	assert.Contains(t, out, "pub const C: i32 = -129;\n")
	assert.Contains(t, out, "/// Alias of `A`.\npub const D: u32 = 0x8CA6;\n")
}

func TestGenerateFileEmpty(t *testing.T) {
	out, err := NewGenerator().GenerateFile(walk(t, `<registry/>`))
	require.NoError(t, err)
	assert.NotContains(t, out, "pub const")
	assert.Contains(t, out, "pub type GLenum = u32;")
}

func TestGenerator(t *testing.T) {
	g := NewGenerator()
	assert.Equal(t, "rust", g.Language())
	assert.Equal(t, "rs", g.FileExtension())
}
