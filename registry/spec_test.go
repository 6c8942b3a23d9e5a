package registry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpec_Lookups(t *testing.T) {
	doc := `<registry><enums>
  <enum name="GL_ONE" value="1" group="Blend,Stencil"/>
  <enum name="GL_ZERO" value="0" group="Blend"/>
  <enum name="GL_NEG" value="-1"/>
</enums></registry>`

	spec, err := Walk(strings.NewReader(doc), glOptions(t))
	require.NoError(t, err)

	assert.Equal(t, 3, spec.Len())

	e, ok := spec.Lookup("GL_ZERO")
	require.True(t, ok)
	assert.Equal(t, uint64(0), e.Value.Value)

	_, ok = spec.Lookup("GL_MISSING")
	assert.False(t, ok)

	blend := spec.Group("Blend")
	require.Len(t, blend, 2)
	assert.Equal(t, "GL_ONE", blend[0].Name)
	assert.Equal(t, "GL_ZERO", blend[1].Name)

	assert.Empty(t, spec.Group("Nope"))
	assert.Equal(t, []string{"Blend", "Stencil"}, spec.GroupNames())
}
