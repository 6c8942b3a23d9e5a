package registry

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/glenum/constant"
	"github.com/teranos/glenum/errors"
)

func glOptions(t *testing.T) Options {
	t.Helper()
	opts, err := NewOptions("gl", "4.6", "core", "abort")
	require.NoError(t, err)
	return opts
}

func walkString(t *testing.T, doc string, opts Options) (*Spec, error) {
	t.Helper()
	return Walk(strings.NewReader(doc), opts)
}

func unsignedConst(width uint, v uint64) constant.Constant {
	return constant.Constant{Value: v, Type: constant.IntegralType{BitWidth: width}}
}

func signedConst(width uint, v uint64) constant.Constant {
	return constant.Constant{Value: v, Type: constant.IntegralType{BitWidth: width, Signed: true}}
}

func TestWalk_EndToEnd(t *testing.T) {
	doc := `<?xml version="1.0"?>
<registry>
  <enums>
    <enum name="FOO" value="0x1" group="X"/>
    <enum name="BAR" value="-2"/>
  </enums>
</registry>`

	spec, err := walkString(t, doc, glOptions(t))
	require.NoError(t, err)

	want := []Enumerant{
		{Name: "FOO", Value: unsignedConst(8, 1)},
		{Name: "BAR", Value: signedConst(8, 2)},
	}
	if diff := cmp.Diff(want, spec.Enums); diff != "" {
		t.Errorf("Enums mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, map[string][]string{"X": {"FOO"}}, spec.Groups)
}

func TestWalk_SampleRegistry(t *testing.T) {
	f, err := os.Open("testdata/sample.xml")
	require.NoError(t, err)
	defer f.Close()

	spec, stats, err := WalkEvents(NewEventReader(f), glOptions(t))
	require.NoError(t, err)

	want := []Enumerant{
		{Name: "GL_FALSE", Value: unsignedConst(8, 0)},
		{Name: "GL_TRUE", Value: unsignedConst(8, 1)},
		{Name: "GL_POINTS", Value: unsignedConst(8, 0)},
		{Name: "GL_LINES", Value: unsignedConst(8, 1)},
		{Name: "GL_INVALID_ENUM", Value: unsignedConst(32, 0x0500)},
		{Name: "GL_ALL_ATTRIB_BITS", Value: unsignedConst(32, 0xFFFFFFFF)},
		{Name: "GL_TIMEOUT_IGNORED", Value: unsignedConst(64, 0xFFFFFFFFFFFFFFFF)},
		{Name: "GL_TIMEOUT_IGNORED_APPLE", Value: unsignedConst(64, 0xFFFFFFFFFFFFFFFF), Alias: "GL_TIMEOUT_IGNORED"},
		{Name: "GL_INVALID_INDEX_NEG", Value: signedConst(8, 1)},
		{Name: "GL_TRUE_GL_ONLY", Value: unsignedConst(8, 1)},
	}
	if diff := cmp.Diff(want, spec.Enums); diff != "" {
		t.Errorf("Enums mismatch (-want +got):\n%s", diff)
	}

	wantGroups := map[string][]string{
		"Boolean":       {"GL_FALSE", "GL_TRUE"},
		"PrimitiveType": {"GL_POINTS", "GL_LINES"},
		"Unused":        {"GL_LINES"},
		"ErrorCode":     {"GL_INVALID_ENUM"},
		"AttribMask":    {"GL_ALL_ATTRIB_BITS"},
	}
	if diff := cmp.Diff(wantGroups, spec.Groups); diff != "" {
		t.Errorf("Groups mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, WalkStats{Sections: 2, Accepted: 10, SkippedAPI: 2}, stats)
	assert.Equal(t, FamilyGL, spec.Options.API)
}

func TestWalk_APIScoping(t *testing.T) {
	doc := `<registry><enums>
  <enum name="A" value="1"/>
  <enum name="B" value="2" api="gl" group="G"/>
  <enum name="C" value="3" api="gles2" group="G,H"/>
  <enum name="D" value="4" api="gles1"/>
  <enum name="E" value="5" api="glsc2"/>
  <enum name="F" value="6" api="vulkan" group="H"/>
  <enum name="Z" value="7" api=""/>
</enums></registry>`

	tests := []struct {
		api    string
		names  []string
		groups map[string][]string
	}{
		{"gl", []string{"A", "B", "Z"}, map[string][]string{"G": {"B"}}},
		{"gles", []string{"A", "C", "D", "Z"}, map[string][]string{"G": {"C"}, "H": {"C"}}},
		{"glsc2", []string{"A", "E", "Z"}, map[string][]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.api, func(t *testing.T) {
			opts, err := NewOptions(tt.api, "3.2", "core", "abort")
			require.NoError(t, err)

			spec, err := walkString(t, doc, opts)
			require.NoError(t, err)

			var names []string
			for _, e := range spec.Enums {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.names, names)
			if diff := cmp.Diff(tt.groups, spec.Groups, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Groups mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWalk_GroupSplitting(t *testing.T) {
	doc := `<registry><enums>
  <enum name="X1" value="1" group="A, B,C"/>
  <enum name="X2" value="2" group=" C ,,A, A"/>
</enums></registry>`

	spec, err := walkString(t, doc, glOptions(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"X1", "X2"}, spec.Groups["A"])
	assert.Equal(t, []string{"X1"}, spec.Groups["B"])
	assert.Equal(t, []string{"X1", "X2"}, spec.Groups["C"])
	assert.Len(t, spec.Groups, 3)
}

func TestWalk_GroupsReferenceKnownEnums(t *testing.T) {
	f, err := os.Open("testdata/sample.xml")
	require.NoError(t, err)
	defer f.Close()

	spec, err := Walk(f, glOptions(t))
	require.NoError(t, err)

	for group, names := range spec.Groups {
		for _, n := range names {
			_, ok := spec.Lookup(n)
			assert.True(t, ok, "group %s references unknown %s", group, n)
		}
	}
}

func TestWalk_IgnoresUnknownMarkup(t *testing.T) {
	src := &scriptedSource{events: []Event{
		{Kind: EventStartDocument},
		{Kind: EventStartElement, Name: "registry"},
		{Kind: EventStartElement, Name: "enums"},
		{Kind: EventStartElement, Name: "enum", Attrs: map[string]string{"name": "A", "value": "1"}},
		{Kind: EventStartElement, Name: "comment"},
		{Kind: EventEndElement, Name: "comment"},
		{Kind: EventEndElement, Name: "enum"},
		{Kind: EventStartElement, Name: "extra"},
		{Kind: EventStartElement, Name: "enum", Attrs: map[string]string{"name": "NESTED", "value": "9"}},
		{Kind: EventEndElement, Name: "enum"},
		{Kind: EventEndElement, Name: "extra"},
		{Kind: EventStartElement, Name: "enum", Attrs: map[string]string{"name": "B", "value": "2"}},
		{Kind: EventEndElement, Name: "enum"},
		{Kind: EventEndElement, Name: "enums"},
		{Kind: EventStartElement, Name: "vendor"},
		{Kind: EventStartElement, Name: "enums"},
		{Kind: EventStartElement, Name: "enum", Attrs: map[string]string{"name": "DEEP", "value": "3"}},
		{Kind: EventEndElement, Name: "enum"},
		{Kind: EventEndElement, Name: "enums"},
		{Kind: EventEndElement, Name: "vendor"},
		{Kind: EventStartElement, Name: "enum", Attrs: map[string]string{"name": "OUTSIDE", "value": "4"}},
		{Kind: EventEndElement, Name: "enum"},
		{Kind: EventEndElement, Name: "registry"},
		{Kind: EventStartElement, Name: "trailing"},
		{Kind: EventEndElement, Name: "trailing"},
		{Kind: EventEndDocument},
	}}

	spec, _, err := WalkEvents(src, glOptions(t))
	require.NoError(t, err)
	require.Len(t, spec.Enums, 2)
	assert.Equal(t, "A", spec.Enums[0].Name)
	assert.Equal(t, "B", spec.Enums[1].Name)
}

func TestWalk_StructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		message string
	}{
		{"empty document", "", "missing document start"},
		{"no root container", `<?xml version="1.0"?><other><enums/></other>`, "expected root container"},
		{"unclosed section", `<registry><enums><enum name="A" value="1"/>`, "xml syntax error"},
		{"syntax error", `<registry><enums><enum name="A" value="1"></enums></registry>`, "xml syntax error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec, err := walkString(t, tt.doc, glOptions(t))
			require.Error(t, err)
			assert.Nil(t, spec)
			assert.True(t, errors.IsStructural(err), "expected structural error, got %v", err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestWalk_UnclosedSectionFromSource(t *testing.T) {
	src := &scriptedSource{events: []Event{
		{Kind: EventStartDocument},
		{Kind: EventStartElement, Name: "registry"},
		{Kind: EventStartElement, Name: "enums", Line: 7},
		{Kind: EventStartElement, Name: "enum", Attrs: map[string]string{"name": "A", "value": "1"}},
		{Kind: EventEndElement, Name: "enum"},
	}}

	spec, _, err := WalkEvents(src, glOptions(t))
	require.Error(t, err)
	assert.Nil(t, spec)
	assert.True(t, errors.IsStructural(err))
	assert.Contains(t, err.Error(), "section opened at line 7 never closed")
}

func TestWalk_MissingStartDocumentFromSource(t *testing.T) {
	src := &scriptedSource{events: []Event{
		{Kind: EventStartElement, Name: "registry"},
	}}

	_, _, err := WalkEvents(src, glOptions(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing document start")
}

func TestWalk_EntryErrorsAbort(t *testing.T) {
	tests := []struct {
		name     string
		entry    string
		sentinel error
	}{
		{"missing name", `<enum value="1"/>`, errors.ErrMissingAttribute},
		{"empty name", `<enum name=" " value="1"/>`, errors.ErrMissingAttribute},
		{"missing value", `<enum name="A"/>`, errors.ErrMissingAttribute},
		{"bad literal", `<enum name="A" value="0xZZ"/>`, errors.ErrInvalidLiteral},
		{"overflow", `<enum name="A" value="0x1_0000_0000_0000_0000"/>`, errors.ErrInvalidLiteral},
		{"signed out of range", `<enum name="A" value="-9223372036854775809"/>`, errors.ErrOutOfRange},
		{"duplicate", `<enum name="A" value="1"/><enum name="A" value="2"/>`, errors.ErrDuplicateEnumerant},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := `<registry><enums>` + tt.entry + `</enums></registry>`
			spec, err := walkString(t, doc, glOptions(t))
			require.Error(t, err)
			assert.Nil(t, spec)
			assert.True(t, errors.Is(err, tt.sentinel), "got %v", err)
			assert.True(t, errors.IsEntryError(err))
		})
	}
}

func TestWalk_EntryErrorCarriesOffendingValue(t *testing.T) {
	doc := `<registry><enums><enum name="GL_BROKEN" value="0x12G4"/></enums></registry>`

	_, err := walkString(t, doc, glOptions(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GL_BROKEN")
	assert.Contains(t, err.Error(), "0x12G4")
}

func TestWalk_SkipPolicy(t *testing.T) {
	doc := `<registry><enums>
  <enum name="A" value="1" group="G"/>
  <enum name="B" value="nope" group="G"/>
  <enum value="3"/>
  <enum name="A" value="4"/>
  <enum name="C" value="5" group="G"/>
</enums></registry>`

	opts, err := NewOptions("gl", "4.6", "core", "skip")
	require.NoError(t, err)

	spec, stats, err := WalkEvents(NewEventReader(strings.NewReader(doc)), opts)
	require.NoError(t, err)

	require.Len(t, spec.Enums, 2)
	assert.Equal(t, "A", spec.Enums[0].Name)
	assert.Equal(t, unsignedConst(8, 1), spec.Enums[0].Value)
	assert.Equal(t, "C", spec.Enums[1].Name)
	assert.Equal(t, []string{"A", "C"}, spec.Groups["G"])
	assert.Equal(t, 3, stats.SkippedInvalid)
}

func TestWalk_SkipPolicyStillFailsStructurally(t *testing.T) {
	opts, err := NewOptions("gl", "4.6", "core", "skip")
	require.NoError(t, err)

	_, err = walkString(t, `<notregistry/>`, opts)
	require.Error(t, err)
	assert.True(t, errors.IsStructural(err))
}

func TestSplitGroups(t *testing.T) {
	assert.Equal(t, []string{"A", "B", "C"}, SplitGroups("A, B,C"))
	assert.Equal(t, []string{"A"}, SplitGroups(" A ,A,"))
	assert.Empty(t, SplitGroups(""))
	assert.Empty(t, SplitGroups(" , "))
}

// scriptedSource replays a fixed event list, then io.EOF.
type scriptedSource struct {
	events []Event
	pos    int
}

func (s *scriptedSource) Next() (Event, error) {
	if s.pos >= len(s.events) {
		return Event{}, io.EOF
	}
	ev := s.events[s.pos]
	s.pos++
	return ev, nil
}
