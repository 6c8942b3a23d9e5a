package registry

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/glenum/errors"
)

func drain(t *testing.T, src EventSource) []Event {
	t.Helper()
	var out []Event
	for {
		ev, err := src.Next()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, ev)
	}
}

func TestEventReader_Sequence(t *testing.T) {
	doc := `<?xml version="1.0"?>
<!-- leading comment -->
<registry>
  <enums namespace="GL">
    <enum name="A" value="1" api="gl"/>
  </enums>
</registry>`

	events := drain(t, NewEventReader(strings.NewReader(doc)))

	kinds := make([]EventKind, len(events))
	names := make([]string, len(events))
	for i, ev := range events {
		kinds[i] = ev.Kind
		names[i] = ev.Name
	}
	assert.Equal(t, []EventKind{
		EventStartDocument,
		EventStartElement, EventStartElement, EventStartElement,
		EventEndElement, EventEndElement, EventEndElement,
		EventEndDocument,
	}, kinds)
	assert.Equal(t, []string{"", "registry", "enums", "enum", "enum", "enums", "registry", ""}, names)

	enum := events[3]
	v, ok := enum.Attr("value")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	_, ok = enum.Attr("group")
	assert.False(t, ok)
	assert.Equal(t, 5, enum.Line)
}

func TestEventReader_FirstTokenIsElement(t *testing.T) {
	events := drain(t, NewEventReader(strings.NewReader(`<registry/>`)))
	require.Len(t, events, 4)
	assert.Equal(t, EventStartDocument, events[0].Kind)
	assert.Equal(t, EventStartElement, events[1].Kind)
	assert.Equal(t, "registry", events[1].Name)
	assert.Equal(t, EventEndElement, events[2].Kind)
	assert.Equal(t, EventEndDocument, events[3].Kind)
}

func TestEventReader_Empty(t *testing.T) {
	er := NewEventReader(strings.NewReader(""))
	_, err := er.Next()
	assert.Equal(t, io.EOF, err)
	_, err = er.Next()
	assert.Equal(t, io.EOF, err)
}

func TestEventReader_SyntaxErrorIsStructural(t *testing.T) {
	er := NewEventReader(strings.NewReader("<registry><enums>"))
	var err error
	for err == nil {
		_, err = er.Next()
	}
	require.NotEqual(t, io.EOF, err)
	assert.True(t, errors.IsStructural(err))

	_, err = er.Next()
	assert.Equal(t, io.EOF, err, "reader stays exhausted after an error")
}

func TestEventReader_Depth(t *testing.T) {
	er := NewEventReader(strings.NewReader("<a><b><c/></b></a>"))
	maxDepth := 0
	for {
		_, err := er.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		if er.Depth() > maxDepth {
			maxDepth = er.Depth()
		}
	}
	assert.Equal(t, 3, maxDepth)
	assert.Equal(t, 0, er.Depth())
}

func TestEventKind_String(t *testing.T) {
	assert.Equal(t, "start-document", EventStartDocument.String())
	assert.Equal(t, "end-element", EventEndElement.String())
	assert.Equal(t, "unknown", EventKind(42).String())
}
