package registry

import (
	"encoding/xml"
	"io"

	"github.com/teranos/glenum/errors"
)

// EventKind identifies the kind of structural event.
type EventKind int

const (
	EventStartDocument EventKind = iota
	EventStartElement
	EventEndElement
	EventEndDocument
)

func (k EventKind) String() string {
	switch k {
	case EventStartDocument:
		return "start-document"
	case EventStartElement:
		return "start-element"
	case EventEndElement:
		return "end-element"
	case EventEndDocument:
		return "end-document"
	default:
		return "unknown"
	}
}

// Event is a single structural markup event. Text, comments and processing
// instructions are not surfaced.
type Event struct {
	Kind  EventKind
	Name  string
	Attrs map[string]string
	Line  int
}

// Attr returns the named attribute and whether it was present.
func (e Event) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// EventSource is a pull-based stream of structural events. Once the stream
// is exhausted or has failed, Next keeps returning io.EOF.
type EventSource interface {
	Next() (Event, error)
}

// EventReader reads structural events from an XML document.
type EventReader struct {
	dec     *xml.Decoder
	started bool
	done    bool
	depth   int
	pending *Event
}

// NewEventReader creates a reader over r.
func NewEventReader(r io.Reader) *EventReader {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	return &EventReader{dec: dec}
}

// Next returns the next structural event.
//
// The first token of a non-empty document is announced by
// EventStartDocument. An empty document yields io.EOF straight away, which
// the walker reports as a missing document start.
func (er *EventReader) Next() (Event, error) {
	if er.pending != nil {
		ev := *er.pending
		er.pending = nil
		return ev, nil
	}
	if er.done {
		return Event{}, io.EOF
	}

	for {
		tok, err := er.dec.Token()
		if err == io.EOF {
			er.done = true
			if !er.started {
				return Event{}, io.EOF
			}
			return Event{Kind: EventEndDocument, Line: er.line()}, nil
		}
		if err != nil {
			er.done = true
			return Event{}, errors.WithDetailf(
				errors.Wrapf(errors.ErrMalformedInput, "xml syntax error at line %d", er.line()),
				"xml: %v", err)
		}

		ev, ok := er.convert(tok)
		if !er.started {
			er.started = true
			if ok {
				er.pending = &ev
			}
			return Event{Kind: EventStartDocument, Line: er.line()}, nil
		}
		if ok {
			return ev, nil
		}
	}
}

// Depth returns the number of currently open elements.
func (er *EventReader) Depth() int {
	return er.depth
}

func (er *EventReader) convert(tok xml.Token) (Event, bool) {
	switch t := tok.(type) {
	case xml.StartElement:
		er.depth++
		attrs := make(map[string]string, len(t.Attr))
		for _, a := range t.Attr {
			attrs[a.Name.Local] = a.Value
		}
		return Event{Kind: EventStartElement, Name: t.Name.Local, Attrs: attrs, Line: er.line()}, true
	case xml.EndElement:
		er.depth--
		return Event{Kind: EventEndElement, Name: t.Name.Local, Line: er.line()}, true
	default:
		return Event{}, false
	}
}

func (er *EventReader) line() int {
	line, _ := er.dec.InputPos()
	return line
}
