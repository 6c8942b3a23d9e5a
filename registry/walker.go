// Package registry extracts enumerants from an API registry document.
//
// Walk drives an explicit state machine over a pull-based stream of
// structural events:
//
//	BeforeRoot --<registry>--> InRoot --<enums>--> InEnums
//	                              ^                   |
//	                              +-----</enums>------+
//	InRoot --</registry>--> Done
//
// Elements the machine does not recognise are skipped together with their
// subtree, so unknown markup never affects the result.
package registry

import (
	"io"
	"strings"

	"github.com/teranos/glenum/constant"
	"github.com/teranos/glenum/errors"
	"github.com/teranos/glenum/logger"
)

const (
	rootElement    = "registry"
	sectionElement = "enums"
	entryElement   = "enum"
)

type walkState int

const (
	stateBeforeRoot walkState = iota
	stateInRoot
	stateInEnums
	stateDone
)

func (s walkState) String() string {
	switch s {
	case stateBeforeRoot:
		return "before-root"
	case stateInRoot:
		return "in-root"
	case stateInEnums:
		return "in-enums"
	case stateDone:
		return "done"
	default:
		return "unknown"
	}
}

// WalkStats counts what happened to candidate entries during a walk.
type WalkStats struct {
	Sections       int
	Accepted       int
	SkippedAPI     int
	SkippedInvalid int
}

type walker struct {
	src   EventSource
	opts  Options
	b     *specBuilder
	state walkState
	// skip is the open-element depth of a subtree being ignored.
	skip        int
	sectionLine int
	stats       WalkStats
}

// Walk reads a registry document and returns the enumerants that apply to
// opts.API.
func Walk(r io.Reader, opts Options) (*Spec, error) {
	spec, _, err := WalkEvents(NewEventReader(r), opts)
	return spec, err
}

// WalkEvents runs the extraction state machine over an event source. On
// error no Spec is returned.
func WalkEvents(src EventSource, opts Options) (*Spec, WalkStats, error) {
	w := &walker{
		src:   src,
		opts:  opts,
		b:     newSpecBuilder(),
		state: stateBeforeRoot,
	}
	if err := w.run(); err != nil {
		return nil, w.stats, err
	}

	logger.Infow("Registry walked",
		logger.FieldCount, w.stats.Accepted,
		"sections", w.stats.Sections,
		"skipped_api", w.stats.SkippedAPI,
		"skipped_invalid", w.stats.SkippedInvalid,
		"groups", len(w.b.groups),
		logger.FieldAPI, string(opts.API))

	return w.b.build(opts), w.stats, nil
}

func (w *walker) run() error {
	ev, err := w.src.Next()
	if err != nil && err != io.EOF {
		return err
	}
	if err == io.EOF || ev.Kind != EventStartDocument {
		return errors.NewMalformedError("missing document start")
	}

	for {
		ev, err := w.src.Next()
		if err == io.EOF {
			ev = Event{Kind: EventEndDocument}
		} else if err != nil {
			return errors.Wrapf(err, "reading registry (%s)", w.state)
		}

		done, err := w.step(ev)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// step advances the machine by one event and reports whether the walk is
// complete.
func (w *walker) step(ev Event) (bool, error) {
	if ev.Kind == EventEndDocument {
		return true, w.finish(ev)
	}

	if w.skip > 0 {
		switch ev.Kind {
		case EventStartElement:
			w.skip++
		case EventEndElement:
			w.skip--
		}
		return false, nil
	}

	switch w.state {
	case stateBeforeRoot:
		if ev.Kind == EventStartElement && ev.Name == rootElement {
			w.state = stateInRoot
		}

	case stateInRoot:
		switch {
		case ev.Kind == EventStartElement && ev.Name == sectionElement:
			w.enterSection(ev)
		case ev.Kind == EventStartElement:
			w.skip = 1
		case ev.Kind == EventEndElement && ev.Name == rootElement:
			w.state = stateDone
		}

	case stateInEnums:
		switch {
		case ev.Kind == EventStartElement && ev.Name == entryElement:
			// Anything nested inside <enum> is ignored.
			w.skip = 1
			if err := w.candidate(ev); err != nil {
				return false, err
			}
		case ev.Kind == EventStartElement:
			w.skip = 1
		case ev.Kind == EventEndElement && ev.Name == sectionElement:
			w.state = stateInRoot
		}

	case stateDone:
		// Trailing markup after the root container is ignored.
	}
	return false, nil
}

func (w *walker) finish(ev Event) error {
	switch w.state {
	case stateBeforeRoot:
		return errors.WithHint(
			errors.NewMalformedError("expected root container <%s>", rootElement),
			"is this an API registry document such as gl.xml?")
	case stateInRoot:
		return errors.NewMalformedError("root container <%s> never closed", rootElement)
	case stateInEnums:
		return errors.NewMalformedError("<%s> section opened at line %d never closed", sectionElement, w.sectionLine)
	}
	if w.skip > 0 {
		return errors.NewMalformedError("element never closed at end of document (line %d)", ev.Line)
	}
	return nil
}

func (w *walker) enterSection(ev Event) {
	w.state = stateInEnums
	w.sectionLine = ev.Line
	w.stats.Sections++

	if logger.ShouldOutput(logger.Verbosity, logger.OutputSections) {
		ns, _ := ev.Attr("namespace")
		group, _ := ev.Attr("group")
		logger.Debugw("Entering enums section",
			logger.FieldLine, ev.Line,
			"namespace", ns,
			logger.FieldGroup, group)
	}
}

func (w *walker) candidate(ev Event) error {
	if api, ok := ev.Attr("api"); !w.opts.Accepts(api, ok) {
		w.stats.SkippedAPI++
		if logger.ShouldOutput(logger.Verbosity, logger.OutputEntries) {
			name, _ := ev.Attr("name")
			logger.Debugw("Skipping enum for other API",
				logger.FieldEnumerant, name,
				logger.FieldAPI, api,
				logger.FieldLine, ev.Line)
		}
		return nil
	}

	e, groups, err := w.buildEnumerant(ev)
	if err != nil {
		if w.opts.EntryPolicy == PolicySkip && errors.IsEntryError(err) {
			w.stats.SkippedInvalid++
			logger.Warnw("Skipping invalid enum",
				logger.FieldLine, ev.Line,
				logger.FieldError, err.Error())
			return nil
		}
		return err
	}

	w.b.add(e, groups)
	w.stats.Accepted++
	if logger.ShouldOutput(logger.Verbosity, logger.OutputEntries) {
		logger.Debugw("Accepted enum",
			logger.FieldEnumerant, e.Name,
			"type", e.Value.Type.String(),
			logger.FieldGroup, groups)
	}
	return nil
}

func (w *walker) buildEnumerant(ev Event) (Enumerant, []string, error) {
	name, ok := ev.Attr("name")
	if !ok || strings.TrimSpace(name) == "" {
		return Enumerant{}, nil, errors.WithDetailf(
			errors.Wrapf(errors.ErrMissingAttribute, "<%s> at line %d has no name", entryElement, ev.Line),
			"section opened at line %d", w.sectionLine)
	}

	raw, ok := ev.Attr("value")
	if !ok {
		return Enumerant{}, nil, errors.Wrapf(errors.ErrMissingAttribute,
			"enum %s at line %d has no value", name, ev.Line)
	}
	value, err := constant.Parse(raw)
	if err != nil {
		return Enumerant{}, nil, errors.WithDetailf(
			errors.Wrapf(err, "enum %s at line %d", name, ev.Line),
			"value: %q", raw)
	}

	if w.b.has(name) {
		return Enumerant{}, nil, errors.WithHint(
			errors.Wrapf(errors.ErrDuplicateEnumerant, "enum %s at line %d", name, ev.Line),
			"entries sharing a name must carry distinct api attributes")
	}

	alias, _ := ev.Attr("alias")
	e := Enumerant{Name: name, Value: value, Alias: alias}

	var groups []string
	if g, ok := ev.Attr("group"); ok {
		groups = SplitGroups(g)
	}
	return e, groups, nil
}

// SplitGroups splits a comma-delimited group attribute. Parts are trimmed,
// empty parts dropped and repeats collapsed, preserving first occurrence.
func SplitGroups(attr string) []string {
	parts := strings.Split(attr, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
