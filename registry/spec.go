package registry

import (
	"sort"

	"github.com/teranos/glenum/constant"
)

// Enumerant is one named constant extracted from the registry.
type Enumerant struct {
	Name  string            `json:"name" yaml:"name" toml:"name"`
	Value constant.Constant `json:"value" yaml:"value" toml:"value"`
	// Alias names another enumerant this one is a synonym for. It is copied
	// verbatim and never resolved.
	Alias string `json:"alias,omitempty" yaml:"alias,omitempty" toml:"alias,omitempty"`
}

// Spec is the result of walking a registry: enumerants in document order
// plus group membership. A Spec is built once by Walk and not modified
// afterwards.
type Spec struct {
	Options Options `json:"-" yaml:"-" toml:"-"`

	Enums  []Enumerant         `json:"enums" yaml:"enums" toml:"enums"`
	Groups map[string][]string `json:"groups" yaml:"groups" toml:"groups"`

	index map[string]int
}

// Lookup returns the enumerant with the given name.
func (s *Spec) Lookup(name string) (Enumerant, bool) {
	i, ok := s.index[name]
	if !ok {
		return Enumerant{}, false
	}
	return s.Enums[i], true
}

// Group returns the members of a group in insertion order.
func (s *Spec) Group(name string) []Enumerant {
	names := s.Groups[name]
	out := make([]Enumerant, 0, len(names))
	for _, n := range names {
		if e, ok := s.Lookup(n); ok {
			out = append(out, e)
		}
	}
	return out
}

// GroupNames returns all group names, sorted.
func (s *Spec) GroupNames() []string {
	names := make([]string, 0, len(s.Groups))
	for name := range s.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of enumerants.
func (s *Spec) Len() int {
	return len(s.Enums)
}

// specBuilder accumulates a Spec during a walk. It is private to Walk so
// the returned Spec has a single owner.
type specBuilder struct {
	enums  []Enumerant
	groups map[string][]string
	index  map[string]int
}

func newSpecBuilder() *specBuilder {
	return &specBuilder{
		groups: make(map[string][]string),
		index:  make(map[string]int),
	}
}

func (b *specBuilder) has(name string) bool {
	_, ok := b.index[name]
	return ok
}

func (b *specBuilder) add(e Enumerant, groups []string) {
	b.index[e.Name] = len(b.enums)
	b.enums = append(b.enums, e)
	for _, g := range groups {
		b.groups[g] = append(b.groups[g], e.Name)
	}
}

func (b *specBuilder) build(opts Options) *Spec {
	return &Spec{
		Options: opts,
		Enums:   b.enums,
		Groups:  b.groups,
		index:   b.index,
	}
}
