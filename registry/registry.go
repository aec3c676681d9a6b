package registry

import (
	"regexp"

	"github.com/wippyai/layoutview/errors"
	"github.com/wippyai/layoutview/printer"
	"github.com/wippyai/layoutview/target"
	"go.uber.org/zap"
)

// Entry is a registered printer.
type Entry struct {
	New     printer.Constructor
	re      *regexp.Regexp
	Name    string
	Pattern string
}

// Matches reports whether the entry's pattern matches typeName.
func (e *Entry) Matches(typeName string) bool {
	return e.re.MatchString(typeName)
}

// Registry is an ordered collection of printer entries.
type Registry struct {
	names   map[string]int
	entries []*Entry
	sealed  bool
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{names: make(map[string]int)}
}

// Register appends a printer under a unique name.
func (r *Registry) Register(name, pattern string, ctor printer.Constructor) error {
	switch {
	case r.sealed:
		return errors.Registration(name, "registry is sealed", nil)
	case name == "":
		return errors.Registration(name, "empty name", nil)
	case ctor == nil:
		return errors.Registration(name, "nil constructor", nil)
	}
	if _, dup := r.names[name]; dup {
		return errors.Registration(name, "duplicate name", nil)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return errors.Registration(name, "invalid pattern "+pattern, err)
	}

	r.names[name] = len(r.entries)
	r.entries = append(r.entries, &Entry{Name: name, Pattern: pattern, New: ctor, re: re})
	Logger().Debug("registered printer", zap.String("name", name), zap.String("pattern", pattern))
	return nil
}

// Seal makes the registry read-only.
func (r *Registry) Seal() { r.sealed = true }

// Match returns the first entry whose pattern matches typeName.
func (r *Registry) Match(typeName string) *Entry {
	if typeName == "" {
		return nil
	}
	for _, e := range r.entries {
		if e.Matches(typeName) {
			return e
		}
	}
	return nil
}

// Lookup builds the printer for v from the first entry matching its type with
// typedefs stripped. It returns nil, nil when no entry matches. Arrays and
// pointers never match: their names embed the element's name, and the
// renderer looks up each element on its own.
func (r *Registry) Lookup(v *target.Value, h printer.Host) (printer.Printer, *Entry) {
	st := v.Type().Strip()
	if st == nil || st.Kind == target.KindArray || st.Kind == target.KindPointer {
		return nil, nil
	}
	e := r.Match(st.Name)
	if e == nil {
		return nil, nil
	}
	return e.New(v, h), e
}

// Get returns the entry registered under name.
func (r *Registry) Get(name string) (*Entry, bool) {
	i, ok := r.names[name]
	if !ok {
		return nil, false
	}
	return r.entries[i], true
}

// Entries returns the entries in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	for i, e := range r.entries {
		out[i] = *e
	}
	return out
}

func (r *Registry) Len() int { return len(r.entries) }
