package snapshot

import (
	"strings"

	"github.com/wippyai/layoutview/errors"
	"github.com/wippyai/layoutview/target"
	"github.com/wippyai/layoutview/typetable"
)

const (
	pending = iota
	visiting
	done
)

// typeLoader resolves manifest types in dependency order. Every declared name
// is registered as a placeholder first so pointers to it resolve before its
// layout is known.
type typeLoader struct {
	table *typetable.Table
	specs map[string]*TypeSpec
	types map[string]*target.Type
	state map[string]int
}

func loadTypes(table *typetable.Table, specs []TypeSpec) error {
	l := &typeLoader{
		table: table,
		specs: make(map[string]*TypeSpec, len(specs)),
		types: make(map[string]*target.Type, len(specs)),
		state: make(map[string]int, len(specs)),
	}
	for i := range specs {
		s := &specs[i]
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return errors.Load("type without a name", nil)
		}
		if _, dup := l.specs[name]; dup {
			return errors.Load("type "+name+" declared twice", nil)
		}
		ph := &target.Type{Name: name, Kind: target.KindStruct, Params: []target.Param{}}
		if err := table.Add(ph); err != nil {
			return errors.Load("type "+name, err)
		}
		l.specs[name] = s
		l.types[name] = ph
	}

	for i := range specs {
		if err := l.complete(strings.TrimSpace(specs[i].Name)); err != nil {
			return err
		}
	}
	for _, typ := range l.types {
		typ.Params = nil
		if err := table.Bind(typ); err != nil {
			return errors.Load("type "+typ.Name, err)
		}
	}
	return nil
}

// underlying strips trailing array and pointer declarators. indirect is true
// when the base type is only reached through a pointer.
func underlying(name string) (base string, indirect bool) {
	base = strings.TrimSpace(name)
	for {
		switch {
		case strings.HasSuffix(base, "*"):
			base = strings.TrimSpace(base[:len(base)-1])
			indirect = true
		case strings.HasSuffix(base, "]"):
			i := strings.LastIndexByte(base, '[')
			if i < 0 {
				return base, indirect
			}
			base = strings.TrimSpace(base[:i])
		default:
			return strings.TrimPrefix(base, "const "), indirect
		}
	}
}

// resolve looks up a type name used by a declaration, completing the declared
// type it depends on by value first.
func (l *typeLoader) resolve(name string) (*target.Type, error) {
	base, indirect := underlying(name)
	if _, declared := l.specs[base]; declared && !indirect {
		if err := l.complete(base); err != nil {
			return nil, err
		}
	}
	return l.table.LookupType(name)
}

func (l *typeLoader) complete(name string) error {
	switch l.state[name] {
	case done:
		return nil
	case visiting:
		return errors.Load("type "+name+" contains itself", nil)
	}
	l.state[name] = visiting

	spec := l.specs[name]
	built, err := l.build(name, spec)
	if err != nil {
		return err
	}
	ph := l.types[name]
	*ph = *built

	l.state[name] = done
	return nil
}

func (l *typeLoader) build(name string, spec *TypeSpec) (*target.Type, error) {
	if spec.Typedef != "" {
		if len(spec.Fields) > 0 {
			return nil, errors.Load("typedef "+name+" cannot have fields", nil)
		}
		elem, err := l.resolve(spec.Typedef)
		if err != nil {
			return nil, errors.Load("typedef "+name, err)
		}
		return &target.Type{Name: name, Kind: target.KindTypedef, Elem: elem, Size: elem.Size, Align: elem.Align}, nil
	}

	explicit := 0
	for _, f := range spec.Fields {
		if f.Offset != nil {
			explicit++
		}
	}
	if explicit != 0 && explicit != len(spec.Fields) {
		return nil, errors.Load("struct "+name+" mixes explicit and computed offsets", nil)
	}

	types := make([]*target.Type, len(spec.Fields))
	for i, f := range spec.Fields {
		if f.Name == "" {
			return nil, errors.Load("struct "+name+" has an unnamed field", nil)
		}
		ft, err := l.resolve(f.Type)
		if err != nil {
			return nil, errors.Load("struct "+name+" field "+f.Name, err)
		}
		types[i] = ft
	}

	if explicit > 0 {
		fields := make([]target.Field, len(spec.Fields))
		for i, f := range spec.Fields {
			fields[i] = target.Field{Name: f.Name, Type: types[i], Offset: *f.Offset, Embedded: f.Base}
		}
		typ, err := typetable.NewStructAt(name, spec.Size, fields...)
		if err != nil {
			return nil, errors.Load("struct "+name, err)
		}
		return typ, nil
	}

	members := make([]typetable.Member, len(spec.Fields))
	for i, f := range spec.Fields {
		members[i] = typetable.Member{Name: f.Name, Type: types[i], Embedded: f.Base}
	}
	typ, err := typetable.NewStruct(name, members...)
	if err != nil {
		return nil, errors.Load("struct "+name, err)
	}
	if spec.Size != 0 {
		if spec.Size < typ.Size {
			return nil, errors.Load("struct "+name+" declares a size smaller than its fields", nil)
		}
		typ.Size = spec.Size
	}
	return typ, nil
}
