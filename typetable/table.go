package typetable

import (
	"slices"
	"strconv"
	"strings"

	"github.com/wippyai/layoutview/errors"
	"github.com/wippyai/layoutview/internal/layout"
	"github.com/wippyai/layoutview/target"
)

func prim(name string, kind target.Kind, size uint64) *target.Type {
	return &target.Type{Name: name, Kind: kind, Size: size, Align: size}
}

var primitives = []*target.Type{
	{Name: "void", Kind: target.KindVoid, Align: 1},
	prim("bool", target.KindBool, 1),
	prim("char", target.KindInt, 1),
	prim("signed char", target.KindInt, 1),
	prim("unsigned char", target.KindUint, 1),
	prim("short", target.KindInt, 2),
	prim("unsigned short", target.KindUint, 2),
	prim("int", target.KindInt, 4),
	prim("unsigned int", target.KindUint, 4),
	prim("long", target.KindInt, 8),
	prim("unsigned long", target.KindUint, 8),
	prim("long long", target.KindInt, 8),
	prim("unsigned long long", target.KindUint, 8),
	prim("float", target.KindFloat, 4),
	prim("double", target.KindFloat, 8),
}

// aliases are the <cstdint> typedefs as glibc declares them.
var aliases = [][2]string{
	{"int8_t", "signed char"},
	{"uint8_t", "unsigned char"},
	{"int16_t", "short"},
	{"uint16_t", "unsigned short"},
	{"int32_t", "int"},
	{"uint32_t", "unsigned int"},
	{"int64_t", "long"},
	{"uint64_t", "unsigned long"},
	{"size_t", "unsigned long"},
}

// ilp32 overrides the LP64 aliases on 32-bit targets, where long is 4 bytes.
var ilp32 = map[string]string{
	"int64_t":  "long long",
	"uint64_t": "unsigned long long",
	"size_t":   "unsigned int",
}

// Table is a set of named types. It implements target.TypeResolver.
type Table struct {
	types   map[string]*target.Type
	calc    *layout.Calculator
	ptrSize uint64
}

// New returns a table holding the primitive types of an LP64 target.
func New() *Table {
	t, _ := NewForPointerSize(target.PointerSize)
	return t
}

// NewForPointerSize returns a table for a target with size-byte pointers: 8
// for LP64, 4 for ILP32 targets such as wasm32, where long and size_t shrink
// to 4 bytes as well.
func NewForPointerSize(size uint64) (*Table, error) {
	if size != 4 && size != 8 {
		return nil, errors.New(errors.PhaseResolve, errors.KindInvalidInput).
			Value(size).
			Detail("pointer size %d is not 4 or 8", size).
			Build()
	}
	t := &Table{
		types:   make(map[string]*target.Type),
		calc:    layout.NewCalculator(),
		ptrSize: size,
	}
	for _, p := range primitives {
		c := *p
		if size == 4 && (c.Name == "long" || c.Name == "unsigned long") {
			c.Size, c.Align = 4, 4
		}
		t.types[p.Name] = &c
	}
	for _, a := range aliases {
		of := a[1]
		if alt, ok := ilp32[a[0]]; ok && size == 4 {
			of = alt
		}
		elem := t.types[of]
		t.types[a[0]] = &target.Type{Name: a[0], Kind: target.KindTypedef, Elem: elem, Size: elem.Size, Align: elem.Align}
	}
	return t, nil
}

// PointerSize is the width of the table's pointer types.
func (t *Table) PointerSize() uint64 { return t.ptrSize }

// Member is a struct member laid out by NewStruct.
type Member struct {
	Type     *target.Type
	Name     string
	Embedded bool
}

// NewStruct lays members out sequentially with natural alignment. The type is
// not added to any table.
func NewStruct(name string, members ...Member) (*target.Type, error) {
	lm := make([]layout.Member, len(members))
	for i, m := range members {
		if m.Type == nil {
			return nil, errors.InvalidInput(errors.PhaseResolve, name+": member "+strconv.Quote(m.Name)+" has no type")
		}
		lm[i] = layout.Member{Size: m.Type.Size, Align: max(m.Type.Align, 1)}
	}
	info := layout.Struct(lm)

	fields := make([]target.Field, len(members))
	for i, m := range members {
		fields[i] = target.Field{Name: m.Name, Type: m.Type, Offset: info.Offsets[i], Embedded: m.Embedded}
	}
	return &target.Type{Name: name, Kind: target.KindStruct, Fields: fields, Size: info.Size, Align: info.Align}, nil
}

// NewStructAt builds a struct from fields at fixed offsets. A zero size is
// computed from the fields.
func NewStructAt(name string, size uint64, fields ...target.Field) (*target.Type, error) {
	var end, align uint64 = 0, 1
	for _, f := range fields {
		if f.Type == nil {
			return nil, errors.InvalidInput(errors.PhaseResolve, name+": field "+strconv.Quote(f.Name)+" has no type")
		}
		end = max(end, f.Offset+f.Type.Size)
		align = max(align, f.Type.Align)
	}
	if size == 0 {
		size = layout.AlignTo(end, align)
	}
	if size < end {
		return nil, errors.New(errors.PhaseResolve, errors.KindInvalidInput).
			Type(name).
			Detail("size %d is smaller than its fields (%d)", size, end).
			Build()
	}
	return &target.Type{
		Name:   name,
		Kind:   target.KindStruct,
		Fields: slices.Clone(fields),
		Size:   size,
		Align:  align,
	}, nil
}

// Add registers typ under its name. Template parameters are bound from the name
// unless typ already carries them.
func (t *Table) Add(typ *target.Type) error {
	if typ == nil || typ.Name == "" {
		return errors.InvalidInput(errors.PhaseResolve, "type without a name")
	}
	if _, dup := t.types[typ.Name]; dup {
		return errors.New(errors.PhaseResolve, errors.KindInvalidInput).
			Type(typ.Name).
			Detail("type already defined").
			Build()
	}
	t.types[typ.Name] = typ
	if typ.Params == nil {
		return t.Bind(typ)
	}
	return nil
}

// Bind parses typ's template arguments from its name and resolves them against
// the table. Arguments that name unknown types keep only their text.
func (t *Table) Bind(typ *target.Type) error {
	args, err := ParseTemplateArgs(typ.Name)
	if err != nil || args == nil {
		return err
	}
	params := make([]target.Param, len(args))
	for i, a := range args {
		params[i] = t.param(a)
	}
	typ.Params = params
	return nil
}

func (t *Table) param(text string) target.Param {
	if v, ok := ParseConstant(text); ok {
		return target.Param{Text: text, Value: v, Const: true}
	}
	p := target.Param{Text: text}
	if typ, err := t.LookupType(text); err == nil {
		p.Type = typ
	}
	return p
}

// Struct lays out and registers a struct.
func (t *Table) Struct(name string, members ...Member) (*target.Type, error) {
	typ, err := NewStruct(name, members...)
	if err != nil {
		return nil, err
	}
	if err := t.Add(typ); err != nil {
		return nil, err
	}
	return typ, nil
}

// StructAt registers a struct with explicit field offsets.
func (t *Table) StructAt(name string, size uint64, fields ...target.Field) (*target.Type, error) {
	typ, err := NewStructAt(name, size, fields...)
	if err != nil {
		return nil, err
	}
	if err := t.Add(typ); err != nil {
		return nil, err
	}
	return typ, nil
}

// Typedef registers name as an alias of an existing type.
func (t *Table) Typedef(name, of string) (*target.Type, error) {
	elem, err := t.LookupType(of)
	if err != nil {
		return nil, err
	}
	typ := &target.Type{Name: name, Kind: target.KindTypedef, Elem: elem, Size: elem.Size, Align: elem.Align}
	if err := t.Add(typ); err != nil {
		return nil, err
	}
	return typ, nil
}

// Array returns the type of n elements of the named type.
func (t *Table) Array(elem string, n uint64) (*target.Type, error) {
	e, err := t.LookupType(elem)
	if err != nil {
		return nil, err
	}
	return target.ArrayOf(e, n), nil
}

// Pointer returns a pointer to the named type.
func (t *Table) Pointer(elem string) (*target.Type, error) {
	e, err := t.LookupType(elem)
	if err != nil {
		return nil, err
	}
	return target.PointerOf(e, t.ptrSize), nil
}

// LookupType resolves a declared name or a derived spelling of one.
func (t *Table) LookupType(name string) (*target.Type, error) {
	name = strings.TrimSpace(name)
	if typ, ok := t.types[name]; ok {
		return typ, nil
	}
	switch {
	case strings.HasPrefix(name, "const "):
		return t.LookupType(name[len("const "):])
	case strings.HasSuffix(name, "*"):
		return t.Pointer(name[:len(name)-1])
	case strings.HasSuffix(name, "]"):
		open := strings.LastIndexByte(name, '[')
		if open < 0 {
			break
		}
		n, err := strconv.ParseUint(strings.TrimSpace(name[open+1:len(name)-1]), 0, 64)
		if err != nil {
			break
		}
		return t.Array(name[:open], n)
	}
	return nil, errors.NotFound(errors.PhaseResolve, "type", name)
}

// Names returns the declared type names in sorted order.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.types))
	for n := range t.types {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func (t *Table) Len() int { return len(t.types) }
