package typetable

import (
	"fmt"
	"strconv"

	"github.com/wippyai/layoutview/errors"
	"github.com/wippyai/layoutview/internal/layout"
	"github.com/wippyai/layoutview/target"
	"go.bytecodealliance.org/wit"
)

// ImportWIT registers name as the canonical ABI layout of wt. Guest pointers are
// 32-bit offsets into linear memory, so strings and lists become {ptr, len}
// pairs of uint32_t. Anonymous nested types are named after their field path.
func (t *Table) ImportWIT(name string, wt wit.Type) (*target.Type, error) {
	typ, err := t.fromWIT(name, wt)
	if err != nil {
		return nil, err
	}
	if typ.Name != name {
		typ = &target.Type{Name: name, Kind: target.KindTypedef, Elem: typ, Size: typ.Size, Align: typ.Align}
	}
	if err := t.Add(typ); err != nil {
		return nil, err
	}
	return typ, nil
}

func (t *Table) fromWIT(name string, wt wit.Type) (*target.Type, error) {
	switch w := wt.(type) {
	case wit.Bool:
		return t.types["bool"], nil
	case wit.U8:
		return t.types["uint8_t"], nil
	case wit.S8:
		return t.types["int8_t"], nil
	case wit.U16:
		return t.types["uint16_t"], nil
	case wit.S16:
		return t.types["int16_t"], nil
	case wit.U32, wit.Char:
		return t.types["uint32_t"], nil
	case wit.S32:
		return t.types["int32_t"], nil
	case wit.U64:
		return t.types["uint64_t"], nil
	case wit.S64:
		return t.types["int64_t"], nil
	case wit.F32:
		return t.types["float"], nil
	case wit.F64:
		return t.types["double"], nil
	case wit.String:
		return t.guestSlice(name)
	case *wit.TypeDef:
		if w.Name != nil && *w.Name != "" {
			name = *w.Name
		}
		return t.fromTypeDef(name, w)
	}
	return nil, errors.Unsupported(errors.PhaseResolve, fmt.Sprintf("WIT type %T", wt))
}

func (t *Table) guestSlice(name string) (*target.Type, error) {
	u32 := t.types["uint32_t"]
	return NewStruct(name, Member{Name: "ptr", Type: u32}, Member{Name: "len", Type: u32})
}

func (t *Table) uintOfSize(size uint64) *target.Type {
	switch size {
	case 1:
		return t.types["uint8_t"]
	case 2:
		return t.types["uint16_t"]
	case 4:
		return t.types["uint32_t"]
	}
	return t.types["uint64_t"]
}

func (t *Table) fromTypeDef(name string, td *wit.TypeDef) (*target.Type, error) {
	switch k := td.Kind.(type) {
	case *wit.Record:
		members := make([]Member, len(k.Fields))
		for i, f := range k.Fields {
			ft, err := t.fromWIT(name+"."+f.Name, f.Type)
			if err != nil {
				return nil, err
			}
			members[i] = Member{Name: f.Name, Type: ft}
		}
		return NewStruct(name, members...)

	case *wit.Tuple:
		members := make([]Member, len(k.Types))
		for i, et := range k.Types {
			field := "f" + strconv.Itoa(i)
			ft, err := t.fromWIT(name+"."+field, et)
			if err != nil {
				return nil, err
			}
			members[i] = Member{Name: field, Type: ft}
		}
		return NewStruct(name, members...)

	case *wit.List:
		return t.guestSlice(name)

	case *wit.Option:
		inner, err := t.fromWIT(name+".val", k.Type)
		if err != nil {
			return nil, err
		}
		info := t.calc.Calculate(td)
		return NewStructAt(name, info.Size,
			target.Field{Name: "is_some", Type: t.types["uint8_t"], Offset: info.Offsets[0]},
			target.Field{Name: "val", Type: inner, Offset: info.Offsets[1]})

	case *wit.Variant:
		if len(k.Cases) == 0 {
			return NewStructAt(name, 0)
		}
		info := t.calc.Calculate(td)
		disc := t.uintOfSize(layout.DiscriminantSize(len(k.Cases)))
		fields := []target.Field{{Name: "tag", Type: disc, Offset: 0}}
		if payload := info.Size - info.Offsets[1]; payload > 0 {
			fields = append(fields, target.Field{
				Name:   "payload",
				Type:   target.ArrayOf(t.types["uint8_t"], payload),
				Offset: info.Offsets[1],
			})
		}
		typ, err := NewStructAt(name, info.Size, fields...)
		if err != nil {
			return nil, err
		}
		typ.Align = info.Align
		return typ, nil

	case *wit.Enum:
		u := t.uintOfSize(layout.DiscriminantSize(len(k.Cases)))
		return &target.Type{Name: name, Kind: target.KindTypedef, Elem: u, Size: u.Size, Align: u.Align}, nil

	case *wit.Flags:
		info := t.calc.Calculate(td)
		if len(k.Flags) == 0 {
			return NewStructAt(name, 0)
		}
		if len(k.Flags) <= 64 {
			u := t.uintOfSize(info.Size)
			return &target.Type{Name: name, Kind: target.KindTypedef, Elem: u, Size: u.Size, Align: u.Align}, nil
		}
		return NewStructAt(name, info.Size,
			target.Field{Name: "bits", Type: target.ArrayOf(t.types["uint32_t"], info.Size/4)})

	case wit.Type:
		return t.fromWIT(name, k)
	}
	return nil, errors.Unsupported(errors.PhaseResolve, fmt.Sprintf("WIT kind %T", td.Kind))
}
