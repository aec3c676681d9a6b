package layout

import (
	"go.bytecodealliance.org/wit"
)

// Info describes the memory footprint of a type. Offsets is only populated for
// aggregates, in member order.
type Info struct {
	Offsets []uint64
	Size    uint64
	Align   uint64
}

// Member is one field of an aggregate being laid out.
type Member struct {
	Size  uint64
	Align uint64
}

func AlignTo(offset, align uint64) uint64 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

func DiscriminantSize(numCases int) uint64 {
	if numCases <= 256 {
		return 1
	} else if numCases <= 65536 {
		return 2
	}
	return 4
}

// Struct lays members out sequentially with natural alignment.
func Struct(members []Member) Info {
	if len(members) == 0 {
		return Info{Size: 0, Align: 1}
	}

	offsets := make([]uint64, len(members))
	maxAlign := uint64(1)
	offset := uint64(0)

	for i, m := range members {
		offset = AlignTo(offset, m.Align)
		offsets[i] = offset

		if m.Align > maxAlign {
			maxAlign = m.Align
		}

		offset += m.Size
	}

	return Info{
		Size:    AlignTo(offset, maxAlign),
		Align:   maxAlign,
		Offsets: offsets,
	}
}

type Calculator struct {
	cache map[*wit.TypeDef]Info
}

// NewCalculator returns a Canonical ABI layout calculator.
func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[*wit.TypeDef]Info),
	}
}

func (c *Calculator) Calculate(t wit.Type) Info {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return Info{Size: 1, Align: 1}
	case wit.U16, wit.S16:
		return Info{Size: 2, Align: 2}
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return Info{Size: 4, Align: 4}
	case wit.U64, wit.S64, wit.F64:
		return Info{Size: 8, Align: 8}
	case wit.String:
		return Info{Size: 8, Align: 4} // [ptr: u32, len: u32]
	case *wit.TypeDef:
		return c.calculateTypeDef(typ)
	default:
		return Info{Size: 0, Align: 1}
	}
}

func (c *Calculator) calculateTypeDef(t *wit.TypeDef) Info {
	if cached, ok := c.cache[t]; ok {
		return cached
	}

	var info Info

	switch kind := t.Kind.(type) {
	case *wit.Record:
		info = c.calculateRecord(kind)
	case *wit.Variant:
		info = c.calculateVariant(kind)
	case *wit.Enum:
		size := DiscriminantSize(len(kind.Cases))
		info = Info{Size: size, Align: size}
	case *wit.List:
		info = Info{Size: 8, Align: 4}
	case *wit.Option:
		info = c.calculateOption(kind)
	case *wit.Tuple:
		info = c.calculateTuple(kind)
	case *wit.Flags:
		info = calculateFlags(kind)
	case wit.Type:
		info = c.Calculate(kind)
	default:
		info = Info{Size: 0, Align: 1}
	}

	c.cache[t] = info
	return info
}

func (c *Calculator) calculateRecord(r *wit.Record) Info {
	members := make([]Member, len(r.Fields))
	for i, field := range r.Fields {
		fl := c.Calculate(field.Type)
		members[i] = Member{Size: fl.Size, Align: fl.Align}
	}
	return Struct(members)
}

func (c *Calculator) calculateTuple(t *wit.Tuple) Info {
	members := make([]Member, len(t.Types))
	for i, typ := range t.Types {
		el := c.Calculate(typ)
		members[i] = Member{Size: el.Size, Align: el.Align}
	}
	return Struct(members)
}

func (c *Calculator) calculateVariant(v *wit.Variant) Info {
	if len(v.Cases) == 0 {
		return Info{Size: 0, Align: 1}
	}

	discSize := DiscriminantSize(len(v.Cases))

	maxAlign := discSize
	maxSize := uint64(0)

	for _, cs := range v.Cases {
		if cs.Type != nil {
			cl := c.Calculate(cs.Type)
			if cl.Align > maxAlign {
				maxAlign = cl.Align
			}
			if cl.Size > maxSize {
				maxSize = cl.Size
			}
		}
	}

	payloadOffset := AlignTo(discSize, maxAlign)
	return Info{
		Size:    AlignTo(payloadOffset+maxSize, maxAlign),
		Align:   maxAlign,
		Offsets: []uint64{0, payloadOffset},
	}
}

// calculateOption returns the discriminant at offset 0 and the payload offset.
func (c *Calculator) calculateOption(o *wit.Option) Info {
	inner := c.Calculate(o.Type)

	maxAlign := inner.Align
	if maxAlign < 1 {
		maxAlign = 1
	}

	payloadOffset := AlignTo(1, maxAlign)
	return Info{
		Size:    AlignTo(payloadOffset+inner.Size, maxAlign),
		Align:   maxAlign,
		Offsets: []uint64{0, payloadOffset},
	}
}

func calculateFlags(f *wit.Flags) Info {
	n := len(f.Flags)

	switch {
	case n == 0:
		return Info{Size: 0, Align: 1}
	case n <= 8:
		return Info{Size: 1, Align: 1}
	case n <= 16:
		return Info{Size: 2, Align: 2}
	case n <= 32:
		return Info{Size: 4, Align: 4}
	case n <= 64:
		return Info{Size: 8, Align: 8}
	}

	// >64 flags: multiple u32s per Canonical ABI spec
	return Info{Size: uint64((n+31)/32) * 4, Align: 4}
}
