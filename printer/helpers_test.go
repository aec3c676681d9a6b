package printer

import (
	"encoding/binary"
	"strconv"
	"strings"
	"testing"

	"github.com/wippyai/layoutview/errors"
	"github.com/wippyai/layoutview/target"
)

// mockMemory is a flat little-endian byte slice starting at base.
type mockMemory struct {
	data []byte
	base uint64
}

func newMockMemory(base uint64, size int) *mockMemory {
	return &mockMemory{base: base, data: make([]byte, size)}
}

func (m *mockMemory) slice(addr, length uint64) ([]byte, error) {
	if addr < m.base || addr-m.base > uint64(len(m.data)) || length > uint64(len(m.data))-(addr-m.base) {
		return nil, errors.AddressOutOfRange(addr, length)
	}
	off := addr - m.base
	return m.data[off : off+length], nil
}

func (m *mockMemory) Read(addr, length uint64) ([]byte, error) { return m.slice(addr, length) }

func (m *mockMemory) ReadU8(addr uint64) (uint8, error) {
	b, err := m.slice(addr, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (m *mockMemory) ReadU16(addr uint64) (uint16, error) {
	b, err := m.slice(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (m *mockMemory) ReadU32(addr uint64) (uint32, error) {
	b, err := m.slice(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (m *mockMemory) ReadU64(addr uint64) (uint64, error) {
	b, err := m.slice(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (m *mockMemory) put8(addr uint64, v uint8) { m.data[addr-m.base] = v }
func (m *mockMemory) put16(addr uint64, v uint16) {
	binary.LittleEndian.PutUint16(m.data[addr-m.base:], v)
}
func (m *mockMemory) put32(addr uint64, v uint32) {
	binary.LittleEndian.PutUint32(m.data[addr-m.base:], v)
}
func (m *mockMemory) put64(addr uint64, v uint64) {
	binary.LittleEndian.PutUint64(m.data[addr-m.base:], v)
}

var (
	boolType  = &target.Type{Name: "bool", Kind: target.KindBool, Size: 1, Align: 1}
	int8T     = &target.Type{Name: "signed char", Kind: target.KindInt, Size: 1, Align: 1}
	u16Type   = &target.Type{Name: "unsigned short", Kind: target.KindUint, Size: 2, Align: 2}
	intType   = &target.Type{Name: "int", Kind: target.KindInt, Size: 4, Align: 4}
	ulongType = &target.Type{Name: "unsigned long", Kind: target.KindUint, Size: 8, Align: 8}
)

func field(name string, t *target.Type, off uint64) target.Field {
	return target.Field{Name: name, Type: t, Offset: off}
}

// structOf builds a struct from fields at explicit offsets, padding the size to
// the largest member alignment.
func structOf(name string, fields ...target.Field) *target.Type {
	var size, align uint64 = 0, 1
	for _, f := range fields {
		size = max(size, f.Offset+f.Type.Size)
		align = max(align, f.Type.Align)
	}
	size = (size + align - 1) / align * align
	return &target.Type{Name: name, Kind: target.KindStruct, Fields: fields, Size: size, Align: align}
}

func typeParam(t *target.Type) target.Param { return target.Param{Type: t, Text: t.Name} }

func constParam(n int64) target.Param {
	return target.Param{Const: true, Value: n, Text: strconv.FormatInt(n, 10)}
}

// staticVectorOf lays out ocudu::static_vector<elem, n> as {sz, array}.
func staticVectorOf(elem *target.Type, n uint64) *target.Type {
	arr := structOf("std::array<"+elem.Name+", "+strconv.FormatUint(n, 10)+">",
		field("_M_elems", target.ArrayOf(elem, n), 0))
	t := structOf("ocudu::static_vector<"+elem.Name+", "+strconv.FormatUint(n, 10)+">",
		field("sz", ulongType, 0),
		field("array", arr, 8))
	t.Params = []target.Param{typeParam(elem), constParam(int64(n))}
	return t
}

// stdOptionalTinyOf lays out a tiny_optional<elem> deriving from std::optional<elem>.
func stdOptionalTinyOf(elem *target.Type) *target.Type {
	storage := structOf("std::_Optional_payload_base<"+elem.Name+">::_Storage<"+elem.Name+", true>",
		field("_M_value", elem, 0))
	payload := structOf("std::_Optional_payload<"+elem.Name+", true, true, true>",
		field("_M_payload", storage, 0),
		field("_M_engaged", boolType, elem.Size))
	opt := structOf("std::optional<"+elem.Name+">", field("_M_payload", payload, 0))
	base := field(opt.Name, opt, 0)
	base.Embedded = true
	t := structOf("ocudu::tiny_optional<"+elem.Name+">", base)
	t.Params = []target.Param{typeParam(elem)}
	return t
}

var bf16Type = func() *target.Type {
	st := structOf("ocudu::strong_type<unsigned short, ocudu::strong_bf16_tag>", field("val", u16Type, 0))
	return &target.Type{Name: "ocudu::bf16_t", Kind: target.KindTypedef, Elem: st, Size: st.Size, Align: st.Align}
}()

// fakeHost resolves names from a map and formats integers and bf16 values.
type fakeHost struct {
	types map[string]*target.Type
}

func (h *fakeHost) LookupType(name string) (*target.Type, error) {
	if t, ok := h.types[name]; ok {
		return t, nil
	}
	return nil, errors.NotFound(errors.PhaseResolve, "type", name)
}

func (h *fakeHost) FormatValue(v *target.Value) string {
	st := v.Type().Strip()
	if strings.Contains(st.Name, "strong_bf16_tag") {
		s, err := NewBF16(v, h).Summary()
		if err != nil {
			return "<error: " + err.Error() + ">"
		}
		return s
	}
	switch st.Kind {
	case target.KindInt:
		n, err := v.Int()
		if err != nil {
			return "<error: " + err.Error() + ">"
		}
		return strconv.FormatInt(n, 10)
	case target.KindUint:
		n, err := v.Uint()
		if err != nil {
			return "<error: " + err.Error() + ">"
		}
		return strconv.FormatUint(n, 10)
	}
	return "?"
}

type rendered struct {
	label string
	value string
}

// collect drains a ChildPrinter, formatting every child through h.
func collect(t *testing.T, p Printer, h Host) []rendered {
	t.Helper()
	cp, ok := p.(ChildPrinter)
	if !ok {
		t.Fatalf("%T has no children", p)
	}
	var out []rendered
	for c, err := range cp.Children() {
		if err != nil {
			t.Fatalf("children: %v", err)
		}
		out = append(out, rendered{label: c.Label, value: h.FormatValue(c.Value)})
	}
	return out
}

func summary(t *testing.T, p Printer) string {
	t.Helper()
	s, err := p.Summary()
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	return s
}
