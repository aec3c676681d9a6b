package printer

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wippyai/layoutview/target"
)

func slottedArrayOf(elem *target.Type, n uint64) (*target.Type, *target.Type) {
	opt := stdOptionalTinyOf(elem)
	vec := staticVectorOf(opt, n)
	t := structOf("ocudu::slotted_array<int, 4, false>",
		field("vec", vec, 0),
		field("nof_elems", ulongType, vec.Size))
	t.Params = []target.Param{typeParam(elem), constParam(int64(n)), {Const: true, Text: "false"}}
	return t, opt
}

func TestSlottedArray(t *testing.T) {
	typ, opt := slottedArrayOf(intType, 4)
	mem := newMockMemory(0x4000, int(typ.Size))
	slot := func(i uint64) uint64 { return 0x4008 + i*opt.Size }

	mem.put64(0x4000, 4) // vec.sz
	mem.put32(slot(0), 5)
	mem.put32(slot(1), 10)
	mem.put8(slot(1)+4, 1)
	mem.put32(slot(3), 30)
	mem.put8(slot(3)+4, 1)
	mem.put64(0x4000+typ.Fields[1].Offset, 2)

	h := &fakeHost{types: map[string]*target.Type{opt.Name: opt}}
	p := NewSlottedArray(target.New(mem, typ, 0x4000, "sa"), h)

	if got, want := summary(t, p), "slot map of 2 elements, capacity 4"; got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
	if p.Hint() != HintAssociative {
		t.Errorf("hint = %v", p.Hint())
	}
	want := []rendered{{"[1]", "10"}, {"[3]", "30"}}
	if diff := cmp.Diff(want, collect(t, p, h), cmp.AllowUnexported(rendered{})); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}

	t.Run("type resolved from backing vector", func(t *testing.T) {
		p := NewSlottedArray(target.New(mem, typ, 0x4000, "sa"), &fakeHost{})
		if diff := cmp.Diff(want, collect(t, p, h), cmp.AllowUnexported(rendered{})); diff != "" {
			t.Errorf("children mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("corrupt vector size", func(t *testing.T) {
		mem.put64(0x4000, 1<<40)
		defer mem.put64(0x4000, 4)
		got := collect(t, p, h)
		if len(got) != 2 {
			t.Errorf("children = %v", got)
		}
	})
}

func stdVectorOf(elem *target.Type) *target.Type {
	ptr := elem.PointerTo()
	impl := structOf("std::_Vector_base<"+elem.Name+">::_Vector_impl",
		field("_M_start", ptr, 0),
		field("_M_finish", ptr, 8),
		field("_M_end_of_storage", ptr, 16))
	return structOf("std::vector<"+elem.Name+">", field("_M_impl", impl, 0))
}

func slottedVectorOf(elem *target.Type) *target.Type {
	t := structOf("ocudu::slotted_vector<int>",
		field("objects", stdVectorOf(elem), 0),
		field("index_mapper", stdVectorOf(ulongType), 24))
	t.Params = []target.Param{typeParam(elem)}
	return t
}

// stdVector32Of lays out a std::vector for a wasm32 target: three 4-byte pointers.
func stdVector32Of(elem *target.Type) *target.Type {
	ptr := target.PointerOf(elem, 4)
	impl := structOf("std::_Vector_base<"+elem.Name+">::_Vector_impl",
		field("_M_start", ptr, 0),
		field("_M_finish", ptr, 4),
		field("_M_end_of_storage", ptr, 8))
	return structOf("std::vector<"+elem.Name+">", field("_M_impl", impl, 0))
}

// putVector writes a std::vector header at addr whose storage is [start, start+n*size).
func putVector(m *mockMemory, addr, start, n, size uint64) {
	m.put64(addr, start)
	m.put64(addr+8, start+n*size)
	m.put64(addr+16, start+n*size)
}

func TestSlottedVector(t *testing.T) {
	typ := slottedVectorOf(intType)
	mem := newMockMemory(0x1000, 0x3000)

	putVector(mem, 0x1000, 0x2000, 2, 4)
	mem.put32(0x2000, 100)
	mem.put32(0x2004, 200)

	putVector(mem, 0x1018, 0x3000, 5, 8)
	mem.put64(0x3000, 1)
	mem.put64(0x3008, math.MaxUint64)
	mem.put64(0x3010, 0)
	mem.put64(0x3018, 7) // beyond objects
	mem.put64(0x3020, math.MaxUint64)

	h := &fakeHost{}
	p := NewSlottedVector(target.New(mem, typ, 0x1000, "sv"), h)

	if got, want := summary(t, p), "sparse collection of 2 elements"; got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
	if p.Hint() != HintAssociative {
		t.Errorf("hint = %v", p.Hint())
	}
	want := []rendered{{"[0]", "200"}, {"[2]", "100"}}
	if diff := cmp.Diff(want, collect(t, p, h), cmp.AllowUnexported(rendered{})); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestSlottedVector_Wasm32(t *testing.T) {
	uintType := &target.Type{Name: "unsigned int", Kind: target.KindUint, Size: 4, Align: 4}
	typ := structOf("ocudu::slotted_vector<int>",
		field("objects", stdVector32Of(intType), 0),
		field("index_mapper", stdVector32Of(uintType), 12))
	typ.Params = []target.Param{typeParam(intType)}

	mem := newMockMemory(0x1000, 0x3000)
	// objects: two ints at 0x2000, end of storage leaves room for four
	mem.put32(0x1000, 0x2000)
	mem.put32(0x1004, 0x2008)
	mem.put32(0x1008, 0x2010)
	mem.put32(0x2000, 100)
	mem.put32(0x2004, 200)
	// index_mapper: three 4-byte entries at 0x3000
	mem.put32(0x100c, 0x3000)
	mem.put32(0x1010, 0x300c)
	mem.put32(0x1014, 0x300c)
	mem.put32(0x3000, 1)
	mem.put32(0x3004, math.MaxUint32)
	mem.put32(0x3008, 0)

	h := &fakeHost{}
	p := NewSlottedVector(target.New(mem, typ, 0x1000, "sv"), h)
	if got, want := summary(t, p), "sparse collection of 2 elements"; got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
	want := []rendered{{"[0]", "200"}, {"[2]", "100"}}
	if diff := cmp.Diff(want, collect(t, p, h), cmp.AllowUnexported(rendered{})); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestSlottedVector_Empty(t *testing.T) {
	typ := slottedVectorOf(intType)
	mem := newMockMemory(0x1000, 48)

	h := &fakeHost{}
	p := NewSlottedVector(target.New(mem, typ, 0x1000, "sv"), h)
	if got, want := summary(t, p), "sparse collection of 0 elements"; got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
	if got := collect(t, p, h); len(got) != 0 {
		t.Errorf("children = %v", got)
	}
}

func TestSlottedVector_Inverted(t *testing.T) {
	typ := slottedVectorOf(intType)
	mem := newMockMemory(0x1000, 48)
	mem.put64(0x1000, 0x2010)
	mem.put64(0x1008, 0x2000)

	if _, err := NewSlottedVector(target.New(mem, typ, 0x1000, "sv"), &fakeHost{}).Summary(); err == nil {
		t.Error("expected error when _M_finish precedes _M_start")
	}
}
