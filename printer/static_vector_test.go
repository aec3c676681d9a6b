package printer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wippyai/layoutview/target"
)

func newStaticVector(t *testing.T, length uint64, elems ...uint32) (*target.Value, *fakeHost) {
	t.Helper()
	typ := staticVectorOf(intType, 4)
	mem := newMockMemory(0x1000, int(typ.Size))
	mem.put64(0x1000, length)
	for i, e := range elems {
		mem.put32(0x1008+uint64(i)*4, e)
	}
	return target.New(mem, typ, 0x1000, "v"), &fakeHost{}
}

func TestStaticVector(t *testing.T) {
	v, h := newStaticVector(t, 2, 10, 20, 99, 99)
	p := NewStaticVector(v, h)

	if got, want := summary(t, p), "sequence of length 2, capacity 4"; got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
	if p.Hint() != HintSequence {
		t.Errorf("hint = %v, want sequence", p.Hint())
	}
	want := []rendered{{"[0]", "10"}, {"[1]", "20"}}
	if diff := cmp.Diff(want, collect(t, p, h), cmp.AllowUnexported(rendered{})); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestStaticVector_ChildCount(t *testing.T) {
	for length := uint64(0); length <= 4; length++ {
		v, h := newStaticVector(t, length, 1, 2, 3, 4)
		got := collect(t, NewStaticVector(v, h), h)
		if uint64(len(got)) != length {
			t.Fatalf("length %d: %d children", length, len(got))
		}
		for i, c := range got {
			if c.label != label(uint64(i)) {
				t.Errorf("length %d: child %d labelled %q", length, i, c.label)
			}
		}
	}
}

func TestStaticVector_CorruptLength(t *testing.T) {
	v, h := newStaticVector(t, 1000, 1, 2, 3, 4)
	p := NewStaticVector(v, h)

	if got, want := summary(t, p), "sequence of length 1000, capacity 4"; got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
	if got := collect(t, p, h); len(got) != 4 {
		t.Errorf("clamped children = %d, want 4", len(got))
	}
}

func TestStaticVector_EarlyStop(t *testing.T) {
	v, h := newStaticVector(t, 4, 1, 2, 3, 4)
	p := NewStaticVector(v, h).(ChildPrinter)

	n := 0
	for range p.Children() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("visited %d children, want 1", n)
	}
}

func TestStaticVector_MissingTemplateArgs(t *testing.T) {
	v, h := newStaticVector(t, 2, 1, 2)
	bare := *v.Type()
	bare.Params = nil
	p := NewStaticVector(target.New(v.Memory(), &bare, v.Address(), "v"), h)

	if _, err := p.Summary(); err == nil {
		t.Fatal("expected error without template arguments")
	}
	for _, err := range p.(ChildPrinter).Children() {
		if err == nil {
			t.Fatal("expected children to report the error")
		}
	}
}
