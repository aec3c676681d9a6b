package registry

import (
	"testing"

	"github.com/wippyai/layoutview/errors"
	"github.com/wippyai/layoutview/printer"
	"github.com/wippyai/layoutview/target"
)

type stubPrinter struct{ name string }

func (p *stubPrinter) Summary() (string, error) { return p.name, nil }
func (p *stubPrinter) Hint() printer.Hint       { return printer.HintScalar }

func stub(name string) printer.Constructor {
	return func(*target.Value, printer.Host) printer.Printer { return &stubPrinter{name: name} }
}

func TestRegister_Rejects(t *testing.T) {
	r := New()
	if err := r.Register("vec", `^ocudu::static_vector<.*>$`, stub("vec")); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		entry   string
		pattern string
		ctor    printer.Constructor
	}{
		{"empty name", "", `x`, stub("x")},
		{"duplicate name", "vec", `y`, stub("y")},
		{"nil constructor", "nil", `z`, nil},
		{"invalid pattern", "bad", `ocudu::(`, stub("bad")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := r.Register(tt.entry, tt.pattern, tt.ctor)
			if !errors.IsKind(err, errors.PhaseRegister, errors.KindRegistration) {
				t.Errorf("err = %v, want registration error", err)
			}
		})
	}
	if r.Len() != 1 {
		t.Errorf("Len = %d after rejected registrations", r.Len())
	}
}

func TestRegister_Sealed(t *testing.T) {
	r := New()
	r.Seal()
	if err := r.Register("llr", `llr`, stub("llr")); err == nil {
		t.Error("sealed registry accepted a registration")
	}
}

func TestLookup(t *testing.T) {
	r := New()
	for _, e := range []struct{ name, pattern string }{
		{"bf16", `ocudu::strong_bf16_tag`},
		{"strong type", `^ocudu::strong_type<.*>$`},
		{"llr", `ocudu::log_likelihood_ratio`},
	} {
		if err := r.Register(e.name, e.pattern, stub(e.name)); err != nil {
			t.Fatal(err)
		}
	}

	strong := &target.Type{Name: "ocudu::strong_type<unsigned short, ocudu::strong_bf16_tag>", Kind: target.KindStruct, Size: 2}
	llr := &target.Type{Name: "ocudu::log_likelihood_ratio", Kind: target.KindStruct, Size: 1, Align: 1}
	llrArray := target.ArrayOf(llr, 4)
	tests := []struct {
		name string
		typ  *target.Type
		want string
	}{
		{"overlap resolved by order", strong, "bf16"},
		{"plain strong type", &target.Type{Name: "ocudu::strong_type<int, ocudu::pci_tag>", Kind: target.KindStruct, Size: 4}, "strong type"},
		{"typedef stripped", &target.Type{Name: "ocudu::bf16_t", Kind: target.KindTypedef, Elem: strong, Size: 2}, "bf16"},
		{"unanchored", &target.Type{Name: "const ocudu::log_likelihood_ratio", Kind: target.KindStruct, Size: 1}, "llr"},
		{"no match", &target.Type{Name: "int", Kind: target.KindInt, Size: 4}, ""},
		{"array of matching type", llrArray, ""},
		{"pointer to matching type", llr.PointerTo(), ""},
		{"array of bf16", target.ArrayOf(strong, 2), ""},
		{"typedef of array", &target.Type{Name: "llr_block", Kind: target.KindTypedef, Elem: llrArray, Size: 4}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, e := r.Lookup(target.New(nil, tt.typ, 0, "v"), nil)
			if tt.want == "" {
				if p != nil || e != nil {
					t.Errorf("expected no match, got %v", e)
				}
				return
			}
			if e == nil || e.Name != tt.want {
				t.Fatalf("entry = %v, want %s", e, tt.want)
			}
			if s, _ := p.Summary(); s != tt.want {
				t.Errorf("printer built by %q", s)
			}
		})
	}
}

func TestEntries(t *testing.T) {
	r := New()
	names := []string{"a", "b", "c"}
	for _, n := range names {
		if err := r.Register(n, n, stub(n)); err != nil {
			t.Fatal(err)
		}
	}
	for i, e := range r.Entries() {
		if e.Name != names[i] {
			t.Errorf("entry %d = %s, want %s", i, e.Name, names[i])
		}
	}
	if e, ok := r.Get("b"); !ok || e.Pattern != "b" {
		t.Errorf("Get(b) = %v, %v", e, ok)
	}
	if _, ok := r.Get("z"); ok {
		t.Error("Get(z) found an entry")
	}
}
