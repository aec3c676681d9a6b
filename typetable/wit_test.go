package typetable

import (
	"testing"

	"github.com/wippyai/layoutview/internal/layout"
	"github.com/wippyai/layoutview/target"
	"go.bytecodealliance.org/wit"
)

func TestImportWIT_MatchesCanonicalLayout(t *testing.T) {
	point := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
		{Name: "x", Type: wit.S32{}},
		{Name: "y", Type: wit.S32{}},
	}}}

	tests := []struct {
		name string
		typ  wit.Type
	}{
		{"record", &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
			{Name: "flag", Type: wit.Bool{}},
			{Name: "id", Type: wit.U64{}},
			{Name: "name", Type: wit.String{}},
			{Name: "at", Type: point},
		}}}},
		{"tuple", &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U8{}, wit.F64{}, wit.U16{}}}}},
		{"option", &wit.TypeDef{Kind: &wit.Option{Type: wit.U32{}}}},
		{"list", &wit.TypeDef{Kind: &wit.List{Type: point}}},
		{"enum", &wit.TypeDef{Kind: &wit.Enum{Cases: []wit.EnumCase{{Name: "a"}, {Name: "b"}}}}},
		{"flags", &wit.TypeDef{Kind: &wit.Flags{Flags: []wit.Flag{{Name: "a"}, {Name: "b"}}}}},
		{"variant", &wit.TypeDef{Kind: &wit.Variant{Cases: []wit.Case{
			{Name: "a", Type: wit.U32{}},
			{Name: "b", Type: wit.String{}},
			{Name: "c"},
		}}}},
		{"primitive", wit.F32{}},
	}

	calc := layout.NewCalculator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := New()
			typ, err := tab.ImportWIT("guest::"+tt.name, tt.typ)
			if err != nil {
				t.Fatal(err)
			}
			want := calc.Calculate(tt.typ)
			if typ.Size != want.Size || typ.Align != want.Align {
				t.Errorf("size/align = %d/%d, want %d/%d", typ.Size, typ.Align, want.Size, want.Align)
			}
			if _, err := tab.LookupType("guest::" + tt.name); err != nil {
				t.Errorf("not registered: %v", err)
			}
		})
	}
}

func TestImportWIT_Fields(t *testing.T) {
	tab := New()
	typ, err := tab.ImportWIT("guest::entry", &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
		{Name: "key", Type: wit.String{}},
		{Name: "value", Type: &wit.TypeDef{Kind: &wit.Option{Type: wit.U64{}}}},
	}}})
	if err != nil {
		t.Fatal(err)
	}

	key, ok := typ.FieldByName("key")
	if !ok || key.Offset != 0 || key.Type.Size != 8 {
		t.Fatalf("key = %+v", key)
	}
	value, ok := typ.FieldByName("value")
	if !ok || value.Offset != 8 {
		t.Fatalf("value = %+v", value)
	}
	if value.Type.Name != "guest::entry.value" {
		t.Errorf("nested name = %q", value.Type.Name)
	}
	val, ok := value.Type.FieldByName("val")
	if !ok || val.Offset != 8 || val.Type.Strip().Kind != target.KindUint {
		t.Errorf("option payload = %+v", val)
	}
}

func TestImportWIT_NamedTypeDef(t *testing.T) {
	name := "point"
	td := &wit.TypeDef{Name: &name, Kind: &wit.Record{Fields: []wit.Field{{Name: "x", Type: wit.S32{}}}}}

	tab := New()
	typ, err := tab.ImportWIT("geo::point", td)
	if err != nil {
		t.Fatal(err)
	}
	if typ.Kind != target.KindTypedef || typ.Elem.Name != "point" {
		t.Errorf("got %s (%v)", typ, typ.Kind)
	}
}
