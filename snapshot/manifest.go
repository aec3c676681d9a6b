package snapshot

// Manifest is the YAML description of a snapshot.
type Manifest struct {
	WIT         string       `yaml:"wit,omitempty"` // wasm-tools JSON resolve to import types from
	Types       []TypeSpec   `yaml:"types"`
	Symbols     []SymbolSpec `yaml:"symbols"`
	Regions     []RegionSpec `yaml:"regions"`
	PointerSize uint64       `yaml:"pointer_size,omitempty"` // 4 for wasm32 images, 8 by default
}

// TypeSpec declares a struct, or a typedef when Typedef is set.
type TypeSpec struct {
	Name    string      `yaml:"name"`
	Typedef string      `yaml:"typedef,omitempty"`
	Fields  []FieldSpec `yaml:"fields,omitempty"`
	Size    uint64      `yaml:"size,omitempty"`
}

type FieldSpec struct {
	Offset *uint64 `yaml:"offset,omitempty"`
	Name   string  `yaml:"name"`
	Type   string  `yaml:"type"`
	Base   bool    `yaml:"base,omitempty"` // base class subobject
}

type SymbolSpec struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Address uint64 `yaml:"address"`
}

// RegionSpec is a block of memory given inline as hex or read from a file.
type RegionSpec struct {
	Length  *uint64 `yaml:"length,omitempty"`
	Hex     string  `yaml:"hex,omitempty"`
	File    string  `yaml:"file,omitempty"`
	Address uint64  `yaml:"address"`
	Offset  uint64  `yaml:"offset,omitempty"`
}
