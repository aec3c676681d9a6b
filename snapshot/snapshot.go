package snapshot

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	layoutview "github.com/wippyai/layoutview"
	"github.com/wippyai/layoutview/errors"
	"github.com/wippyai/layoutview/memory"
	"github.com/wippyai/layoutview/target"
	"github.com/wippyai/layoutview/typetable"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Symbol is a named object in the snapshot.
type Symbol struct {
	Type    *target.Type
	Name    string
	Address uint64
}

// Snapshot is a loaded manifest: resolved types, symbols and memory.
type Snapshot struct {
	Types   *typetable.Table
	Memory  layoutview.Memory
	Symbols []Symbol
	index   map[string]int
}

// Load reads the manifest at path.
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read manifest "+path, err)
	}
	return Parse(data, filepath.Dir(path))
}

// Parse decodes a manifest. Region files are resolved relative to dir.
// Unknown keys are rejected.
func Parse(data []byte, dir string) (*Snapshot, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && err != io.EOF {
		return nil, errors.Load("parse manifest", err)
	}
	return Build(&m, dir)
}

// Build resolves a decoded manifest.
func Build(m *Manifest, dir string) (*Snapshot, error) {
	ptrSize := m.PointerSize
	if ptrSize == 0 {
		ptrSize = target.PointerSize
	}
	table, err := typetable.NewForPointerSize(ptrSize)
	if err != nil {
		return nil, errors.Load("pointer_size", err)
	}
	if m.WIT != "" {
		path := m.WIT
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		if err := importWIT(table, path); err != nil {
			return nil, err
		}
	}
	if err := loadTypes(table, m.Types); err != nil {
		return nil, err
	}

	regions := memory.NewRegions()
	for i, r := range m.Regions {
		data, err := regionData(r, dir)
		if err != nil {
			return nil, err
		}
		if err := regions.Add(memory.NewBuffer(r.Address, data)); err != nil {
			return nil, errors.Load("region "+strconv.Itoa(i), err)
		}
	}

	s := &Snapshot{
		Types:  table,
		Memory: regions,
		index:  make(map[string]int, len(m.Symbols)),
	}
	for _, sym := range m.Symbols {
		if sym.Name == "" {
			return nil, errors.Load("symbol without a name", nil)
		}
		if _, dup := s.index[sym.Name]; dup {
			return nil, errors.Load("symbol "+sym.Name+" declared twice", nil)
		}
		typ, err := table.LookupType(sym.Type)
		if err != nil {
			return nil, errors.Load("symbol "+sym.Name, err)
		}
		if _, err := regions.Read(sym.Address, typ.Size); err != nil {
			Logger().Warn("symbol not backed by a region",
				zap.String("symbol", sym.Name),
				zap.Uint64("address", sym.Address),
				zap.Uint64("size", typ.Size))
		}
		s.index[sym.Name] = len(s.Symbols)
		s.Symbols = append(s.Symbols, Symbol{Name: sym.Name, Type: typ, Address: sym.Address})
	}

	Logger().Debug("snapshot loaded",
		zap.Int("types", len(m.Types)),
		zap.Int("symbols", len(s.Symbols)),
		zap.Uint64("bytes", regions.Size()))
	return s, nil
}

func regionData(r RegionSpec, dir string) ([]byte, error) {
	where := "region at 0x" + strconv.FormatUint(r.Address, 16)
	switch {
	case r.Hex != "" && r.File != "":
		return nil, errors.Load(where+" has both hex and file", nil)
	case r.Hex != "":
		data, err := hex.DecodeString(strings.Join(strings.Fields(r.Hex), ""))
		if err != nil {
			return nil, errors.Load(where, err)
		}
		return data, nil
	case r.File != "":
		path := r.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Load(where, err)
		}
		if r.Offset > uint64(len(data)) {
			return nil, errors.Load(where+": offset beyond end of "+r.File, nil)
		}
		data = data[r.Offset:]
		if r.Length != nil {
			if *r.Length > uint64(len(data)) {
				return nil, errors.Load(where+": length beyond end of "+r.File, nil)
			}
			data = data[:*r.Length]
		}
		return data, nil
	}
	return nil, errors.Load(where+" has neither hex nor file", nil)
}

// Symbol returns the named symbol as a value.
func (s *Snapshot) Symbol(name string) (*target.Value, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, errors.NotFound(errors.PhaseLoad, "symbol", name)
	}
	return s.Value(s.Symbols[i]), nil
}

// Value returns sym as a value over the snapshot's memory.
func (s *Snapshot) Value(sym Symbol) *target.Value {
	return target.New(s.Memory, sym.Type, sym.Address, sym.Name)
}

// WithMemory returns a copy of s reading from mem, e.g. a live guest's memory.
func (s *Snapshot) WithMemory(mem layoutview.Memory) *Snapshot {
	c := *s
	c.Memory = mem
	return &c
}
