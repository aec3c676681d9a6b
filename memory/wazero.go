package memory

import (
	"math"

	"github.com/tetratelabs/wazero/api"

	layoutview "github.com/wippyai/layoutview"
	"github.com/wippyai/layoutview/errors"
)

// Wazero exposes a wazero guest's linear memory as target memory. Target address
// Base maps to linear memory offset 0.
type Wazero struct {
	mem  api.Memory
	Base uint64
}

// NewWazero wraps a guest memory with Base 0.
func NewWazero(mem api.Memory) *Wazero {
	return &Wazero{mem: mem}
}

func (w *Wazero) offset(addr, length uint64) (uint32, uint32, bool) {
	if w.mem == nil || addr < w.Base {
		return 0, 0, false
	}
	off := addr - w.Base
	if off > math.MaxUint32 || length > math.MaxUint32 {
		return 0, 0, false
	}
	return uint32(off), uint32(length), true
}

func (w *Wazero) Read(addr, length uint64) ([]byte, error) {
	off, n, ok := w.offset(addr, length)
	if !ok {
		return nil, errors.AddressOutOfRange(addr, length)
	}
	data, ok := w.mem.Read(off, n)
	if !ok {
		return nil, errors.AddressOutOfRange(addr, length)
	}
	return data, nil
}

func (w *Wazero) ReadU8(addr uint64) (uint8, error) {
	off, _, ok := w.offset(addr, 1)
	if ok {
		if v, ok := w.mem.ReadByte(off); ok {
			return v, nil
		}
	}
	return 0, errors.AddressOutOfRange(addr, 1)
}

func (w *Wazero) ReadU16(addr uint64) (uint16, error) {
	off, _, ok := w.offset(addr, 2)
	if ok {
		if v, ok := w.mem.ReadUint16Le(off); ok {
			return v, nil
		}
	}
	return 0, errors.AddressOutOfRange(addr, 2)
}

func (w *Wazero) ReadU32(addr uint64) (uint32, error) {
	off, _, ok := w.offset(addr, 4)
	if ok {
		if v, ok := w.mem.ReadUint32Le(off); ok {
			return v, nil
		}
	}
	return 0, errors.AddressOutOfRange(addr, 4)
}

func (w *Wazero) ReadU64(addr uint64) (uint64, error) {
	off, _, ok := w.offset(addr, 8)
	if ok {
		if v, ok := w.mem.ReadUint64Le(off); ok {
			return v, nil
		}
	}
	return 0, errors.AddressOutOfRange(addr, 8)
}

func (w *Wazero) Size() uint64 {
	if w.mem == nil {
		return 0
	}
	return uint64(w.mem.Size())
}

var _ layoutview.Memory = (*Wazero)(nil)
var _ layoutview.MemorySizer = (*Wazero)(nil)
