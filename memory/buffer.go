package memory

import (
	"encoding/binary"

	layoutview "github.com/wippyai/layoutview"
	"github.com/wippyai/layoutview/errors"
)

// Buffer is a single contiguous region of target memory.
type Buffer struct {
	Data []byte
	Base uint64
}

// NewBuffer maps data at base.
func NewBuffer(base uint64, data []byte) *Buffer {
	return &Buffer{Base: base, Data: data}
}

// Contains reports whether [addr, addr+length) lies inside the buffer.
func (b *Buffer) Contains(addr, length uint64) bool {
	if addr < b.Base {
		return false
	}
	off := addr - b.Base
	size := uint64(len(b.Data))
	return off <= size && length <= size-off
}

// End returns the address one past the last byte.
func (b *Buffer) End() uint64 {
	return b.Base + uint64(len(b.Data))
}

func (b *Buffer) Size() uint64 {
	return uint64(len(b.Data))
}

func (b *Buffer) Read(addr, length uint64) ([]byte, error) {
	if !b.Contains(addr, length) {
		return nil, errors.AddressOutOfRange(addr, length)
	}
	off := addr - b.Base
	return b.Data[off : off+length], nil
}

func (b *Buffer) ReadU8(addr uint64) (uint8, error) {
	data, err := b.Read(addr, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

func (b *Buffer) ReadU16(addr uint64) (uint16, error) {
	data, err := b.Read(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

func (b *Buffer) ReadU32(addr uint64) (uint32, error) {
	data, err := b.Read(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

func (b *Buffer) ReadU64(addr uint64) (uint64, error) {
	data, err := b.Read(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

var _ layoutview.Memory = (*Buffer)(nil)
var _ layoutview.MemorySizer = (*Buffer)(nil)
