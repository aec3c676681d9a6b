package layoutview

// Memory is read-only access to the inspected process's address space.
// Multi-byte reads are little-endian.
type Memory interface {
	Read(addr uint64, length uint64) ([]byte, error)
	ReadU8(addr uint64) (uint8, error)
	ReadU16(addr uint64) (uint16, error)
	ReadU32(addr uint64) (uint32, error)
	ReadU64(addr uint64) (uint64, error)
}

// MemorySizer reports the number of addressable bytes behind a Memory.
type MemorySizer interface {
	Size() uint64
}
