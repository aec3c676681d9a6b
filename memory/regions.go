package memory

import (
	"encoding/binary"
	"sort"

	layoutview "github.com/wippyai/layoutview"
	"github.com/wippyai/layoutview/errors"
)

// Regions maps several non-overlapping buffers. A read must fall entirely inside
// one region.
type Regions struct {
	regions []*Buffer
}

// NewRegions returns an empty region set.
func NewRegions() *Regions {
	return &Regions{}
}

// Add maps b, rejecting empty buffers and overlaps with existing regions.
func (r *Regions) Add(b *Buffer) error {
	if len(b.Data) == 0 {
		return errors.InvalidInput(errors.PhaseMemory, "empty region")
	}
	for _, existing := range r.regions {
		if b.Base < existing.End() && existing.Base < b.End() {
			return errors.Overlap(b.Base, b.End(), existing.Base, existing.End())
		}
	}
	r.regions = append(r.regions, b)
	sort.Slice(r.regions, func(i, j int) bool { return r.regions[i].Base < r.regions[j].Base })
	return nil
}

// Regions returns the mapped buffers in address order.
func (r *Regions) Regions() []*Buffer {
	return r.regions
}

func (r *Regions) find(addr, length uint64) *Buffer {
	i := sort.Search(len(r.regions), func(i int) bool { return r.regions[i].End() > addr })
	if i < len(r.regions) && r.regions[i].Contains(addr, length) {
		return r.regions[i]
	}
	return nil
}

// Size is the total number of mapped bytes.
func (r *Regions) Size() uint64 {
	var n uint64
	for _, b := range r.regions {
		n += b.Size()
	}
	return n
}

func (r *Regions) Read(addr, length uint64) ([]byte, error) {
	b := r.find(addr, length)
	if b == nil {
		return nil, errors.AddressOutOfRange(addr, length)
	}
	return b.Read(addr, length)
}

func (r *Regions) ReadU8(addr uint64) (uint8, error) {
	data, err := r.Read(addr, 1)
	if err != nil {
		return 0, err
	}
	return data[0], nil
}

func (r *Regions) ReadU16(addr uint64) (uint16, error) {
	data, err := r.Read(addr, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

func (r *Regions) ReadU32(addr uint64) (uint32, error) {
	data, err := r.Read(addr, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

func (r *Regions) ReadU64(addr uint64) (uint64, error) {
	data, err := r.Read(addr, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(data), nil
}

var _ layoutview.Memory = (*Regions)(nil)
var _ layoutview.MemorySizer = (*Regions)(nil)
