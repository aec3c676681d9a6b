package printer

import (
	"fmt"
	"iter"

	"github.com/wippyai/layoutview/target"
)

// staticVector is the decoded header of an ocudu::static_vector.
type staticVector struct {
	elems    *target.Value // inline storage viewed as an array of the element type
	length   uint64        // raw sz, possibly corrupt
	capacity uint64
}

// count is the number of elements safe to index.
func (s staticVector) count(v *target.Value) uint64 {
	return clamp(v, "sz", s.length, s.capacity, s.elems.Type().Len)
}

// readStaticVector decodes v as a static_vector whose elements have type elem.
func readStaticVector(v *target.Value, elem *target.Type) (staticVector, error) {
	capacity, err := capacityArg(v.Type(), 1)
	if err != nil {
		return staticVector{}, err
	}
	sz, err := v.Field("sz")
	if err != nil {
		return staticVector{}, err
	}
	length, err := sz.Uint()
	if err != nil {
		return staticVector{}, err
	}
	storage, err := v.Lookup("array", "_M_elems")
	if err != nil {
		return staticVector{}, err
	}
	elems, err := storage.Elements(elem)
	if err != nil {
		return staticVector{}, err
	}
	return staticVector{elems: elems, length: length, capacity: capacity}, nil
}

// StaticVector prints ocudu::static_vector<T, N>: a length and N inline slots.
type StaticVector struct {
	val *target.Value
	sv  staticVector
	err error
	ok  bool
}

// NewStaticVector returns the printer for an ocudu::static_vector.
func NewStaticVector(v *target.Value, _ Host) Printer {
	return &StaticVector{val: v}
}

func (p *StaticVector) load() error {
	if p.ok || p.err != nil {
		return p.err
	}
	elem, err := p.val.Type().TemplateType(0)
	if err != nil {
		p.err = err
		return err
	}
	p.sv, p.err = readStaticVector(p.val, elem)
	p.ok = p.err == nil
	return p.err
}

func (p *StaticVector) Summary() (string, error) {
	if err := p.load(); err != nil {
		return "", err
	}
	return fmt.Sprintf("sequence of length %d, capacity %d", p.sv.length, p.sv.capacity), nil
}

func (p *StaticVector) Hint() Hint { return HintSequence }

func (p *StaticVector) Children() iter.Seq2[Child, error] {
	return func(yield func(Child, error) bool) {
		if err := p.load(); err != nil {
			yield(Child{}, err)
			return
		}
		n := p.sv.count(p.val)
		for i := uint64(0); i < n; i++ {
			elem, err := p.sv.elems.Index(i)
			if err != nil {
				yield(Child{}, err)
				return
			}
			if !yield(Child{Label: label(i), Value: elem}, nil) {
				return
			}
		}
	}
}
