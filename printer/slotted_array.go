package printer

import (
	"fmt"
	"iter"

	"github.com/wippyai/layoutview/target"
)

// SlottedArray prints ocudu::slotted_array<T, N>: N tiny_optional slots keyed by
// index, of which nof_elems are occupied.
type SlottedArray struct {
	val  *target.Value
	host Host
}

// NewSlottedArray returns the printer for an ocudu::slotted_array. Slot
// types are resolved through h.
func NewSlottedArray(v *target.Value, h Host) Printer {
	return &SlottedArray{val: v, host: h}
}

func (p *SlottedArray) header() (nofElems, capacity uint64, err error) {
	if capacity, err = capacityArg(p.val.Type(), 1); err != nil {
		return 0, 0, err
	}
	n, err := p.val.Field("nof_elems")
	if err != nil {
		return 0, 0, err
	}
	if nofElems, err = n.Uint(); err != nil {
		return 0, 0, err
	}
	return nofElems, capacity, nil
}

// slotType resolves tiny_optional<T> by name, falling back to the element type
// of the backing vector when the host does not know the name.
func (p *SlottedArray) slotType(vec *target.Value) (*target.Type, error) {
	elem, err := p.val.Type().TemplateType(0)
	if err != nil {
		return nil, err
	}
	opt, err := p.host.LookupType("ocudu::tiny_optional<" + elem.Name + ">")
	if err == nil {
		return opt, nil
	}
	if fallback, ferr := vec.Type().TemplateType(0); ferr == nil {
		return fallback, nil
	}
	return nil, err
}

func (p *SlottedArray) Summary() (string, error) {
	n, capacity, err := p.header()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("slot map of %d elements, capacity %d", n, capacity), nil
}

func (p *SlottedArray) Hint() Hint { return HintAssociative }

func (p *SlottedArray) Children() iter.Seq2[Child, error] {
	return func(yield func(Child, error) bool) {
		_, capacity, err := p.header()
		if err != nil {
			yield(Child{}, err)
			return
		}
		vec, err := p.val.Field("vec")
		if err != nil {
			yield(Child{}, err)
			return
		}
		slot, err := p.slotType(vec)
		if err != nil {
			yield(Child{}, err)
			return
		}
		sv, err := readStaticVector(vec, slot)
		if err != nil {
			yield(Child{}, err)
			return
		}
		sv.capacity = min(sv.capacity, capacity)

		n := sv.count(p.val)
		for i := uint64(0); i < n; i++ {
			opt, err := sv.elems.Index(i)
			if err != nil {
				yield(Child{}, err)
				return
			}
			present, err := HasValue(opt)
			if err != nil {
				yield(Child{}, err)
				return
			}
			if !present {
				continue
			}
			val, err := Payload(opt)
			if err != nil {
				yield(Child{}, err)
				return
			}
			if !yield(Child{Label: label(i), Value: val}, nil) {
				return
			}
		}
	}
}
