package printer

import (
	"fmt"
	"iter"

	"github.com/wippyai/layoutview/errors"
	"github.com/wippyai/layoutview/target"
	"go.uber.org/zap"
)

// MaxVectorElements bounds the length accepted for a std::vector whose begin and
// end pointers come from target memory.
const MaxVectorElements = 1 << 20

// stdVector is a libstdc++ std::vector read through _M_impl.
type stdVector struct {
	start *target.Value // _M_start, indexable as a pointer
	len   uint64        // raw length from the pointer difference
	limit uint64        // len bounded by MaxVectorElements
}

func readStdVector(v *target.Value) (stdVector, error) {
	start, err := v.Lookup("_M_impl", "_M_start")
	if err != nil {
		return stdVector{}, err
	}
	finish, err := v.Lookup("_M_impl", "_M_finish")
	if err != nil {
		return stdVector{}, err
	}
	elem := start.Type().Strip().Elem
	if elem == nil || elem.Size == 0 {
		return stdVector{}, errors.TypeMismatch(errors.PhaseDecode, []string{start.Expr()},
			start.Type().String(), "vector storage is not a pointer to a sized type")
	}
	s, err := start.Pointer()
	if err != nil {
		return stdVector{}, err
	}
	f, err := finish.Pointer()
	if err != nil {
		return stdVector{}, err
	}
	if f < s {
		return stdVector{}, errors.New(errors.PhaseDecode, errors.KindInvalidData).
			Path(v.Expr()).
			Type(v.Type().String()).
			Detail("_M_finish 0x%x precedes _M_start 0x%x", f, s).
			Build()
	}
	n := (f - s) / elem.Size
	return stdVector{start: start, len: n, limit: clamp(v, "_M_finish", n, MaxVectorElements, n)}, nil
}

func (s stdVector) at(i uint64) (*target.Value, error) {
	if i >= s.limit {
		return nil, errors.OutOfBounds(errors.PhaseDecode, []string{s.start.Expr()}, i, s.limit)
	}
	return s.start.Index(i)
}

// SlottedVector prints ocudu::slotted_vector<T>: dense objects addressed through
// an index mapper whose unused entries hold the all-ones sentinel.
type SlottedVector struct {
	val *target.Value
}

// NewSlottedVector returns the printer for an ocudu::slotted_vector.
func NewSlottedVector(v *target.Value, _ Host) Printer {
	return &SlottedVector{val: v}
}

func (p *SlottedVector) objects() (stdVector, error) {
	objects, err := p.val.Field("objects")
	if err != nil {
		return stdVector{}, err
	}
	return readStdVector(objects)
}

func (p *SlottedVector) Summary() (string, error) {
	objects, err := p.objects()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("sparse collection of %d elements", objects.len), nil
}

func (p *SlottedVector) Hint() Hint { return HintAssociative }

func (p *SlottedVector) Children() iter.Seq2[Child, error] {
	return func(yield func(Child, error) bool) {
		objects, err := p.objects()
		if err != nil {
			yield(Child{}, err)
			return
		}
		mapper, err := p.val.Field("index_mapper")
		if err != nil {
			yield(Child{}, err)
			return
		}
		index, err := readStdVector(mapper)
		if err != nil {
			yield(Child{}, err)
			return
		}
		sentinel := ^uint64(0)
		if size := index.start.Type().Strip().Elem.Size; size < 8 {
			sentinel = 1<<(8*size) - 1
		}

		for i := uint64(0); i < index.limit; i++ {
			e, err := index.at(i)
			if err != nil {
				yield(Child{}, err)
				return
			}
			entry, err := e.Uint()
			if err != nil {
				yield(Child{}, err)
				return
			}
			if entry == sentinel {
				continue
			}
			if entry >= objects.limit {
				Logger().Warn("index mapper entry outside objects",
					zap.String("expr", p.val.Expr()),
					zap.Uint64("index", i),
					zap.Uint64("entry", entry),
					zap.Uint64("objects", objects.len))
				continue
			}
			obj, err := objects.at(entry)
			if err != nil {
				yield(Child{}, err)
				return
			}
			if !yield(Child{Label: label(i), Value: obj}, nil) {
				return
			}
		}
	}
}
