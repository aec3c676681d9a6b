package printer

import (
	"iter"
	"strings"

	"github.com/wippyai/layoutview/errors"
	"github.com/wippyai/layoutview/target"
)

// tiny_optional<T> has three encodings:
//   - a std::optional<T> base: presence is _M_payload._M_engaged
//   - a std::unique_ptr<T> in val: presence is a non-null pointer
//   - a sentinel value of T in val: not decoded, always reported present

func stdOptionalBased(v *target.Value) (bool, error) {
	st := v.Type().Strip()
	if st == nil || len(st.Fields) == 0 {
		return false, errors.InvalidData(errors.PhaseDecode, []string{v.Expr()}, "tiny_optional has no fields")
	}
	first := st.Fields[0].Type
	return strings.HasPrefix(first.Strip().Name, "std::optional<"), nil
}

// HasValue reports whether the tiny_optional v holds a value.
func HasValue(v *target.Value) (bool, error) {
	std, err := stdOptionalBased(v)
	if err != nil {
		return false, err
	}
	if std {
		engaged, err := v.Lookup("_M_payload", "_M_engaged")
		if err != nil {
			return false, err
		}
		return engaged.Bool()
	}
	val, err := v.Field("val")
	if err != nil {
		return false, err
	}
	if strings.Contains(val.Type().Name, "std::unique_ptr<") {
		p, err := val.Pointer()
		if err != nil {
			return false, err
		}
		return p != 0, nil
	}
	// Sentinel encoding: not decoded.
	return true, nil
}

// Payload returns the stored value of v. It is only meaningful when HasValue is true.
func Payload(v *target.Value) (*target.Value, error) {
	std, err := stdOptionalBased(v)
	if err != nil {
		return nil, err
	}
	if std {
		return v.Lookup("_M_payload", "_M_payload", "_M_value")
	}
	return v.Field("val")
}

// TinyOptional prints ocudu::tiny_optional<T> as a sequence of zero or one values.
type TinyOptional struct {
	val     *target.Value
	err     error
	present bool
	loaded  bool
}

// NewTinyOptional returns the printer for an ocudu::tiny_optional.
func NewTinyOptional(v *target.Value, _ Host) Printer {
	return &TinyOptional{val: v}
}

func (p *TinyOptional) load() error {
	if !p.loaded {
		p.present, p.err = HasValue(p.val)
		p.loaded = true
	}
	return p.err
}

func (p *TinyOptional) Summary() (string, error) {
	if err := p.load(); err != nil {
		return "", err
	}
	if p.present {
		return "optional (present)", nil
	}
	return "optional (empty)", nil
}

func (p *TinyOptional) Hint() Hint { return HintSequence }

func (p *TinyOptional) Children() iter.Seq2[Child, error] {
	return func(yield func(Child, error) bool) {
		if err := p.load(); err != nil {
			yield(Child{}, err)
			return
		}
		if !p.present {
			return
		}
		val, err := Payload(p.val)
		if err != nil {
			yield(Child{}, err)
			return
		}
		yield(Child{Label: label(0), Value: val}, nil)
	}
}
