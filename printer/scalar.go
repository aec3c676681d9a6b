package printer

import (
	"math"
	"strconv"
	"strings"

	"github.com/wippyai/layoutview/errors"
	"github.com/wippyai/layoutview/target"
)

// DecodeBF16 widens a bfloat16 bit pattern to float32. The conversion is exact.
func DecodeBF16(bits uint16) float32 {
	return math.Float32frombits(uint32(bits) << 16)
}

// formatFloat renders f like Python's repr: shortest round-trip digits, always
// with a fraction or exponent, and nan/inf spelled out.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case f == 0:
		if math.Signbit(f) {
			return "-0.0"
		}
		return "0.0"
	}
	e := strconv.FormatFloat(f, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.IndexByte(e, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return e
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// BF16 prints ocudu::bf16_t, a strong_type over uint16_t tagged strong_bf16_tag.
type BF16 struct {
	val *target.Value
}

// NewBF16 returns the printer for a bf16 strong type.
func NewBF16(v *target.Value, _ Host) Printer {
	return &BF16{val: v}
}

func (p *BF16) Summary() (string, error) {
	raw, err := p.val.Field("val")
	if err != nil {
		return "", err
	}
	if size := raw.Type().Strip().Size; size != 2 {
		return "", errors.TypeMismatch(errors.PhaseDecode, []string{raw.Expr()}, raw.Type().String(),
			"bf16 storage must be 2 bytes, got "+strconv.FormatUint(size, 10))
	}
	bits, err := raw.Uint()
	if err != nil {
		return "", err
	}
	return formatFloat(float64(DecodeBF16(uint16(bits)))), nil
}

func (p *BF16) Hint() Hint { return HintScalar }

// CBF16 prints ocudu::cbf16_t as "<real> + <imag>i".
type CBF16 struct {
	val  *target.Value
	host Host
}

// NewCBF16 returns the printer for a complex bf16 pair.
func NewCBF16(v *target.Value, h Host) Printer {
	return &CBF16{val: v, host: h}
}

func (p *CBF16) Summary() (string, error) {
	re, err := p.val.Field("real")
	if err != nil {
		return "", err
	}
	im, err := p.val.Field("imag")
	if err != nil {
		return "", err
	}
	return p.host.FormatValue(re) + " + " + p.host.FormatValue(im) + "i", nil
}

func (p *CBF16) Hint() Hint { return HintScalar }

// StrongType prints ocudu::strong_type<T, Tag> as "{val = <T>}".
type StrongType struct {
	val  *target.Value
	host Host
}

// NewStrongType returns the printer for an ocudu::strong_type wrapper.
func NewStrongType(v *target.Value, h Host) Printer {
	return &StrongType{val: v, host: h}
}

func (p *StrongType) Summary() (string, error) {
	val, err := p.val.Field("val")
	if err != nil {
		return "", err
	}
	return "{val = " + p.host.FormatValue(val) + "}", nil
}

func (p *StrongType) Hint() Hint { return HintScalar }

var int8Type = &target.Type{Name: "int8_t", Kind: target.KindInt, Size: 1, Align: 1}

// LLR prints ocudu::log_likelihood_ratio, whose single byte is a signed value.
type LLR struct {
	val *target.Value
}

// NewLLR returns the printer for a log-likelihood ratio.
func NewLLR(v *target.Value, _ Host) Printer {
	return &LLR{val: v}
}

func (p *LLR) Summary() (string, error) {
	if p.val.Type().Strip().Size < 1 {
		return "", errors.TypeMismatch(errors.PhaseDecode, []string{p.val.Expr()}, p.val.Type().String(),
			"empty log_likelihood_ratio")
	}
	n, err := p.val.Cast(int8Type).Int()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n, 10), nil
}

func (p *LLR) Hint() Hint { return HintScalar }
