package printer

import (
	"iter"
	"strconv"

	"github.com/wippyai/layoutview/errors"
	"github.com/wippyai/layoutview/target"
	"go.uber.org/zap"
)

// Hint tells the host how to lay out a printer's children.
type Hint uint8

const (
	HintScalar Hint = iota
	HintSequence
	HintAssociative
)

// String returns the gdb display_hint spelling. Scalars have none.
func (h Hint) String() string {
	switch h {
	case HintSequence:
		return "array"
	case HintAssociative:
		return "map"
	}
	return "scalar"
}

// Child is one element produced by a ChildPrinter. Labels are "[i]"; for
// associative printers i is the logical key.
type Child struct {
	Value *target.Value
	Label string
}

// Printer renders one target value.
type Printer interface {
	Summary() (string, error)
	Hint() Hint
}

// ChildPrinter is a Printer with children. The sequence reads target memory as it
// is consumed and stops after yielding the first error.
type ChildPrinter interface {
	Printer
	Children() iter.Seq2[Child, error]
}

// Host is what printers need from the environment rendering them.
type Host interface {
	target.TypeResolver
	// FormatValue renders v as a single line, using a matching printer if any.
	FormatValue(v *target.Value) string
}

// Constructor wraps a value in a printer. It must not read memory; reads happen
// when the host asks for the summary or children.
type Constructor func(v *target.Value, h Host) Printer

// Setup names a printer and the type-name pattern it is registered under.
type Setup struct {
	New     Constructor
	Name    string
	Pattern string
}

// Setups returns the built-in printers in registration order.
func Setups() []Setup {
	return []Setup{
		{Name: "static vector", Pattern: `^ocudu::static_vector<.*>$`, New: NewStaticVector},
		{Name: "bounded bitset", Pattern: `^ocudu::bounded_bitset<.*>$`, New: NewBoundedBitset},
		{Name: "tiny optional", Pattern: `^ocudu::tiny_optional<.*>$`, New: NewTinyOptional},
		{Name: "slotted array", Pattern: `^ocudu::slotted_array<.*>$`, New: NewSlottedArray},
		{Name: "slotted vector", Pattern: `^ocudu::slotted_vector<.*>$`, New: NewSlottedVector},
		{Name: "bf16", Pattern: `ocudu::strong_bf16_tag`, New: NewBF16},
		{Name: "complex bf16", Pattern: `^ocudu::cbf16_t$`, New: NewCBF16},
		{Name: "strong type", Pattern: `^ocudu::strong_type<.*>$`, New: NewStrongType},
		{Name: "llr", Pattern: `ocudu::log_likelihood_ratio`, New: NewLLR},
	}
}

func label(i uint64) string {
	return "[" + strconv.FormatUint(i, 10) + "]"
}

// clamp bounds a count read from the target by the static capacity and the
// elements actually backed by storage.
func clamp(v *target.Value, what string, n, capacity, storage uint64) uint64 {
	limit := min(capacity, storage)
	if n <= limit {
		return n
	}
	Logger().Warn("clamping corrupt count",
		zap.String("expr", v.Expr()),
		zap.String("type", v.Type().String()),
		zap.String("field", what),
		zap.Uint64("count", n),
		zap.Uint64("capacity", capacity),
		zap.Uint64("storage", storage))
	return limit
}

// capacityArg reads a non-negative integral template argument.
func capacityArg(t *target.Type, i int) (uint64, error) {
	c, err := t.TemplateValue(i)
	if err != nil {
		return 0, err
	}
	if c < 0 {
		return 0, invalidCapacity(t, c)
	}
	return uint64(c), nil
}

func invalidCapacity(t *target.Type, c int64) error {
	return errors.New(errors.PhaseDecode, errors.KindInvalidData).
		Type(t.Name).
		Value(c).
		Detail("negative capacity").
		Build()
}
