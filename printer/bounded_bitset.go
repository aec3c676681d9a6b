package printer

import (
	"fmt"
	"strings"

	"github.com/wippyai/layoutview/target"
)

const wordBits = 64

// FormatBits renders the low length bits of words, most significant bit first.
// Bit i lives in words[i/64] at bit position i%64. Words beyond the ones needed
// for length are ignored; if words is too short, length is cut to fit.
func FormatBits(words []uint64, length uint64) string {
	length = min(length, uint64(len(words))*wordBits)
	if length == 0 {
		return ""
	}
	n := (length + wordBits - 1) / wordBits

	var b strings.Builder
	b.Grow(int(n * wordBits))
	for i := n; i > 0; i-- {
		fmt.Fprintf(&b, "%064b", words[i-1])
	}
	s := b.String()
	if r := length % wordBits; r != 0 {
		s = s[wordBits-r:]
	}
	return s
}

// BoundedBitset prints ocudu::bounded_bitset<N>.
type BoundedBitset struct {
	val *target.Value
}

// NewBoundedBitset returns the printer for an ocudu::bounded_bitset.
func NewBoundedBitset(v *target.Value, _ Host) Printer {
	return &BoundedBitset{val: v}
}

func (p *BoundedBitset) Summary() (string, error) {
	capacity, err := capacityArg(p.val.Type(), 0)
	if err != nil {
		return "", err
	}
	cur, err := p.val.Field("cur_size")
	if err != nil {
		return "", err
	}
	length, err := cur.Uint()
	if err != nil {
		return "", err
	}
	buffer, err := p.val.Lookup("buffer", "_M_elems")
	if err != nil {
		return "", err
	}
	nwords, err := buffer.Len()
	if err != nil {
		return "", err
	}

	bits := clamp(p.val, "cur_size", length, capacity, nwords*wordBits)
	words := make([]uint64, (bits+wordBits-1)/wordBits)
	for i := range words {
		w, err := buffer.Index(uint64(i))
		if err != nil {
			return "", err
		}
		if words[i], err = w.Uint(); err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("bitset of length %d, capacity %d = %s", length, capacity, FormatBits(words, bits)), nil
}

func (p *BoundedBitset) Hint() Hint { return HintSequence }
