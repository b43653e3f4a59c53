// flags.go - the N/Z/P condition codes.

package lc3

// Flags tracks exactly one of the three condition codes at a time.
// Zero value is "no flag set yet"; Set must be called at least once
// before any predicate is meaningful, which VM construction guarantees
// by initializing to Z per convention.
type Flags struct {
	negative bool
	zero     bool
	positive bool
}

func (f *Flags) IsNegative() bool { return f.negative }
func (f *Flags) IsZero() bool     { return f.zero }
func (f *Flags) IsPositive() bool { return f.positive }

// Set selects exactly one of N/Z/P by interpreting value as signed
// 16-bit two's-complement.
func (f *Flags) Set(value uint16) {
	signed := int16(value)
	f.negative = signed < 0
	f.zero = signed == 0
	f.positive = signed > 0
}
