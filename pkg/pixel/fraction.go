package pixel

import (
	"fmt"
	"strconv"
	"strings"
)

// Fraction is a rational number of seconds per frame. A frame interval of
// 1/30 means 30 frames per second.
type Fraction struct {
	Numerator   uint32
	Denominator uint32
}

// DefaultInterval is the frame interval a pipe starts with.
func DefaultInterval() Fraction {
	return Fraction{Numerator: 1, Denominator: 30}
}

// IsUnset reports whether either term is zero. Negotiation treats an unset
// interval as "keep the current sink interval".
func (f Fraction) IsUnset() bool {
	return f.Numerator == 0 || f.Denominator == 0
}

// FPS returns the interval as frames per second, or 0 when unset.
func (f Fraction) FPS() float64 {
	if f.IsUnset() {
		return 0
	}
	return float64(f.Denominator) / float64(f.Numerator)
}

// String renders "num/den".
func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Numerator, f.Denominator)
}

// ParseFraction parses "num/den" (e.g. "1/30").
func ParseFraction(s string) (Fraction, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "/", 2)
	if len(parts) != 2 {
		return Fraction{}, fmt.Errorf("pixel: invalid fraction %q", s)
	}
	num, err := strconv.ParseUint(strings.TrimSpace(parts[0]), 10, 32)
	if err != nil {
		return Fraction{}, fmt.Errorf("pixel: invalid fraction %q: %w", s, err)
	}
	den, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 32)
	if err != nil {
		return Fraction{}, fmt.Errorf("pixel: invalid fraction %q: %w", s, err)
	}
	return Fraction{Numerator: uint32(num), Denominator: uint32(den)}, nil
}
