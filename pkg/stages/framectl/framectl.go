// Package framectl negotiates frame skipping between a pipe's sink and
// source intervals. The hardware forwards every frame or keeps one in 2,
// 4 or 8; the skip code indexes that ratio table.
package framectl

import "github.com/user/pixelproc/pkg/pixel"

// Ratios lists the forwarding ratios by skip code: code i keeps one frame
// in Ratios[i].
var Ratios = [4]uint32{1, 2, 4, 8}

// Negotiate picks the skip code for a requested source interval against
// the sink interval and returns it with the interval the hardware really
// achieves. An unset request (zero numerator or denominator) negotiates
// 1:1. The requested ratio truncates to the next reachable step, so asking
// for seven times the sink interval yields the four-times code.
func Negotiate(sink, requested pixel.Fraction) (uint32, pixel.Fraction) {
	if requested.IsUnset() {
		requested = sink
	}

	ratio := (sink.Denominator * requested.Numerator) /
		(sink.Numerator * requested.Denominator)

	var code uint32
	switch {
	case ratio >= 8:
		code = 3
	case ratio >= 4:
		code = 2
	case ratio >= 2:
		code = 1
	}

	return code, Apply(code, sink)
}

// Apply scales the sink interval by the skip code's ratio.
func Apply(code uint32, sink pixel.Fraction) pixel.Fraction {
	return pixel.Fraction{
		Numerator:   sink.Numerator * Ratios[code],
		Denominator: sink.Denominator,
	}
}

// Enumerate returns the four source intervals reachable from the sink
// interval, in skip-code order.
func Enumerate(sink pixel.Fraction) [4]pixel.Fraction {
	var out [4]pixel.Fraction
	for code := range out {
		out[code] = Apply(uint32(code), sink)
	}
	return out
}
