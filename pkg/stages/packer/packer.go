// Package packer maps media-bus encodings onto the pixel packer hardware:
// which encodings each pad accepts, and the format code and component-swap
// flag the packing control register takes for a source encoding.
package packer

import "github.com/user/pixelproc/pkg/pixel"

// Format codes accepted by the packing control register.
const (
	FormatRGB888OrYUV444OneBuffer uint32 = 0x0
	FormatRGB565                  uint32 = 0x1
	FormatARGB8888                uint32 = 0x2
	FormatRGBA8888                uint32 = 0x3
	FormatY8                      uint32 = 0x4
	FormatYUV444                  uint32 = 0x5
	FormatYUYV                    uint32 = 0x6
	FormatNV61                    uint32 = 0x7
	FormatNV21                    uint32 = 0x8
	FormatYV12                    uint32 = 0x9
	FormatUYVY                    uint32 = 0xa
)

// swapRB is the component-swap bit of the packing control register.
const swapRB = 1 << 4

// Entry binds one media-bus encoding to its packer programming.
type Entry struct {
	Code   pixel.Encoding
	Format uint32
	SwapRB bool
}

// RegisterValue returns the packing control register value for the entry.
func (e Entry) RegisterValue() uint32 {
	v := e.Format
	if e.SwapRB {
		v |= swapRB
	}
	return v
}

// sinkEntries lists the encodings accepted on the sink pad. Sink entries
// only gate negotiation; their packer fields are never programmed.
var sinkEntries = []Entry{
	{Code: pixel.EncRGB888_1X24},
	{Code: pixel.EncYUV8_1X24},
}

// sourceEntries lists the encodings the source pad can produce. Semiplanar
// and planar layouts have no media-bus code of their own, so the 1.5X8 and
// 1X16 sample codes stand in for them.
var sourceEntries = []Entry{
	{pixel.EncRGB888_1X24, FormatRGB888OrYUV444OneBuffer, true},
	{pixel.EncBGR888_1X24, FormatRGB888OrYUV444OneBuffer, false},
	{pixel.EncRGB565_2X8LE, FormatRGB565, false},
	{pixel.EncYUYV8_2X8, FormatYUYV, false},
	{pixel.EncYVYU8_2X8, FormatYUYV, true},
	{pixel.EncUYVY8_2X8, FormatUYVY, false},
	{pixel.EncVYUY8_2X8, FormatUYVY, true},
	{pixel.EncY8_1X8, FormatY8, false},
	{pixel.EncYUYV8_1_5X8, FormatNV21, false}, // stands in for NV12
	{pixel.EncYVYU8_1_5X8, FormatNV21, true},  // stands in for NV21
	{pixel.EncYUYV8_1X16, FormatNV61, false},  // stands in for NV16
	{pixel.EncYVYU8_1X16, FormatNV61, true},   // stands in for NV61
	{pixel.EncUYVY8_1_5X8, FormatYV12, false}, // stands in for I420
	{pixel.EncVYUY8_1_5X8, FormatYV12, true},  // stands in for YV12
}

func entries(pad pixel.Pad) []Entry {
	if pad == pixel.PadSource {
		return sourceEntries
	}
	return sinkEntries
}

// ByCode returns the entry for code on the given pad, or nil when the pad
// does not carry that encoding.
func ByCode(pad pixel.Pad, code pixel.Encoding) *Entry {
	l := entries(pad)
	for i := range l {
		if l[i].Code == code {
			return &l[i]
		}
	}
	return nil
}

// ByIndex returns the index-th entry of the pad's table, or nil past the
// end. Enumeration callers walk indexes until nil.
func ByIndex(pad pixel.Pad, index int) *Entry {
	l := entries(pad)
	if index < 0 || index >= len(l) {
		return nil
	}
	return &l[index]
}

// Count returns the number of encodings the pad carries.
func Count(pad pixel.Pad) int {
	return len(entries(pad))
}

// Encodings returns the pad's encodings in table order.
func Encodings(pad pixel.Pad) []pixel.Encoding {
	l := entries(pad)
	codes := make([]pixel.Encoding, len(l))
	for i, e := range l {
		codes[i] = e.Code
	}
	return codes
}

// Supports reports whether the pad carries the encoding.
func Supports(pad pixel.Pad, code pixel.Encoding) bool {
	return ByCode(pad, code) != nil
}
