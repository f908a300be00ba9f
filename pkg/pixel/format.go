// Package pixel defines the value types shared by the pixelproc negotiation
// core: media-bus encodings, image formats, rectangles, sizes and frame
// intervals, together with the clamping rules that keep them inside what the
// hardware accepts.
package pixel

import (
	"fmt"
	"strings"
)

// Encoding is a logical media-bus pixel encoding. The numeric values mirror
// the Linux media-bus code space so that range checks (RGB block 0x1xxx, YUV
// block 0x2xxx, Bayer from 0x3001) keep their meaning.
type Encoding uint32

const (
	EncRGB565_2X8LE Encoding = 0x1008
	EncRGB888_1X24  Encoding = 0x100a
	EncBGR888_1X24  Encoding = 0x1013

	EncY8_1X8      Encoding = 0x2001
	EncUYVY8_1_5X8 Encoding = 0x2002
	EncVYUY8_1_5X8 Encoding = 0x2003
	EncYUYV8_1_5X8 Encoding = 0x2004
	EncYVYU8_1_5X8 Encoding = 0x2005
	EncUYVY8_2X8   Encoding = 0x2006
	EncVYUY8_2X8   Encoding = 0x2007
	EncYUYV8_2X8   Encoding = 0x2008
	EncYVYU8_2X8   Encoding = 0x2009
	EncYUYV8_1X16  Encoding = 0x2011
	EncYVYU8_1X16  Encoding = 0x2012
	EncYUV8_1X24   Encoding = 0x2025

	// EncSBGGR8_1X8 is the first Bayer code; it is not negotiable on any
	// pad but marks the upper bound of the YUV range test.
	EncSBGGR8_1X8 Encoding = 0x3001
)

// Default encodings a pad falls back to when a caller asks for a code the
// catalog does not carry.
const (
	DefaultSinkEncoding   = EncRGB888_1X24
	DefaultSourceEncoding = EncRGB565_2X8LE
)

// IsYUV reports whether the encoding falls in the luma/chroma code range.
// This is the test that decides the sink→source propagation class: YUV-range
// sinks propagate a packed 4:2:2 source, everything else propagates RGB.
func (e Encoding) IsYUV() bool {
	return e >= EncY8_1X8 && e < EncSBGGR8_1X8
}

var encodingNames = map[Encoding]string{
	EncRGB565_2X8LE: "RGB565_2X8LE",
	EncRGB888_1X24:  "RGB888_1X24",
	EncBGR888_1X24:  "BGR888_1X24",
	EncY8_1X8:       "Y8_1X8",
	EncUYVY8_1_5X8:  "UYVY8_1_5X8",
	EncVYUY8_1_5X8:  "VYUY8_1_5X8",
	EncYUYV8_1_5X8:  "YUYV8_1_5X8",
	EncYVYU8_1_5X8:  "YVYU8_1_5X8",
	EncUYVY8_2X8:    "UYVY8_2X8",
	EncVYUY8_2X8:    "VYUY8_2X8",
	EncYUYV8_2X8:    "YUYV8_2X8",
	EncYVYU8_2X8:    "YVYU8_2X8",
	EncYUYV8_1X16:   "YUYV8_1X16",
	EncYVYU8_1X16:   "YVYU8_1X16",
	EncYUV8_1X24:    "YUV8_1X24",
	EncSBGGR8_1X8:   "SBGGR8_1X8",
}

// String returns the bus-format name, or the hex code for unknown values.
func (e Encoding) String() string {
	if name, ok := encodingNames[e]; ok {
		return name
	}
	return fmt.Sprintf("0x%04x", uint32(e))
}

// ParseEncoding resolves a bus-format name (case-insensitive) to its code.
func ParseEncoding(name string) (Encoding, error) {
	want := strings.ToUpper(strings.TrimSpace(name))
	for code, n := range encodingNames {
		if n == want {
			return code, nil
		}
	}
	return 0, fmt.Errorf("pixel: unknown encoding %q", name)
}

// Field is the interlacing mode of a frame. Values mirror the V4L2 field
// enum; the pixelproc only processes progressive data, so anything
// "any"/"alternate" is normalized to none during clamping.
type Field uint32

const (
	FieldAny        Field = 0
	FieldNone       Field = 1
	FieldInterlaced Field = 4
	FieldAlternate  Field = 7
)

// Frame size bounds accepted on either pad.
const (
	FrameMinWidth  = 16
	FrameMinHeight = 16
	FrameMaxWidth  = 4096
	FrameMaxHeight = 4096
)

// Pad identifies one of the two connection points of a pipe.
type Pad int

const (
	PadSink   Pad = 0
	PadSource Pad = 1
)

// String returns "sink" or "src", the short labels used in logs.
func (p Pad) String() string {
	if p == PadSource {
		return "src"
	}
	return "sink"
}

// Format describes the image carried by one pad.
type Format struct {
	Code         Encoding
	Width        uint32
	Height       uint32
	Field        Field
	Colorspace   Colorspace
	YCbCrEnc     YCbCrEncoding
	Quantization Quantization
	XferFunc     XferFunc
}

// DefaultFormat returns the format a pad carries right after pipe
// construction: 640x480 progressive Rec. 709 with the pad's default encoding.
func DefaultFormat(pad Pad) Format {
	code := DefaultSinkEncoding
	if pad == PadSource {
		code = DefaultSourceEncoding
	}
	return Format{
		Code:         code,
		Width:        640,
		Height:       480,
		Field:        FieldNone,
		Colorspace:   ColorspaceRec709,
		YCbCrEnc:     YCbCrEncDefault,
		Quantization: QuantizationDefault,
		XferFunc:     XferFuncDefault,
	}
}

// Bound returns the full-frame rectangle of the format.
func (f Format) Bound() Rect {
	return Rect{Left: 0, Top: 0, Width: f.Width, Height: f.Height}
}

// Size returns the format's dimensions.
func (f Format) Size() Size {
	return Size{Width: f.Width, Height: f.Height}
}

// String renders the size, the code and the four colorimetry fields, the
// layout used in negotiation logs.
func (f Format) String() string {
	return fmt.Sprintf("%dx%d (%s, %d, %d, %d, %d)",
		f.Width, f.Height, f.Code,
		f.Colorspace, f.Quantization, f.XferFunc, f.YCbCrEnc)
}
