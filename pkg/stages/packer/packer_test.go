package packer

import (
	"testing"

	"github.com/user/pixelproc/pkg/pixel"
)

func TestByCodeSink(t *testing.T) {
	tests := []struct {
		code pixel.Encoding
		want bool
	}{
		{pixel.EncRGB888_1X24, true},
		{pixel.EncYUV8_1X24, true},
		{pixel.EncRGB565_2X8LE, false}, // source-only
		{pixel.EncYUYV8_2X8, false},
		{pixel.EncSBGGR8_1X8, false},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			got := ByCode(pixel.PadSink, tt.code)
			if (got != nil) != tt.want {
				t.Errorf("ByCode(sink, %s) = %v, want present=%v", tt.code, got, tt.want)
			}
		})
	}
}

func TestByCodeSourceProgramsPacker(t *testing.T) {
	tests := []struct {
		code   pixel.Encoding
		format uint32
		swap   bool
	}{
		{pixel.EncRGB888_1X24, FormatRGB888OrYUV444OneBuffer, true},
		{pixel.EncBGR888_1X24, FormatRGB888OrYUV444OneBuffer, false},
		{pixel.EncRGB565_2X8LE, FormatRGB565, false},
		{pixel.EncYUYV8_2X8, FormatYUYV, false},
		{pixel.EncYVYU8_2X8, FormatYUYV, true},
		{pixel.EncUYVY8_2X8, FormatUYVY, false},
		{pixel.EncVYUY8_2X8, FormatUYVY, true},
		{pixel.EncY8_1X8, FormatY8, false},
		{pixel.EncYUYV8_1_5X8, FormatNV21, false},
		{pixel.EncYVYU8_1_5X8, FormatNV21, true},
		{pixel.EncYUYV8_1X16, FormatNV61, false},
		{pixel.EncYVYU8_1X16, FormatNV61, true},
		{pixel.EncUYVY8_1_5X8, FormatYV12, false},
		{pixel.EncVYUY8_1_5X8, FormatYV12, true},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			e := ByCode(pixel.PadSource, tt.code)
			if e == nil {
				t.Fatalf("ByCode(src, %s) = nil, want entry", tt.code)
			}
			if e.Format != tt.format {
				t.Errorf("Format = 0x%x, want 0x%x", e.Format, tt.format)
			}
			if e.SwapRB != tt.swap {
				t.Errorf("SwapRB = %v, want %v", e.SwapRB, tt.swap)
			}
		})
	}
}

func TestRegisterValue(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		want  uint32
	}{
		{"rgb565 no swap", Entry{pixel.EncRGB565_2X8LE, FormatRGB565, false}, 0x1},
		{"rgb888 swapped", Entry{pixel.EncRGB888_1X24, FormatRGB888OrYUV444OneBuffer, true}, 0x10},
		{"uyvy swapped", Entry{pixel.EncVYUY8_2X8, FormatUYVY, true}, 0x1a}, // 0xa | bit4
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.entry.RegisterValue(); got != tt.want {
				t.Errorf("RegisterValue() = 0x%x, want 0x%x", got, tt.want)
			}
		})
	}
}

func TestByIndexWalksTableInOrder(t *testing.T) {
	if got := Count(pixel.PadSink); got != 2 {
		t.Errorf("Count(sink) = %d, want 2", got)
	}
	if got := Count(pixel.PadSource); got != 14 {
		t.Errorf("Count(src) = %d, want 14", got)
	}

	// First and last source entries pin the table order.
	if e := ByIndex(pixel.PadSource, 0); e == nil || e.Code != pixel.EncRGB888_1X24 {
		t.Errorf("ByIndex(src, 0) = %v, want RGB888_1X24", e)
	}
	if e := ByIndex(pixel.PadSource, 13); e == nil || e.Code != pixel.EncVYUY8_1_5X8 {
		t.Errorf("ByIndex(src, 13) = %v, want VYUY8_1_5X8", e)
	}

	if e := ByIndex(pixel.PadSource, 14); e != nil {
		t.Errorf("ByIndex(src, 14) = %v, want nil", e)
	}
	if e := ByIndex(pixel.PadSink, -1); e != nil {
		t.Errorf("ByIndex(sink, -1) = %v, want nil", e)
	}
}

func TestEncodingsMatchesByIndex(t *testing.T) {
	for _, pad := range []pixel.Pad{pixel.PadSink, pixel.PadSource} {
		codes := Encodings(pad)
		if len(codes) != Count(pad) {
			t.Fatalf("len(Encodings(%s)) = %d, want %d", pad, len(codes), Count(pad))
		}
		for i, code := range codes {
			if e := ByIndex(pad, i); e.Code != code {
				t.Errorf("Encodings(%s)[%d] = %s, ByIndex gives %s", pad, i, code, e.Code)
			}
			if !Supports(pad, code) {
				t.Errorf("Supports(%s, %s) = false for enumerated code", pad, code)
			}
		}
	}
}
