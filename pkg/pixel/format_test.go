package pixel

import "testing"

func TestEncodingIsYUV(t *testing.T) {
	tests := []struct {
		code Encoding
		want bool
	}{
		{EncRGB565_2X8LE, false},
		{EncRGB888_1X24, false},
		{EncBGR888_1X24, false},
		{EncY8_1X8, true}, // first code of the YUV range
		{EncYUYV8_2X8, true},
		{EncYUV8_1X24, true},
		{EncSBGGR8_1X8, false}, // Bayer sits just past the range
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := tt.code.IsYUV(); got != tt.want {
				t.Errorf("IsYUV(%s) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

func TestParseEncoding(t *testing.T) {
	for code, name := range map[Encoding]string{
		EncRGB888_1X24: "RGB888_1X24",
		EncYUYV8_2X8:   "yuyv8_2x8", // case-insensitive
		EncUYVY8_1_5X8: " UYVY8_1_5X8 ",
	} {
		got, err := ParseEncoding(name)
		if err != nil {
			t.Fatalf("ParseEncoding(%q): %v", name, err)
		}
		if got != code {
			t.Errorf("ParseEncoding(%q) = %s, want %s", name, got, code)
		}
	}

	if _, err := ParseEncoding("NV12"); err == nil {
		t.Error("ParseEncoding(NV12) should fail: no bus code exists for semiplanar layouts")
	}
}

func TestDefaultFormat(t *testing.T) {
	sink := DefaultFormat(PadSink)
	if sink.Code != EncRGB888_1X24 || sink.Width != 640 || sink.Height != 480 {
		t.Errorf("sink default = %s", sink)
	}
	if sink.Field != FieldNone || sink.Colorspace != ColorspaceRec709 {
		t.Errorf("sink default colorimetry = %s", sink)
	}

	src := DefaultFormat(PadSource)
	if src.Code != EncRGB565_2X8LE {
		t.Errorf("source default code = %s, want RGB565_2X8LE", src.Code)
	}
}

func TestFractionParse(t *testing.T) {
	f, err := ParseFraction("1/30")
	if err != nil {
		t.Fatalf("ParseFraction: %v", err)
	}
	if f != (Fraction{Numerator: 1, Denominator: 30}) {
		t.Errorf("ParseFraction(1/30) = %v", f)
	}
	if f.FPS() != 30 {
		t.Errorf("FPS() = %v, want 30", f.FPS())
	}

	if !(Fraction{Numerator: 0, Denominator: 30}).IsUnset() {
		t.Error("zero numerator should be unset")
	}

	for _, bad := range []string{"", "30", "a/b", "1/"} {
		if _, err := ParseFraction(bad); err == nil {
			t.Errorf("ParseFraction(%q) should fail", bad)
		}
	}
}
