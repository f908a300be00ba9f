package framectl

import (
	"testing"

	"github.com/user/pixelproc/pkg/pixel"
)

func fr(num, den uint32) pixel.Fraction {
	return pixel.Fraction{Numerator: num, Denominator: den}
}

func TestNegotiate(t *testing.T) {
	sink := fr(1, 30)

	tests := []struct {
		name      string
		requested pixel.Fraction
		wantCode  uint32
		wantIval  pixel.Fraction
	}{
		{"unset both", fr(0, 0), 0, fr(1, 30)},
		{"unset numerator", fr(0, 30), 0, fr(1, 30)},
		{"unset denominator", fr(1, 0), 0, fr(1, 30)},
		{"same interval", fr(1, 30), 0, fr(1, 30)},
		{"faster than sink keeps every frame", fr(1, 240), 0, fr(1, 30)},
		{"double interval", fr(2, 30), 1, fr(2, 30)},
		{"triple truncates to double", fr(3, 30), 1, fr(2, 30)},
		{"quadruple", fr(4, 30), 2, fr(4, 30)},
		{"sevenfold truncates to quadruple", fr(7, 30), 2, fr(4, 30)},
		{"eightfold", fr(8, 30), 3, fr(8, 30)},
		{"beyond eightfold saturates", fr(100, 30), 3, fr(8, 30)},
		{"equivalent fraction", fr(1, 15), 1, fr(2, 30)}, // 2x the sink interval
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, got := Negotiate(sink, tt.requested)
			if code != tt.wantCode {
				t.Errorf("code = %d, want %d", code, tt.wantCode)
			}
			if got != tt.wantIval {
				t.Errorf("achieved = %v, want %v", got, tt.wantIval)
			}
		})
	}
}

func TestNegotiateNTSCSink(t *testing.T) {
	sink := fr(1001, 30000)

	code, got := Negotiate(sink, fr(8008, 30000))
	if code != 3 {
		t.Errorf("code = %d, want 3", code)
	}
	if got != fr(8008, 30000) {
		t.Errorf("achieved = %v, want 8008/30000", got)
	}
}

func TestApply(t *testing.T) {
	sink := fr(1, 30)

	for code, want := range map[uint32]pixel.Fraction{
		0: fr(1, 30),
		1: fr(2, 30),
		2: fr(4, 30),
		3: fr(8, 30),
	} {
		if got := Apply(code, sink); got != want {
			t.Errorf("Apply(%d) = %v, want %v", code, got, want)
		}
	}
}

func TestEnumerate(t *testing.T) {
	got := Enumerate(fr(1, 30))
	want := [4]pixel.Fraction{fr(1, 30), fr(2, 30), fr(4, 30), fr(8, 30)}
	if got != want {
		t.Errorf("Enumerate = %v, want %v", got, want)
	}
}
