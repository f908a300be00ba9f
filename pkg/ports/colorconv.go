package ports

import "github.com/user/pixelproc/pkg/pixel"

// ColorConvParams is a planned configuration for the color-conversion
// block: six packed coefficient registers plus the control flags that
// accompany them. When Enable is false the block is bypassed and the
// matrix is left untouched.
type ColorConvParams struct {
	// Matrix holds the six coefficient registers in ascending register
	// order, already packed for the hardware.
	Matrix [6]uint32

	// Clamping narrows the output to the limited quantization range.
	Clamping bool

	// ClampingAsRGB selects the RGB clamp bounds instead of the YUV ones.
	ClampingAsRGB bool

	// Enable turns the conversion block on.
	Enable bool
}

// ColorConverter plans the color-conversion block for a negotiated
// sink/source format pair. Implementations own the matrix math; the core
// only forwards the result to the registers.
type ColorConverter interface {
	// Configure returns the parameters for converting sink pixels into
	// source pixels. A pass-through pair yields Enable=false. An error
	// aborts stream start.
	Configure(sink, source pixel.Format) (ColorConvParams, error)
}
