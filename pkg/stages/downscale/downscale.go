// Package downscale plans the two-stage scaler: a power-of-two decimation
// pass that brings the cropped frame within reach of the downsize block,
// then the fixed-point ratio and divider fields of the downsize block
// itself.
package downscale

import "github.com/user/pixelproc/pkg/pixel"

const (
	// MaxDownsizeRatio is the largest shrink the downsize block covers on
	// its own. Decimation halves the input until the leftover ratio fits.
	MaxDownsizeRatio = 8

	// Fixed-point scale constants of the downsize block. A ratio of 8192
	// is 1:1; dividers are scaled by 1024 and saturate at 1023, so even
	// the 1:1 divider programs as 1023.
	RatioOne = 8192
	RatioMax = 65535
	DivOne   = 1024
	DivMax   = 1023
)

// Plan is a computed scaler program for one pipe.
type Plan struct {
	// HDec and VDec are decimation exponents; each step halves the axis.
	HDec uint32
	VDec uint32

	// HPostDec and VPostDec are the crop dimensions after decimation, the
	// input the downsize block sees.
	HPostDec uint32
	VPostDec uint32

	// HRatio and VRatio feed the resampler, RatioOne meaning 1:1.
	HRatio uint32
	VRatio uint32

	// HDiv and VDiv are the output pixel dividers on the DivOne scale.
	HDiv uint32
	VDiv uint32
}

// Compute derives the scaler plan that brings the crop size down to the
// compose size. Decimation halves an axis while the remaining factor
// exceeds the downsize reach, then the ratio and divider interpolate the
// rest. Divisions truncate and results saturate at the register field
// maxima. Callers pass rectangles that already satisfy the compose
// invariants; within that domain the function is total.
func Compute(crop, compose pixel.Rect) Plan {
	p := Plan{
		HPostDec: crop.Width,
		VPostDec: crop.Height,
	}

	for compose.Width*MaxDownsizeRatio < p.HPostDec {
		p.HDec++
		p.HPostDec /= 2
	}
	for compose.Height*MaxDownsizeRatio < p.VPostDec {
		p.VDec++
		p.VPostDec /= 2
	}

	p.HRatio = p.HPostDec * RatioOne / compose.Width
	if p.HRatio > RatioMax {
		p.HRatio = RatioMax
	}
	p.VRatio = p.VPostDec * RatioOne / compose.Height
	if p.VRatio > RatioMax {
		p.VRatio = RatioMax
	}

	p.HDiv = DivOne * compose.Width / p.HPostDec
	if p.HDiv > DivMax {
		p.HDiv = DivMax
	}
	p.VDiv = DivOne * compose.Height / p.VPostDec
	if p.VDiv > DivMax {
		p.VDiv = DivMax
	}

	return p
}

// Decimates reports whether the decimation block needs to be enabled.
func (p Plan) Decimates() bool {
	return p.HDec != 0 || p.VDec != 0
}
