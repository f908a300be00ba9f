// Package geometry implements the pad-format and selection-rectangle
// clamping rules: formats snap to the encoding tables and frame bounds,
// crop rectangles stay inside the sink frame, and compose rectangles stay
// within reach of the crop and the maximum downscale ratio.
package geometry

import (
	"github.com/user/pixelproc/pkg/pixel"
	"github.com/user/pixelproc/pkg/stages/packer"
)

// MaxDownscaleRatio bounds how far a compose rectangle may shrink the crop
// on one axis.
const MaxDownscaleRatio = 64

// cropMin is the smallest selectable crop rectangle.
var cropMin = pixel.Size{Width: pixel.FrameMinWidth, Height: pixel.FrameMinHeight}

// ClampFormat snaps a requested pad format to one the pipe can carry:
// unknown encodings fall back to the pad default, sizes clamp to the frame
// bounds, "any" and alternating field modes collapse to progressive,
// colorimetry snaps to a consistent set.
func ClampFormat(pad pixel.Pad, f pixel.Format) pixel.Format {
	if packer.ByCode(pad, f.Code) == nil {
		if pad == pixel.PadSource {
			f.Code = pixel.DefaultSourceEncoding
		} else {
			f.Code = pixel.DefaultSinkEncoding
		}
	}

	f.Width = clampU32(f.Width, pixel.FrameMinWidth, pixel.FrameMaxWidth)
	f.Height = clampU32(f.Height, pixel.FrameMinHeight, pixel.FrameMaxHeight)

	if f.Field == pixel.FieldAny || f.Field == pixel.FieldAlternate {
		f.Field = pixel.FieldNone
	}

	return pixel.ClampColorimetry(f)
}

// CropBound returns the rectangle crop selections are confined to: the
// full sink frame.
func CropBound(sink pixel.Format) pixel.Rect {
	return sink.Bound()
}

// ClampCrop forces a requested crop rectangle to a legal one: at least the
// minimum frame size, then moved and shrunk to fit inside the sink frame.
func ClampCrop(r pixel.Rect, sink pixel.Format) pixel.Rect {
	r = r.WithMinSize(cropMin)
	return r.MapInside(CropBound(sink))
}

// ClampCompose forces a requested compose rectangle to a legal one. Each
// axis clamps against the crop independently: larger than the crop snaps
// to the crop, smaller than crop/64 snaps to crop/64. Requests between
// crop/64 and the crop pass through unchanged, including sizes below the
// minimum frame size. The offset is forced to the origin.
func ClampCompose(r pixel.Rect, crop pixel.Rect) pixel.Rect {
	if r.Width > crop.Width {
		r.Width = crop.Width
	} else if r.Width < crop.Width/MaxDownscaleRatio {
		r.Width = crop.Width / MaxDownscaleRatio
	}

	if r.Height > crop.Height {
		r.Height = crop.Height
	} else if r.Height < crop.Height/MaxDownscaleRatio {
		r.Height = crop.Height / MaxDownscaleRatio
	}

	r.Left = 0
	r.Top = 0
	return r
}

func clampU32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
