package pixel

import (
	"fmt"
	"strings"
)

// Colorimetry enums mirror the V4L2 numeric values so clamped formats stay
// comparable with what a kernel-side peer would report.

// Colorspace identifies the color primaries / overall colorspace of a frame.
type Colorspace uint32

const (
	ColorspaceDefault     Colorspace = 0
	ColorspaceSMPTE170M   Colorspace = 1
	ColorspaceSMPTE240M   Colorspace = 2
	ColorspaceRec709      Colorspace = 3
	ColorspaceBT878       Colorspace = 4
	Colorspace470SystemM  Colorspace = 5
	Colorspace470SystemBG Colorspace = 6
	ColorspaceJPEG        Colorspace = 7
	ColorspaceSRGB        Colorspace = 8
	ColorspaceOPRGB       Colorspace = 9
	ColorspaceBT2020      Colorspace = 10
	ColorspaceRaw         Colorspace = 11
	ColorspaceDCIP3       Colorspace = 12
)

// ParseColorspace resolves a colorspace name (case-insensitive) to its
// value. Names match what String returns.
func ParseColorspace(name string) (Colorspace, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for cs := ColorspaceSMPTE170M; cs <= ColorspaceDCIP3; cs++ {
		if cs.String() == want {
			return cs, nil
		}
	}
	return 0, fmt.Errorf("pixel: unknown colorspace %q", name)
}

// String returns a short lowercase colorspace name.
func (c Colorspace) String() string {
	switch c {
	case ColorspaceSMPTE170M:
		return "smpte170m"
	case ColorspaceSMPTE240M:
		return "smpte240m"
	case ColorspaceRec709:
		return "rec709"
	case ColorspaceBT878:
		return "bt878"
	case Colorspace470SystemM:
		return "470m"
	case Colorspace470SystemBG:
		return "470bg"
	case ColorspaceJPEG:
		return "jpeg"
	case ColorspaceSRGB:
		return "srgb"
	case ColorspaceOPRGB:
		return "oprgb"
	case ColorspaceBT2020:
		return "bt2020"
	case ColorspaceRaw:
		return "raw"
	case ColorspaceDCIP3:
		return "dci-p3"
	default:
		return "default"
	}
}

// YCbCrEncoding selects the RGB↔YCbCr conversion standard.
type YCbCrEncoding uint32

const (
	YCbCrEncDefault   YCbCrEncoding = 0
	YCbCrEnc601       YCbCrEncoding = 1
	YCbCrEnc709       YCbCrEncoding = 2
	YCbCrEncBT2020    YCbCrEncoding = 6
	YCbCrEncSMPTE240M YCbCrEncoding = 8
)

// String returns the conversion standard name.
func (e YCbCrEncoding) String() string {
	switch e {
	case YCbCrEnc601:
		return "601"
	case YCbCrEnc709:
		return "709"
	case YCbCrEncBT2020:
		return "bt2020"
	case YCbCrEncSMPTE240M:
		return "smpte240m"
	default:
		return "default"
	}
}

// Quantization is the sample range convention.
type Quantization uint32

const (
	QuantizationDefault   Quantization = 0
	QuantizationFullRange Quantization = 1
	QuantizationLimRange  Quantization = 2
)

// String returns "full", "limited" or "default".
func (q Quantization) String() string {
	switch q {
	case QuantizationFullRange:
		return "full"
	case QuantizationLimRange:
		return "limited"
	default:
		return "default"
	}
}

// XferFunc is the opto-electronic transfer function.
type XferFunc uint32

const (
	XferFuncDefault   XferFunc = 0
	XferFunc709       XferFunc = 1
	XferFuncSRGB      XferFunc = 2
	XferFuncOPRGB     XferFunc = 3
	XferFuncSMPTE240M XferFunc = 4
	XferFuncNone      XferFunc = 5
	XferFuncDCIP3     XferFunc = 6
)

// ClampColorimetry normalizes the colorimetry block of a format. Unknown or
// unset colorspaces collapse to Rec. 709, then any remaining "default"
// fields are resolved to the canonical value for the colorspace. The
// quantization default is always derived with the is-RGB flag false, even
// for RGB bus codes.
func ClampColorimetry(f Format) Format {
	if f.Colorspace == ColorspaceDefault || f.Colorspace > ColorspaceDCIP3 {
		f.Colorspace = ColorspaceRec709
		f.YCbCrEnc = YCbCrEncDefault
		f.Quantization = QuantizationDefault
		f.XferFunc = XferFuncDefault
	}

	if f.YCbCrEnc == YCbCrEncDefault {
		f.YCbCrEnc = defaultYCbCrEncoding(f.Colorspace)
	}
	if f.Quantization == QuantizationDefault {
		f.Quantization = defaultQuantization(false, f.Colorspace)
	}
	if f.XferFunc == XferFuncDefault {
		f.XferFunc = defaultXferFunc(f.Colorspace)
	}
	return f
}

func defaultYCbCrEncoding(cs Colorspace) YCbCrEncoding {
	switch cs {
	case ColorspaceRec709, ColorspaceDCIP3:
		return YCbCrEnc709
	case ColorspaceBT2020:
		return YCbCrEncBT2020
	case ColorspaceSMPTE240M:
		return YCbCrEncSMPTE240M
	default:
		return YCbCrEnc601
	}
}

func defaultQuantization(isRGB bool, cs Colorspace) Quantization {
	if isRGB || cs == ColorspaceJPEG {
		return QuantizationFullRange
	}
	return QuantizationLimRange
}

func defaultXferFunc(cs Colorspace) XferFunc {
	switch cs {
	case ColorspaceOPRGB:
		return XferFuncOPRGB
	case ColorspaceSMPTE240M:
		return XferFuncSMPTE240M
	case ColorspaceDCIP3:
		return XferFuncDCIP3
	case ColorspaceRaw:
		return XferFuncNone
	case ColorspaceSRGB, ColorspaceJPEG:
		return XferFuncSRGB
	default:
		return XferFunc709
	}
}
