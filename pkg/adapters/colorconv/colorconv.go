// Package colorconv provides the default color conversion planner for the
// main pipe. Given the negotiated sink and source formats it selects the
// RGB↔YCbCr matrix for the formats' conversion standard and sample range
// and packs it into the six matrix register values.
//
// Each register carries two 11-bit two's-complement fields, the low one at
// bit 0 and the high one at bit 16. Matrix coefficients are stored in Q2.8
// (1.0 = 256); the per-row additive offset is stored as a signed pixel
// value. Register pairs hold one matrix row each: coefficients one and two,
// then coefficient three and the row offset.
package colorconv

import (
	"errors"
	"fmt"
	"math"

	"github.com/user/pixelproc/pkg/pixel"
	"github.com/user/pixelproc/pkg/ports"
)

// ErrNoMatrix is returned when no conversion matrix exists for the
// requested conversion standard.
var ErrNoMatrix = errors.New("colorconv: no conversion matrix")

const (
	coefOne   = 256   // Q2.8
	fieldMask = 0x7ff // 11-bit two's complement
)

// lumaWeights holds the kr/kb luma weights per supported standard.
var lumaWeights = map[pixel.YCbCrEncoding][2]float64{
	pixel.YCbCrEnc601: {0.299, 0.114},
	pixel.YCbCrEnc709: {0.2126, 0.0722},
}

// Converter implements ports.ColorConverter with the standard BT.601 and
// BT.709 matrices.
type Converter struct {
	log ports.Logger
}

// New creates a new Converter.
func New(log ports.Logger) *Converter {
	return &Converter{log: log.WithComponent("colorconv")}
}

// Configure plans the conversion between the sink and source formats.
// Formats of the same class need no conversion and leave the block
// disabled. Standards without a matrix on this hardware (BT.2020,
// SMPTE 240M) fail with ErrNoMatrix.
func (c *Converter) Configure(sink, source pixel.Format) (ports.ColorConvParams, error) {
	sink = pixel.ClampColorimetry(sink)
	source = pixel.ClampColorimetry(source)

	sinkYUV := sink.Code.IsYUV()
	sourceYUV := source.Code.IsYUV()

	if sinkYUV == sourceYUV {
		c.log.Debug("%s -> %s: same class, conversion disabled", sink.Code, source.Code)
		return ports.ColorConvParams{}, nil
	}

	// The conversion standard and the studio-swing scaling are properties
	// of the YUV side of the conversion.
	yuvSide := source
	if sinkYUV {
		yuvSide = sink
	}
	w, ok := lumaWeights[yuvSide.YCbCrEnc]
	if !ok {
		return ports.ColorConvParams{}, fmt.Errorf("%w for %s", ErrNoMatrix, yuvSide.YCbCrEnc)
	}
	limitedYUV := yuvSide.Quantization != pixel.QuantizationFullRange

	params := ports.ColorConvParams{Enable: true}
	var m matrix
	if sinkYUV {
		m = yuvToRGB(w[0], w[1], limitedYUV)
		if source.Quantization == pixel.QuantizationLimRange {
			params.Clamping = true
			params.ClampingAsRGB = true
		}
	} else {
		m = rgbToYUV(w[0], w[1], limitedYUV)
		if source.Quantization == pixel.QuantizationLimRange {
			params.Clamping = true
		}
	}
	params.Matrix = m.pack()

	c.log.Debug("%s -> %s: %s %s matrix, clamp=%v as-rgb=%v",
		sink.Code, source.Code, yuvSide.YCbCrEnc, yuvSide.Quantization,
		params.Clamping, params.ClampingAsRGB)
	return params, nil
}

// matrix is a 3x3 coefficient matrix with one additive offset per output
// row.
type matrix struct {
	coef [3][3]float64
	off  [3]float64
}

// rgbToYUV builds the RGB→YCbCr matrix from the luma weights. For limited
// range the luma row is scaled to 219/255 with a +16 pedestal and the
// chroma rows to 224/255.
func rgbToYUV(kr, kb float64, limited bool) matrix {
	kg := 1 - kr - kb

	yScale, cScale := 1.0, 1.0
	var pedestal float64
	if limited {
		yScale = 219.0 / 255.0
		cScale = 224.0 / 255.0
		pedestal = 16
	}

	return matrix{
		coef: [3][3]float64{
			{kr * yScale, kg * yScale, kb * yScale},
			{-0.5 * kr / (1 - kb) * cScale, -0.5 * kg / (1 - kb) * cScale, 0.5 * cScale},
			{0.5 * cScale, -0.5 * kg / (1 - kr) * cScale, -0.5 * kb / (1 - kr) * cScale},
		},
		off: [3]float64{pedestal, 128, 128},
	}
}

// yuvToRGB builds the YCbCr→RGB matrix from the luma weights. For limited
// range input the inverse scaling and pedestal are folded into the
// coefficients and offsets.
func yuvToRGB(kr, kb float64, limited bool) matrix {
	kg := 1 - kr - kb

	yScale, cScale := 1.0, 1.0
	var pedestal float64
	if limited {
		yScale = 255.0 / 219.0
		cScale = 255.0 / 224.0
		pedestal = 16
	}

	rCr := 2 * (1 - kr) * cScale
	gCb := 2 * kb * (1 - kb) / kg * cScale
	gCr := 2 * kr * (1 - kr) / kg * cScale
	bCb := 2 * (1 - kb) * cScale

	return matrix{
		coef: [3][3]float64{
			{yScale, 0, rCr},
			{yScale, -gCb, -gCr},
			{yScale, bCb, 0},
		},
		off: [3]float64{
			-yScale*pedestal - 128*rCr,
			-yScale*pedestal + 128*(gCb+gCr),
			-yScale*pedestal - 128*bCb,
		},
	}
}

// pack quantizes the matrix into the six register values.
func (m matrix) pack() [6]uint32 {
	var regs [6]uint32
	for row := 0; row < 3; row++ {
		regs[row*2] = coefField(m.coef[row][0]) | coefField(m.coef[row][1])<<16
		regs[row*2+1] = coefField(m.coef[row][2]) | offsetField(m.off[row])<<16
	}
	return regs
}

func coefField(c float64) uint32 {
	return signedField(math.Round(c * coefOne))
}

func offsetField(o float64) uint32 {
	return signedField(math.Round(o))
}

func signedField(v float64) uint32 {
	return uint32(int32(v)) & fieldMask
}

// Ensure Converter implements ports.ColorConverter
var _ ports.ColorConverter = (*Converter)(nil)
