// Package summarizer renders negotiation results as human-readable
// reports.
package summarizer

import (
	"time"

	"github.com/user/pixelproc/pkg/pixel"
	"github.com/user/pixelproc/pkg/pixelproc"
	"github.com/user/pixelproc/pkg/ports"
	"github.com/user/pixelproc/pkg/stages/downscale"
	"github.com/user/pixelproc/pkg/stages/framectl"
)

// Summary contains everything reported about one negotiated pipe.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Pipe identity
	Pipe PipeInfo

	// Negotiated pad formats
	Sink   FormatInfo
	Source FormatInfo

	// Geometry
	Crop    RectInfo
	Compose RectInfo

	// Frame rate and skipping
	Rate RateInfo

	// Scaler program
	Scaler ScalerInfo

	// Register operations applied by stream start, in programming order.
	// Empty for a negotiation-only run.
	Program []RegisterOpInfo
}

// PipeInfo identifies the summarized pipe.
type PipeInfo struct {
	ID     string
	Entity string
	Gamma  bool
}

// FormatInfo describes one pad's negotiated format.
type FormatInfo struct {
	Width        uint32
	Height       uint32
	Code         string
	Colorspace   string
	YCbCrEnc     string
	Quantization string
}

// RectInfo is a selection rectangle.
type RectInfo struct {
	Left   uint32
	Top    uint32
	Width  uint32
	Height uint32
}

// RateInfo describes the negotiated frame intervals and skip ratio.
type RateInfo struct {
	SinkInterval   string
	SourceInterval string
	SinkFPS        float64
	SourceFPS      float64
	SkipCode       uint32
	SkipRatio      uint32 // the hardware keeps one frame in SkipRatio
}

// ScalerInfo mirrors the planned decimation and downsize fields.
type ScalerInfo struct {
	HDec     uint32
	VDec     uint32
	HPostDec uint32
	VPostDec uint32
	HRatio   uint32
	VRatio   uint32
	HDiv     uint32
	VDiv     uint32
}

// RegisterOpInfo is one journaled register operation.
type RegisterOpInfo struct {
	Pipe   string
	Action string
	Offset uint32
	Value  uint32
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// FromResult creates a Builder pre-filled from a negotiation result.
// Callers typically chain WithProgram for the register journal.
func FromResult(res *pixelproc.Result) *Builder {
	return NewBuilder().
		WithPipe(res.Pipe.String(), res.Name, res.State.Gamma).
		WithFormats(res.State.Sink, res.State.Source).
		WithGeometry(res.State.Crop, res.State.Compose).
		WithRate(res.State.SinkInterval, res.State.SourceInterval, res.State.SkipCode).
		WithScaler(res.Plan.Scaler)
}

// WithPipe sets the pipe identity.
func (b *Builder) WithPipe(id, entity string, gamma bool) *Builder {
	b.summary.Pipe = PipeInfo{
		ID:     id,
		Entity: entity,
		Gamma:  gamma,
	}
	return b
}

// WithFormats sets the negotiated pad formats.
func (b *Builder) WithFormats(sink, source pixel.Format) *Builder {
	b.summary.Sink = formatInfo(sink)
	b.summary.Source = formatInfo(source)
	return b
}

// WithGeometry sets the crop and compose rectangles.
func (b *Builder) WithGeometry(crop, compose pixel.Rect) *Builder {
	b.summary.Crop = rectInfo(crop)
	b.summary.Compose = rectInfo(compose)
	return b
}

// WithRate sets the frame intervals and derives the forwarding ratio from
// the skip code.
func (b *Builder) WithRate(sink, source pixel.Fraction, skipCode uint32) *Builder {
	b.summary.Rate = RateInfo{
		SinkInterval:   sink.String(),
		SourceInterval: source.String(),
		SinkFPS:        sink.FPS(),
		SourceFPS:      source.FPS(),
		SkipCode:       skipCode,
		SkipRatio:      framectl.Ratios[skipCode%uint32(len(framectl.Ratios))],
	}
	return b
}

// WithScaler sets the scaler plan fields.
func (b *Builder) WithScaler(plan downscale.Plan) *Builder {
	b.summary.Scaler = ScalerInfo{
		HDec:     plan.HDec,
		VDec:     plan.VDec,
		HPostDec: plan.HPostDec,
		VPostDec: plan.VPostDec,
		HRatio:   plan.HRatio,
		VRatio:   plan.VRatio,
		HDiv:     plan.HDiv,
		VDiv:     plan.VDiv,
	}
	return b
}

// WithProgram sets the register journal.
func (b *Builder) WithProgram(journal []ports.RegisterOp) *Builder {
	ops := make([]RegisterOpInfo, len(journal))
	for i, op := range journal {
		ops[i] = RegisterOpInfo{
			Pipe:   op.Pipe.String(),
			Action: op.Action.String(),
			Offset: op.Offset,
			Value:  op.Value,
		}
	}
	b.summary.Program = ops
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

func formatInfo(f pixel.Format) FormatInfo {
	return FormatInfo{
		Width:        f.Width,
		Height:       f.Height,
		Code:         f.Code.String(),
		Colorspace:   f.Colorspace.String(),
		YCbCrEnc:     f.YCbCrEnc.String(),
		Quantization: f.Quantization.String(),
	}
}

func rectInfo(r pixel.Rect) RectInfo {
	return RectInfo{
		Left:   r.Left,
		Top:    r.Top,
		Width:  r.Width,
		Height: r.Height,
	}
}
