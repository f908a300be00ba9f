package pixelproc

import (
	"github.com/user/pixelproc/pkg/pixel"
)

// Scenario is a declarative negotiation request against one pipe. Nil
// fields are skipped, leaving the pipe's current value in place; set
// fields go through the pipe's normal clamping, so what a scenario asks
// for and what it gets can differ.
type Scenario struct {
	// SinkFormat renegotiates the sink pad. This resets crop, compose
	// and the source format, so it always applies first.
	SinkFormat *pixel.Format

	// Crop selects the region of the sink frame to process.
	Crop *pixel.Rect

	// Compose sets the scaler output size. Offsets are not supported
	// and get dropped.
	Compose *pixel.Rect

	// SourceEncoding swaps the source pad's encoding while keeping the
	// size the geometry negotiated.
	SourceEncoding *pixel.Encoding

	// SinkInterval sets the incoming frame interval and clears any
	// frame skipping.
	SinkInterval *pixel.Fraction

	// SourceInterval requests an outgoing frame interval; the pipe
	// picks the nearest reachable skip ratio.
	SourceInterval *pixel.Fraction

	// Gamma toggles gamma correction.
	Gamma *bool
}

// ScenarioBuilder provides a fluent interface for building a Scenario.
type ScenarioBuilder struct {
	scenario Scenario
}

// NewScenarioBuilder creates a ScenarioBuilder with nothing set; the
// resulting scenario leaves an untouched pipe at its defaults.
func NewScenarioBuilder() *ScenarioBuilder {
	return &ScenarioBuilder{}
}

// WithSinkFormat sets the sink pad format to negotiate.
func (b *ScenarioBuilder) WithSinkFormat(f pixel.Format) *ScenarioBuilder {
	b.scenario.SinkFormat = &f
	return b
}

// WithSinkImage sets a sink format of the given size and encoding with
// default colorimetry.
func (b *ScenarioBuilder) WithSinkImage(width, height uint32, code pixel.Encoding) *ScenarioBuilder {
	f := pixel.DefaultFormat(pixel.PadSink)
	f.Width = width
	f.Height = height
	f.Code = code
	return b.WithSinkFormat(f)
}

// WithCrop sets the crop rectangle.
func (b *ScenarioBuilder) WithCrop(r pixel.Rect) *ScenarioBuilder {
	b.scenario.Crop = &r
	return b
}

// WithCompose sets the compose rectangle.
func (b *ScenarioBuilder) WithCompose(r pixel.Rect) *ScenarioBuilder {
	b.scenario.Compose = &r
	return b
}

// WithComposeSize sets the compose rectangle by size alone.
func (b *ScenarioBuilder) WithComposeSize(width, height uint32) *ScenarioBuilder {
	return b.WithCompose(pixel.Rect{Width: width, Height: height})
}

// WithSourceEncoding sets the source pad encoding.
func (b *ScenarioBuilder) WithSourceEncoding(code pixel.Encoding) *ScenarioBuilder {
	b.scenario.SourceEncoding = &code
	return b
}

// WithSinkInterval sets the incoming frame interval.
func (b *ScenarioBuilder) WithSinkInterval(ival pixel.Fraction) *ScenarioBuilder {
	b.scenario.SinkInterval = &ival
	return b
}

// WithSourceInterval sets the requested outgoing frame interval.
func (b *ScenarioBuilder) WithSourceInterval(ival pixel.Fraction) *ScenarioBuilder {
	b.scenario.SourceInterval = &ival
	return b
}

// WithGamma sets the gamma-correction enable.
func (b *ScenarioBuilder) WithGamma(enable bool) *ScenarioBuilder {
	b.scenario.Gamma = &enable
	return b
}

// Build returns the built Scenario.
func (b *ScenarioBuilder) Build() Scenario {
	return b.scenario
}

// PresetPassthrough negotiates the sink format and leaves geometry alone;
// crop and compose follow the new frame, so the pipe forwards it 1:1.
func PresetPassthrough(sink pixel.Format) Scenario {
	return NewScenarioBuilder().
		WithSinkFormat(sink).
		Build()
}

// PresetQuarter negotiates the sink format and scales the frame to a
// quarter of its area, half of each dimension.
func PresetQuarter(sink pixel.Format) Scenario {
	return NewScenarioBuilder().
		WithSinkFormat(sink).
		WithComposeSize(sink.Width/2, sink.Height/2).
		Build()
}

// PresetThumbnail negotiates the sink format, divides both dimensions by
// eight and keeps one frame in eight.
func PresetThumbnail(sink pixel.Format) Scenario {
	return NewScenarioBuilder().
		WithSinkFormat(sink).
		WithComposeSize(sink.Width/8, sink.Height/8).
		WithSinkInterval(pixel.DefaultInterval()).
		WithSourceInterval(pixel.Fraction{Numerator: 8, Denominator: 30}).
		Build()
}
