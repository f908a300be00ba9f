// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"

	"github.com/user/pixelproc/pkg/pipe"
	"github.com/user/pixelproc/pkg/pixel"
	"github.com/user/pixelproc/pkg/pixelproc"
	"github.com/user/pixelproc/pkg/ports"
	"github.com/user/pixelproc/pkg/stages/packer"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for pixelproc.
type Config struct {
	// Logging
	LogLevel string `yaml:"log_level"`

	// Per-pipe negotiation requests
	Main PipeConfig `yaml:"main"`
	Aux  PipeConfig `yaml:"aux"`

	// Debug
	DebugDir string `yaml:"debug_dir"`
}

// PipeConfig is the negotiation request for one pipe. Omitted blocks and
// zero values leave the pipe's current state alone.
type PipeConfig struct {
	Sink           SinkConfig      `yaml:"sink"`
	Source         SourceConfig    `yaml:"source"`
	Crop           *RectConfig     `yaml:"crop"`
	Compose        *SizeConfig     `yaml:"compose"`
	SinkInterval   *IntervalConfig `yaml:"sink_interval"`
	SourceInterval *IntervalConfig `yaml:"source_interval"`
	Gamma          bool            `yaml:"gamma"`
}

// SinkConfig describes the sink pad format.
type SinkConfig struct {
	Width      uint32 `yaml:"width"`
	Height     uint32 `yaml:"height"`
	Code       string `yaml:"code"`
	Colorspace string `yaml:"colorspace"`
}

// SourceConfig describes the source pad format. Only the encoding is
// selectable; the size follows the negotiated geometry.
type SourceConfig struct {
	Code string `yaml:"code"`
}

// RectConfig is a selection rectangle.
type RectConfig struct {
	Left   uint32 `yaml:"left"`
	Top    uint32 `yaml:"top"`
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// SizeConfig is a width/height pair.
type SizeConfig struct {
	Width  uint32 `yaml:"width"`
	Height uint32 `yaml:"height"`
}

// IntervalConfig is a frame interval in seconds per frame.
type IntervalConfig struct {
	Numerator   uint32 `yaml:"numerator"`
	Denominator uint32 `yaml:"denominator"`
}

// Defaults returns a Config with default values. Pipe blocks default to
// empty, which applies nothing and keeps each pipe at its construction
// state.
func Defaults() Config {
	return Config{
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the
// defaults and validates the result.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that names resolve and that present blocks are
// complete. It does not apply the hardware clamping rules; those belong
// to the pipes.
func (c Config) Validate() error {
	if err := c.Main.validate("main"); err != nil {
		return err
	}
	return c.Aux.validate("aux")
}

func (p PipeConfig) validate(name string) error {
	if p.Sink.Code != "" {
		code, err := pixel.ParseEncoding(p.Sink.Code)
		if err != nil {
			return fmt.Errorf("%s.sink.code: %w", name, err)
		}
		if !packer.Supports(pixel.PadSink, code) {
			return fmt.Errorf("%s.sink.code: %s is not a sink encoding", name, code)
		}
	}
	if p.Sink.Colorspace != "" {
		if _, err := pixel.ParseColorspace(p.Sink.Colorspace); err != nil {
			return fmt.Errorf("%s.sink.colorspace: %w", name, err)
		}
	}
	if p.Source.Code != "" {
		code, err := pixel.ParseEncoding(p.Source.Code)
		if err != nil {
			return fmt.Errorf("%s.source.code: %w", name, err)
		}
		if !packer.Supports(pixel.PadSource, code) {
			return fmt.Errorf("%s.source.code: %s is not a source encoding", name, code)
		}
	}
	if p.Crop != nil && (p.Crop.Width == 0 || p.Crop.Height == 0) {
		return fmt.Errorf("%s.crop: width and height are required", name)
	}
	if p.Compose != nil && (p.Compose.Width == 0 || p.Compose.Height == 0) {
		return fmt.Errorf("%s.compose: width and height are required", name)
	}
	if p.SinkInterval != nil && (p.SinkInterval.Numerator == 0 || p.SinkInterval.Denominator == 0) {
		return fmt.Errorf("%s.sink_interval: numerator and denominator are required", name)
	}
	if p.SourceInterval != nil && (p.SourceInterval.Numerator == 0 || p.SourceInterval.Denominator == 0) {
		return fmt.Errorf("%s.source_interval: numerator and denominator are required", name)
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() ports.LogLevel {
	return ports.ParseLogLevel(c.LogLevel)
}

// ToScenario converts one pipe's block into a negotiation scenario. The
// pipe name resolves the way entity names do, so "main", "aux" and full
// entity names all work.
func (c Config) ToScenario(pipeName string) (pixelproc.Scenario, error) {
	id, err := pipe.ParseID(pipeName)
	if err != nil {
		return pixelproc.Scenario{}, err
	}

	pc := c.Main
	if id == ports.PipeAux {
		pc = c.Aux
	}

	b := pixelproc.NewScenarioBuilder()

	if pc.Sink != (SinkConfig{}) {
		f := pixel.DefaultFormat(pixel.PadSink)
		if pc.Sink.Width != 0 {
			f.Width = pc.Sink.Width
		}
		if pc.Sink.Height != 0 {
			f.Height = pc.Sink.Height
		}
		if pc.Sink.Code != "" {
			code, err := pixel.ParseEncoding(pc.Sink.Code)
			if err != nil {
				return pixelproc.Scenario{}, fmt.Errorf("sink code: %w", err)
			}
			f.Code = code
		}
		if pc.Sink.Colorspace != "" {
			cs, err := pixel.ParseColorspace(pc.Sink.Colorspace)
			if err != nil {
				return pixelproc.Scenario{}, fmt.Errorf("sink colorspace: %w", err)
			}
			f.Colorspace = cs
		}
		b.WithSinkFormat(f)
	}

	if pc.Crop != nil {
		b.WithCrop(pixel.Rect{
			Left:   pc.Crop.Left,
			Top:    pc.Crop.Top,
			Width:  pc.Crop.Width,
			Height: pc.Crop.Height,
		})
	}
	if pc.Compose != nil {
		b.WithComposeSize(pc.Compose.Width, pc.Compose.Height)
	}

	if pc.Source.Code != "" {
		code, err := pixel.ParseEncoding(pc.Source.Code)
		if err != nil {
			return pixelproc.Scenario{}, fmt.Errorf("source code: %w", err)
		}
		b.WithSourceEncoding(code)
	}

	if pc.SinkInterval != nil {
		b.WithSinkInterval(pixel.Fraction{
			Numerator:   pc.SinkInterval.Numerator,
			Denominator: pc.SinkInterval.Denominator,
		})
	}
	if pc.SourceInterval != nil {
		b.WithSourceInterval(pixel.Fraction{
			Numerator:   pc.SourceInterval.Numerator,
			Denominator: pc.SourceInterval.Denominator,
		})
	}

	if pc.Gamma {
		b.WithGamma(true)
	}

	return b.Build(), nil
}
