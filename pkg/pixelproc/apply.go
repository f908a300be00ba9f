package pixelproc

import (
	"context"
	"fmt"

	"github.com/ideamans/go-l10n"
	"github.com/user/pixelproc/pkg/pipe"
	"github.com/user/pixelproc/pkg/pixel"
	"github.com/user/pixelproc/pkg/ports"
	"github.com/user/pixelproc/pkg/stages/framectl"
)

// Result captures what a scenario settled on: the active pipe state after
// negotiation and the register program a stream start would apply.
type Result struct {
	Pipe  ports.PipeID
	Name  string
	State pipe.State
	Plan  pipe.ProgramPlan
}

// SkipRatio returns the forwarding ratio the negotiated skip code selects;
// the hardware keeps one frame in SkipRatio.
func (r *Result) SkipRatio() uint32 {
	return framectl.Ratios[r.State.SkipCode%uint32(len(framectl.Ratios))]
}

// Apply negotiates a scenario against one pipe. Steps run in a fixed
// order: sink format, crop, compose, source encoding, sink interval,
// source interval, gamma. Unset scenario fields skip their step. The
// context is checked before every step; a failed or cancelled step
// returns with the pipe keeping everything negotiated up to that point.
func (d *Device) Apply(ctx context.Context, id ports.PipeID, s Scenario) (*Result, error) {
	p := d.Pipe(id)
	if p == nil {
		return nil, fmt.Errorf("pixelproc: no pipe with id %d", uint32(id))
	}

	d.log.Info(l10n.F("Negotiating %s pipe", id))

	// 1. Sink format. Resets crop, compose and the source format, so
	// everything after works against the new frame.
	if s.SinkFormat != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		got, err := p.SetFormat(pipe.Active, pixel.PadSink, *s.SinkFormat)
		if err != nil {
			return nil, fmt.Errorf("sink format: %w", err)
		}
		d.log.Info(l10n.F("Sink format: %s", got))
	}

	// 2. Crop. Re-seeds the compose to the same rectangle.
	if s.Crop != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		got, err := p.SetSelection(pipe.Active, pixel.PadSink, pipe.TargetCrop, *s.Crop)
		if err != nil {
			return nil, fmt.Errorf("crop: %w", err)
		}
		d.log.Info(l10n.F("Crop: %s", got))
	}

	// 3. Compose.
	if s.Compose != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		got, err := p.SetSelection(pipe.Active, pixel.PadSink, pipe.TargetCompose, *s.Compose)
		if err != nil {
			return nil, fmt.Errorf("compose: %w", err)
		}
		d.log.Info(l10n.F("Compose: %s", got))
	}

	// 4. Source encoding, keeping the size the geometry negotiated.
	if s.SourceEncoding != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f := p.Format(pipe.Active, pixel.PadSource)
		f.Code = *s.SourceEncoding
		got, err := p.SetFormat(pipe.Active, pixel.PadSource, f)
		if err != nil {
			return nil, fmt.Errorf("source encoding: %w", err)
		}
		d.log.Info(l10n.F("Source format: %s", got))
	}

	// 5. Sink interval. Clears frame skipping.
	if s.SinkInterval != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		got, err := p.SetFrameInterval(pixel.PadSink, *s.SinkInterval)
		if err != nil {
			return nil, fmt.Errorf("sink interval: %w", err)
		}
		d.log.Info(l10n.F("Sink interval: %s", got))
	}

	// 6. Source interval. Picks the nearest reachable skip ratio.
	if s.SourceInterval != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		got, err := p.SetFrameInterval(pixel.PadSource, *s.SourceInterval)
		if err != nil {
			return nil, fmt.Errorf("source interval: %w", err)
		}
		d.log.Info(l10n.F("Source interval: %s", got))
	}

	// 7. Gamma correction.
	if s.Gamma != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := p.SetGammaCorrection(*s.Gamma); err != nil {
			return nil, fmt.Errorf("gamma correction: %w", err)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	plan, err := p.Plan()
	if err != nil {
		return nil, fmt.Errorf("program plan: %w", err)
	}

	result := &Result{
		Pipe:  p.ID(),
		Name:  p.Name(),
		State: p.Snapshot(pipe.Active),
		Plan:  plan,
	}
	d.log.Info(l10n.F("Negotiated %s: %s -> %s, keeping 1 frame in %d",
		id, result.State.Sink, result.State.Source, result.SkipRatio()))
	return result, nil
}
