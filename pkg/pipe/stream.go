package pipe

import (
	"fmt"

	"github.com/user/pixelproc/pkg/pixel"
	"github.com/user/pixelproc/pkg/ports"
	"github.com/user/pixelproc/pkg/stages/downscale"
	"github.com/user/pixelproc/pkg/stages/packer"
)

// Start applies the full register program and marks the pipe streaming.
// The order is fixed: frame skipping, crop geometry, the scaler, color
// conversion on the main pipe, the pixel packer, then re-application of
// runtime controls. A bus or converter failure aborts the start and the
// pipe stays stopped; registers written before the failure keep their
// values.
func (p *Pipe) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streaming {
		return fmt.Errorf("%w: already streaming", ErrBusy)
	}

	if err := p.program(); err != nil {
		p.log.Error("stream start failed: %v", err)
		return err
	}

	p.streaming = true
	p.log.Info("streaming: crop %s compose %s -> %s @ %s",
		p.active.crop, p.active.compose, p.active.source, p.srcIval)
	return nil
}

// Stop marks the pipe idle. The hardware keeps its configuration; no
// registers are touched.
func (p *Pipe) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.streaming {
		return
	}
	p.streaming = false
	p.log.Info("stopped")
}

func (p *Pipe) program() error {
	if err := p.programFrameRate(); err != nil {
		return err
	}
	if err := p.programCrop(); err != nil {
		return err
	}
	if err := p.programScaler(); err != nil {
		return err
	}
	if p.id == ports.PipeMain {
		if err := p.programColorConv(); err != nil {
			return err
		}
	}
	if err := p.programPacker(); err != nil {
		return err
	}

	// Re-apply user controls so the hardware matches the stored values.
	return p.writeGamma()
}

func (p *Pipe) programFrameRate() error {
	if err := p.bus.ClearBits(p.id, p.regs.FCTCR, FrateMask); err != nil {
		return fmt.Errorf("clear frame-skip code: %w", err)
	}
	if err := p.bus.SetBits(p.id, p.regs.FCTCR, p.frate); err != nil {
		return fmt.Errorf("set frame-skip code: %w", err)
	}
	return nil
}

func (p *Pipe) programCrop() error {
	crop := p.active.crop

	start := crop.Top<<VStartShift | crop.Left<<HStartShift
	if err := p.bus.Write(p.id, p.regs.CRSTR, start); err != nil {
		return fmt.Errorf("write crop origin: %w", err)
	}

	size := crop.Width<<HSizeShift | crop.Height<<VSizeShift | CropEnable
	if err := p.bus.Write(p.id, p.regs.CRSZR, size); err != nil {
		return fmt.Errorf("write crop size: %w", err)
	}
	return nil
}

func (p *Pipe) programScaler() error {
	plan := downscale.Compute(p.active.crop, p.active.compose)
	p.log.Debug("decimation: hdec 0x%x vdec 0x%x", plan.HDec, plan.VDec)
	p.log.Debug("downsize: hratio 0x%x vratio 0x%x hdiv 0x%x vdiv 0x%x",
		plan.HRatio, plan.VRatio, plan.HDiv, plan.VDiv)

	if err := p.bus.ClearBits(p.id, p.regs.DCCR, DecEnable); err != nil {
		return fmt.Errorf("disable decimation: %w", err)
	}
	if plan.Decimates() {
		val := plan.HDec<<HDecShift | plan.VDec<<VDecShift | DecEnable
		if err := p.bus.Write(p.id, p.regs.DCCR, val); err != nil {
			return fmt.Errorf("write decimation: %w", err)
		}
	}

	if err := p.bus.ClearBits(p.id, p.regs.DSCR, DownsizeEnable); err != nil {
		return fmt.Errorf("disable downsize: %w", err)
	}
	ratio := plan.HRatio<<HRatioShift | plan.VRatio<<VRatioShift
	if err := p.bus.Write(p.id, p.regs.DSRTIOR, ratio); err != nil {
		return fmt.Errorf("write downsize ratio: %w", err)
	}
	size := p.active.compose.Width<<HSizeShift | p.active.compose.Height<<VSizeShift
	if err := p.bus.Write(p.id, p.regs.DSSZR, size); err != nil {
		return fmt.Errorf("write downsize target: %w", err)
	}

	// The divider write carries the enable bit; ratio and target size
	// must be latched before it.
	div := plan.HDiv<<HDivShift | plan.VDiv<<VDivShift | DownsizeEnable
	if err := p.bus.Write(p.id, p.regs.DSCR, div); err != nil {
		return fmt.Errorf("enable downsize: %w", err)
	}
	return nil
}

func (p *Pipe) programColorConv() error {
	params, err := p.conv.Configure(p.active.sink, p.active.source)
	if err != nil {
		return fmt.Errorf("configure color conversion: %w", err)
	}

	for i, coeff := range params.Matrix {
		if err := p.bus.Write(p.id, p.regs.YUVRR1+uint32(4*i), coeff); err != nil {
			return fmt.Errorf("write conversion matrix: %w", err)
		}
	}

	var val uint32
	if params.Clamping {
		val |= ConvClamp
	}
	if params.ClampingAsRGB {
		val |= ConvTypeRGB
	}
	if params.Enable {
		val |= ConvEnable
	}
	if err := p.bus.Write(p.id, p.regs.YUVCR, val); err != nil {
		return fmt.Errorf("write conversion control: %w", err)
	}
	return nil
}

func (p *Pipe) programPacker() error {
	entry := packer.ByCode(pixel.PadSource, p.active.source.Code)
	if entry == nil {
		return fmt.Errorf("%w: source encoding %s has no packer entry", ErrInvalidArgument, p.active.source.Code)
	}
	if err := p.bus.Write(p.id, p.regs.PPCR, entry.RegisterValue()); err != nil {
		return fmt.Errorf("write packer control: %w", err)
	}
	return nil
}

func (p *Pipe) writeGamma() error {
	var val uint32
	if p.gamma {
		val = GammaEnable
	}
	if err := p.bus.Write(p.id, p.regs.GMCR, val); err != nil {
		return fmt.Errorf("write gamma control: %w", err)
	}
	return nil
}

// ProgramPlan describes what Start will program, without bus access.
type ProgramPlan struct {
	SkipCode uint32
	Crop     pixel.Rect
	Compose  pixel.Rect
	Scaler   downscale.Plan
	Packer   packer.Entry
	Gamma    bool

	// Conv is set on the main pipe only.
	Conv *ports.ColorConvParams
}

// Plan computes the register program Start would apply, touching neither
// the bus nor the pipe state. It fails the same way Start does for an
// unprogrammable state.
func (p *Pipe) Plan() (ProgramPlan, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry := packer.ByCode(pixel.PadSource, p.active.source.Code)
	if entry == nil {
		return ProgramPlan{}, fmt.Errorf("%w: source encoding %s has no packer entry", ErrInvalidArgument, p.active.source.Code)
	}

	plan := ProgramPlan{
		SkipCode: p.frate,
		Crop:     p.active.crop,
		Compose:  p.active.compose,
		Scaler:   downscale.Compute(p.active.crop, p.active.compose),
		Packer:   *entry,
		Gamma:    p.gamma,
	}

	if p.id == ports.PipeMain {
		params, err := p.conv.Configure(p.active.sink, p.active.source)
		if err != nil {
			return ProgramPlan{}, fmt.Errorf("configure color conversion: %w", err)
		}
		plan.Conv = &params
	}

	return plan, nil
}

// State is a copy of one state of the pipe together with the values
// shared between the copies.
type State struct {
	Sink           pixel.Format
	Source         pixel.Format
	Crop           pixel.Rect
	Compose        pixel.Rect
	SinkInterval   pixel.Fraction
	SourceInterval pixel.Fraction
	SkipCode       uint32
	Gamma          bool
	Streaming      bool
}

// Snapshot returns a consistent copy of the chosen state.
func (p *Pipe) Snapshot(which Which) State {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := p.state(which)
	return State{
		Sink:           st.sink,
		Source:         st.source,
		Crop:           st.crop,
		Compose:        st.compose,
		SinkInterval:   p.sinkIval,
		SourceInterval: p.srcIval,
		SkipCode:       p.frate,
		Gamma:          p.gamma,
		Streaming:      p.streaming,
	}
}
