// Package pipe implements the configuration core of one pixel processing
// pipe: pad format negotiation, crop and compose selection, frame interval
// negotiation, and the ordered register program applied at stream start.
//
// A pipe keeps two copies of its negotiable state. The active copy is what
// stream start programs into the hardware; the proposed copy is a scratch
// area callers negotiate against without side effects. Both copies obey the
// same clamping rules.
package pipe

import (
	"fmt"
	"strings"
	"sync"

	"github.com/user/pixelproc/pkg/pixel"
	"github.com/user/pixelproc/pkg/ports"
	"github.com/user/pixelproc/pkg/stages/framectl"
	"github.com/user/pixelproc/pkg/stages/geometry"
	"github.com/user/pixelproc/pkg/stages/packer"
)

// Which selects the state copy an operation works on.
type Which int

const (
	// Active is the state the hardware is programmed from.
	Active Which = iota
	// Proposed is a scratch copy for negotiating without side effects.
	Proposed
)

// String returns "active" or "proposed".
func (w Which) String() string {
	if w == Proposed {
		return "proposed"
	}
	return "active"
}

// SelectionTarget names the rectangle a selection operation addresses.
type SelectionTarget int

const (
	TargetCrop SelectionTarget = iota
	TargetCropBounds
	TargetCropDefault
	TargetCompose
)

// String returns the target name used in logs and errors.
func (t SelectionTarget) String() string {
	switch t {
	case TargetCrop:
		return "crop"
	case TargetCropBounds:
		return "crop-bounds"
	case TargetCropDefault:
		return "crop-default"
	case TargetCompose:
		return "compose"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// padState is one copy of the negotiable pad state.
type padState struct {
	sink    pixel.Format
	source  pixel.Format
	crop    pixel.Rect
	compose pixel.Rect
}

func defaultState() padState {
	sink := pixel.DefaultFormat(pixel.PadSink)
	return padState{
		sink:    sink,
		source:  pixel.DefaultFormat(pixel.PadSource),
		crop:    sink.Bound(),
		compose: sink.Bound(),
	}
}

// Pipe is the configuration state machine of one processing pipe.
type Pipe struct {
	id   ports.PipeID
	name string
	regs Registers

	bus   ports.RegisterBus
	power ports.PowerGate
	conv  ports.ColorConverter
	log   ports.Logger

	mu        sync.Mutex
	active    padState
	proposed  padState
	sinkIval  pixel.Fraction
	srcIval   pixel.Fraction
	frate     uint32
	gamma     bool
	streaming bool
}

// ParseID resolves an entity name to the pipe it drives. Names containing
// "main" select the main pipe, checked before "aux".
func ParseID(entityName string) (ports.PipeID, error) {
	switch {
	case strings.Contains(entityName, "main"):
		return ports.PipeMain, nil
	case strings.Contains(entityName, "aux"):
		return ports.PipeAux, nil
	default:
		return 0, fmt.Errorf("%w: cannot derive pipe from entity name %q", ErrUnsupported, entityName)
	}
}

// New builds the pipe addressed by entityName, with default formats on
// both pads, full-frame crop and compose, and a 30 fps interval. The main
// pipe hosts the color-conversion block and requires a converter; the
// auxiliary pipe ignores it. bus, power and log must be non-nil.
func New(entityName string, bus ports.RegisterBus, power ports.PowerGate, conv ports.ColorConverter, log ports.Logger) (*Pipe, error) {
	id, err := ParseID(entityName)
	if err != nil {
		return nil, err
	}
	if id == ports.PipeMain && conv == nil {
		return nil, fmt.Errorf("%w: main pipe requires a color converter", ErrInvalidArgument)
	}

	def := defaultState()
	return &Pipe{
		id:       id,
		name:     entityName,
		regs:     RegistersFor(id),
		bus:      bus,
		power:    power,
		conv:     conv,
		log:      log.WithComponent("pixelproc-" + id.String()),
		active:   def,
		proposed: def,
		sinkIval: pixel.DefaultInterval(),
		srcIval:  pixel.DefaultInterval(),
	}, nil
}

// ID returns the pipe identifier.
func (p *Pipe) ID() ports.PipeID { return p.id }

// Name returns the entity name the pipe was built from.
func (p *Pipe) Name() string { return p.name }

// Streaming reports whether the pipe has been started.
func (p *Pipe) Streaming() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.streaming
}

func (p *Pipe) state(which Which) *padState {
	if which == Proposed {
		return &p.proposed
	}
	return &p.active
}

// Format returns the pad's format from the chosen state copy.
func (p *Pipe) Format(which Which, pad pixel.Pad) pixel.Format {
	p.mu.Lock()
	defer p.mu.Unlock()

	st := p.state(which)
	if pad == pixel.PadSource {
		return st.source
	}
	return st.sink
}

// SetFormat negotiates a pad format and returns what was actually stored.
// The active state is locked while streaming. A sink update propagates to
// the source pad: the source takes the full sink format with its code
// replaced, YUV-range sinks mapping to packed YUYV and everything else to
// RGB565. Setting the active sink format also resets crop and compose to
// the full new frame.
func (p *Pipe) SetFormat(which Which, pad pixel.Pad, req pixel.Format) (pixel.Format, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if which == Active && p.streaming {
		return pixel.Format{}, fmt.Errorf("%w: cannot set %s format while streaming", ErrBusy, pad)
	}

	st := p.state(which)
	f := geometry.ClampFormat(pad, req)

	if pad == pixel.PadSink {
		src := f
		if f.Code.IsYUV() {
			src.Code = pixel.EncYUYV8_2X8
		} else {
			src.Code = pixel.EncRGB565_2X8LE
		}
		st.source = src
		p.log.Debug("%s source format follows sink: %s", which, src)
	}

	var old pixel.Format
	if pad == pixel.PadSource {
		old, st.source = st.source, f
	} else {
		old, st.sink = st.sink, f
	}

	if pad == pixel.PadSink && which == Active {
		st.crop = f.Bound()
		st.compose = f.Bound()
	}

	p.log.Debug("%s %s format: old %s new %s", which, pad, old, f)
	return f, nil
}

// Selection returns one of the sink pad's selection rectangles. Asking on
// the source pad fails; selections are a sink concept.
func (p *Pipe) Selection(which Which, pad pixel.Pad, target SelectionTarget) (pixel.Rect, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pad == pixel.PadSource {
		return pixel.Rect{}, fmt.Errorf("%w: no selections on the source pad", ErrInvalidArgument)
	}

	st := p.state(which)
	switch target {
	case TargetCrop:
		return st.crop, nil
	case TargetCropBounds, TargetCropDefault:
		return geometry.CropBound(st.sink), nil
	case TargetCompose:
		return st.compose, nil
	default:
		return pixel.Rect{}, fmt.Errorf("%w: unknown selection target %s", ErrInvalidArgument, target)
	}
}

// SetSelection negotiates the crop or compose rectangle and returns the
// clamped result. Setting the crop re-seeds the compose to the same
// rectangle; setting the compose clamps against the current crop. Both
// update the source pad size. Selections carry no busy check; they take
// effect at the next stream start.
func (p *Pipe) SetSelection(which Which, pad pixel.Pad, target SelectionTarget, req pixel.Rect) (pixel.Rect, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pad == pixel.PadSource {
		return pixel.Rect{}, fmt.Errorf("%w: no selections on the source pad", ErrInvalidArgument)
	}

	st := p.state(which)

	var r pixel.Rect
	switch target {
	case TargetCrop:
		r = geometry.ClampCrop(req, st.sink)
		st.crop = r
		st.compose = r
		p.log.Debug("%s crop: %s", which, r)
	case TargetCompose:
		r = geometry.ClampCompose(req, st.crop)
		st.compose = r
		p.log.Debug("%s compose: %s", which, r)
	default:
		return pixel.Rect{}, fmt.Errorf("%w: selection target %s is not settable", ErrInvalidArgument, target)
	}

	st.source.Width = r.Width
	st.source.Height = r.Height

	return r, nil
}

// FrameInterval returns the pad's frame interval. Intervals exist only in
// the active state.
func (p *Pipe) FrameInterval(pad pixel.Pad) pixel.Fraction {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pad == pixel.PadSource {
		return p.srcIval
	}
	return p.sinkIval
}

// SetFrameInterval negotiates a pad's frame interval while the pipe is
// idle. An unset request falls back to the current sink interval. Setting
// the sink interval resets frame skipping and propagates 1:1 to the
// source; setting the source interval picks the nearest reachable skip
// ratio and stores what the hardware will really deliver.
func (p *Pipe) SetFrameInterval(pad pixel.Pad, req pixel.Fraction) (pixel.Fraction, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.streaming {
		return pixel.Fraction{}, fmt.Errorf("%w: cannot set %s interval while streaming", ErrBusy, pad)
	}

	if req.IsUnset() {
		req = p.sinkIval
	}

	if pad == pixel.PadSink {
		// A sink interval change must not carry over a stale skip ratio.
		p.frate = 0
		p.sinkIval = req
		p.srcIval = req
		p.log.Debug("sink interval: %s", req)
		return req, nil
	}

	code, achieved := framectl.Negotiate(p.sinkIval, req)
	p.frate = code
	p.srcIval = achieved
	p.log.Debug("source interval: %s (skip code %d)", achieved, code)
	return achieved, nil
}

// SkipCode returns the current frame-skip code.
func (p *Pipe) SkipCode() uint32 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frate
}

// Encodings lists the media-bus encodings the pad accepts, in catalog
// order.
func (p *Pipe) Encodings(pad pixel.Pad) []pixel.Encoding {
	return packer.Encodings(pad)
}

// SizeRange returns the frame size bounds for an encoding, failing when
// the pad does not carry it.
func (p *Pipe) SizeRange(pad pixel.Pad, code pixel.Encoding) (min, max pixel.Size, err error) {
	if !packer.Supports(pad, code) {
		return pixel.Size{}, pixel.Size{}, fmt.Errorf("%w: %s pad does not carry %s", ErrInvalidArgument, pad, code)
	}
	min = pixel.Size{Width: pixel.FrameMinWidth, Height: pixel.FrameMinHeight}
	max = pixel.Size{Width: pixel.FrameMaxWidth, Height: pixel.FrameMaxHeight}
	return min, max, nil
}

// FrameIntervals lists the intervals reachable on a pad for the current
// sink interval: the sink interval itself on the sink pad, one interval
// per skip ratio on the source pad.
func (p *Pipe) FrameIntervals(pad pixel.Pad) []pixel.Fraction {
	p.mu.Lock()
	defer p.mu.Unlock()

	if pad == pixel.PadSink {
		return []pixel.Fraction{p.sinkIval}
	}
	ivals := framectl.Enumerate(p.sinkIval)
	return ivals[:]
}

// SetGammaCorrection stores the gamma-correction enable and, if the device
// is currently powered, applies it to the hardware right away. With the
// device gated off only the stored value changes; the next stream start
// applies it.
func (p *Pipe) SetGammaCorrection(enable bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.gamma = enable

	if !p.power.TryGet() {
		return nil
	}
	defer p.power.Put()
	return p.writeGamma()
}

// GammaCorrection returns the stored gamma-correction enable.
func (p *Pipe) GammaCorrection() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gamma
}

// ResetProposed restores the proposed state copy to the construction
// defaults.
func (p *Pipe) ResetProposed() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.proposed = defaultState()
}
