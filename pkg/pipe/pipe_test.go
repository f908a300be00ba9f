package pipe

import (
	"errors"
	"testing"

	"github.com/user/pixelproc/pkg/mocks"
	"github.com/user/pixelproc/pkg/pixel"
	"github.com/user/pixelproc/pkg/ports"
)

func newTestPipe(t *testing.T, name string) (*Pipe, *mocks.RegisterBus, *mocks.PowerGate, *mocks.ColorConverter) {
	t.Helper()
	bus := mocks.NewRegisterBus()
	power := mocks.NewPowerGate(false)
	conv := &mocks.ColorConverter{}
	p, err := New(name, bus, power, conv, mocks.NewLogger())
	if err != nil {
		t.Fatalf("New(%q): %v", name, err)
	}
	return p, bus, power, conv
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name    string
		want    ports.PipeID
		wantErr bool
	}{
		{"dcmipp_main_pixelproc", ports.PipeMain, false},
		{"dcmipp_aux_pixelproc", ports.PipeAux, false},
		{"main_aux", ports.PipeMain, false}, // "main" wins
		{"dcmipp_dump_pixelproc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseID(tt.name)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupported) {
					t.Fatalf("err = %v, want ErrUnsupported", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if id != tt.want {
				t.Errorf("id = %v, want %v", id, tt.want)
			}
		})
	}
}

func TestNewMainRequiresConverter(t *testing.T) {
	bus := mocks.NewRegisterBus()
	power := mocks.NewPowerGate(false)

	if _, err := New("dcmipp_main_pixelproc", bus, power, nil, mocks.NewLogger()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("main without converter: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := New("dcmipp_aux_pixelproc", bus, power, nil, mocks.NewLogger()); err != nil {
		t.Errorf("aux without converter: err = %v, want nil", err)
	}
}

func TestNewDefaults(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_main_pixelproc")

	for _, which := range []Which{Active, Proposed} {
		sink := p.Format(which, pixel.PadSink)
		if sink.Code != pixel.EncRGB888_1X24 || sink.Width != 640 || sink.Height != 480 {
			t.Errorf("%s sink = %s, want 640x480 RGB888_1X24", which, sink)
		}
		src := p.Format(which, pixel.PadSource)
		if src.Code != pixel.EncRGB565_2X8LE || src.Width != 640 || src.Height != 480 {
			t.Errorf("%s source = %s, want 640x480 RGB565_2X8LE", which, src)
		}

		crop, err := p.Selection(which, pixel.PadSink, TargetCrop)
		if err != nil {
			t.Fatalf("Selection crop: %v", err)
		}
		full := pixel.Rect{Width: 640, Height: 480}
		if crop != full {
			t.Errorf("%s crop = %v, want %v", which, crop, full)
		}
		compose, _ := p.Selection(which, pixel.PadSink, TargetCompose)
		if compose != full {
			t.Errorf("%s compose = %v, want %v", which, compose, full)
		}
	}

	def := pixel.DefaultInterval()
	if got := p.FrameInterval(pixel.PadSink); got != def {
		t.Errorf("sink interval = %v, want %v", got, def)
	}
	if got := p.FrameInterval(pixel.PadSource); got != def {
		t.Errorf("source interval = %v, want %v", got, def)
	}
	if p.Streaming() {
		t.Error("new pipe reports streaming")
	}
	if p.GammaCorrection() {
		t.Error("new pipe reports gamma on")
	}
	if p.SkipCode() != 0 {
		t.Errorf("skip code = %d, want 0", p.SkipCode())
	}
}

func TestSetFormatSinkPropagation(t *testing.T) {
	tests := []struct {
		name     string
		sinkCode pixel.Encoding
		wantSrc  pixel.Encoding
	}{
		{"rgb sink propagates rgb565", pixel.EncRGB888_1X24, pixel.EncRGB565_2X8LE},
		{"yuv sink propagates yuyv", pixel.EncYUV8_1X24, pixel.EncYUYV8_2X8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, _, _ := newTestPipe(t, "dcmipp_main_pixelproc")

			req := pixel.DefaultFormat(pixel.PadSink)
			req.Code = tt.sinkCode
			req.Width = 1920
			req.Height = 1080

			got, err := p.SetFormat(Active, pixel.PadSink, req)
			if err != nil {
				t.Fatalf("SetFormat: %v", err)
			}
			if got.Code != tt.sinkCode || got.Width != 1920 || got.Height != 1080 {
				t.Errorf("stored sink = %s", got)
			}

			src := p.Format(Active, pixel.PadSource)
			if src.Code != tt.wantSrc {
				t.Errorf("source code = %s, want %s", src.Code, tt.wantSrc)
			}
			if src.Width != 1920 || src.Height != 1080 {
				t.Errorf("source size = %dx%d, want 1920x1080", src.Width, src.Height)
			}

			// Active sink set re-seeds crop and compose to the new frame.
			crop, _ := p.Selection(Active, pixel.PadSink, TargetCrop)
			compose, _ := p.Selection(Active, pixel.PadSink, TargetCompose)
			full := pixel.Rect{Width: 1920, Height: 1080}
			if crop != full || compose != full {
				t.Errorf("crop %v compose %v, want %v", crop, compose, full)
			}
		})
	}
}

func TestSetFormatSourceKeepsSinkAndCrop(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_aux_pixelproc")

	req := pixel.DefaultFormat(pixel.PadSource)
	req.Code = pixel.EncUYVY8_2X8
	req.Width = 320
	req.Height = 240

	got, err := p.SetFormat(Active, pixel.PadSource, req)
	if err != nil {
		t.Fatalf("SetFormat: %v", err)
	}
	if got.Code != pixel.EncUYVY8_2X8 || got.Width != 320 {
		t.Errorf("stored source = %s", got)
	}

	sink := p.Format(Active, pixel.PadSink)
	if sink.Width != 640 || sink.Code != pixel.EncRGB888_1X24 {
		t.Errorf("sink changed: %s", sink)
	}
	crop, _ := p.Selection(Active, pixel.PadSink, TargetCrop)
	if (crop != pixel.Rect{Width: 640, Height: 480}) {
		t.Errorf("crop changed: %v", crop)
	}
}

func TestSetFormatClampsUnknownCode(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_main_pixelproc")

	req := pixel.DefaultFormat(pixel.PadSink)
	req.Code = pixel.EncYUYV8_2X8 // source-only code

	got, err := p.SetFormat(Active, pixel.PadSink, req)
	if err != nil {
		t.Fatalf("SetFormat: %v", err)
	}
	if got.Code != pixel.EncRGB888_1X24 {
		t.Errorf("code = %s, want sink default", got.Code)
	}
}

func TestSetFormatBusyOnlyActive(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_aux_pixelproc")

	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	req := pixel.DefaultFormat(pixel.PadSink)
	if _, err := p.SetFormat(Active, pixel.PadSink, req); !errors.Is(err, ErrBusy) {
		t.Errorf("active set while streaming: err = %v, want ErrBusy", err)
	}
	if _, err := p.SetFormat(Proposed, pixel.PadSink, req); err != nil {
		t.Errorf("proposed set while streaming: err = %v, want nil", err)
	}

	p.Stop()
	if _, err := p.SetFormat(Active, pixel.PadSink, req); err != nil {
		t.Errorf("active set after stop: err = %v, want nil", err)
	}
}

func TestSetFormatProposedLeavesActiveAlone(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_main_pixelproc")

	req := pixel.DefaultFormat(pixel.PadSink)
	req.Width = 1280
	req.Height = 720

	if _, err := p.SetFormat(Proposed, pixel.PadSink, req); err != nil {
		t.Fatalf("SetFormat: %v", err)
	}

	if got := p.Format(Proposed, pixel.PadSink); got.Width != 1280 {
		t.Errorf("proposed sink = %s, want 1280 wide", got)
	}
	if got := p.Format(Active, pixel.PadSink); got.Width != 640 {
		t.Errorf("active sink = %s, want untouched 640 wide", got)
	}

	// A proposed sink set propagates to the proposed source but does not
	// re-seed the proposed selections.
	if got := p.Format(Proposed, pixel.PadSource); got.Width != 1280 {
		t.Errorf("proposed source = %s, want 1280 wide", got)
	}
	crop, _ := p.Selection(Proposed, pixel.PadSink, TargetCrop)
	if (crop != pixel.Rect{Width: 640, Height: 480}) {
		t.Errorf("proposed crop re-seeded: %v", crop)
	}
}

func TestSelectionTargetsAndErrors(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_main_pixelproc")

	bounds, err := p.Selection(Active, pixel.PadSink, TargetCropBounds)
	if err != nil {
		t.Fatalf("bounds: %v", err)
	}
	def, err := p.Selection(Active, pixel.PadSink, TargetCropDefault)
	if err != nil {
		t.Fatalf("default: %v", err)
	}
	full := pixel.Rect{Width: 640, Height: 480}
	if bounds != full || def != full {
		t.Errorf("bounds %v default %v, want %v", bounds, def, full)
	}

	if _, err := p.Selection(Active, pixel.PadSource, TargetCrop); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("source pad: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := p.Selection(Active, pixel.PadSink, SelectionTarget(99)); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown target: err = %v, want ErrInvalidArgument", err)
	}
}

func TestSetSelectionCrop(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_main_pixelproc")

	got, err := p.SetSelection(Active, pixel.PadSink, TargetCrop, pixel.Rect{Left: 100, Top: 50, Width: 320, Height: 240})
	if err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	want := pixel.Rect{Left: 100, Top: 50, Width: 320, Height: 240}
	if got != want {
		t.Errorf("crop = %v, want %v", got, want)
	}

	compose, _ := p.Selection(Active, pixel.PadSink, TargetCompose)
	if compose != want {
		t.Errorf("compose = %v, want re-seeded to crop %v", compose, want)
	}

	src := p.Format(Active, pixel.PadSource)
	if src.Width != 320 || src.Height != 240 {
		t.Errorf("source size = %dx%d, want 320x240", src.Width, src.Height)
	}
}

func TestSetSelectionCropClamped(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_main_pixelproc")

	got, err := p.SetSelection(Active, pixel.PadSink, TargetCrop, pixel.Rect{Left: 600, Top: 400, Width: 100, Height: 100})
	if err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	want := pixel.Rect{Left: 540, Top: 380, Width: 100, Height: 100} // shifted inside 640x480
	if got != want {
		t.Errorf("crop = %v, want %v", got, want)
	}
}

func TestSetSelectionCompose(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_main_pixelproc")

	tests := []struct {
		name string
		req  pixel.Rect
		want pixel.Rect
	}{
		{"in range", pixel.Rect{Width: 160, Height: 120}, pixel.Rect{Width: 160, Height: 120}},
		{"larger than crop", pixel.Rect{Width: 1280, Height: 960}, pixel.Rect{Width: 640, Height: 480}},
		{"below floor", pixel.Rect{Width: 1, Height: 1}, pixel.Rect{Width: 10, Height: 7}}, // 640/64, 480/64
		{"offset dropped", pixel.Rect{Left: 5, Top: 9, Width: 160, Height: 120}, pixel.Rect{Width: 160, Height: 120}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.SetSelection(Active, pixel.PadSink, TargetCompose, tt.req)
			if err != nil {
				t.Fatalf("SetSelection: %v", err)
			}
			if got != tt.want {
				t.Errorf("compose = %v, want %v", got, tt.want)
			}
			src := p.Format(Active, pixel.PadSource)
			if src.Width != tt.want.Width || src.Height != tt.want.Height {
				t.Errorf("source size = %dx%d, want %v", src.Width, src.Height, tt.want.Size())
			}
		})
	}
}

func TestSetSelectionErrors(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_main_pixelproc")

	if _, err := p.SetSelection(Active, pixel.PadSource, TargetCrop, pixel.Rect{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("source pad: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := p.SetSelection(Active, pixel.PadSink, TargetCropBounds, pixel.Rect{}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("read-only target: err = %v, want ErrInvalidArgument", err)
	}
}

func TestSetSelectionAllowedWhileStreaming(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_aux_pixelproc")

	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if _, err := p.SetSelection(Active, pixel.PadSink, TargetCrop, pixel.Rect{Width: 320, Height: 240}); err != nil {
		t.Errorf("crop while streaming: err = %v, want nil", err)
	}
}

func TestSetFrameInterval(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_main_pixelproc")

	// Sink set propagates 1:1 and resets skipping.
	got, err := p.SetFrameInterval(pixel.PadSink, pixel.Fraction{Numerator: 1, Denominator: 60})
	if err != nil {
		t.Fatalf("set sink: %v", err)
	}
	if (got != pixel.Fraction{Numerator: 1, Denominator: 60}) {
		t.Errorf("sink interval = %v", got)
	}
	if src := p.FrameInterval(pixel.PadSource); src != got {
		t.Errorf("source interval = %v, want %v", src, got)
	}

	// Source set picks the reachable skip ratio.
	got, err = p.SetFrameInterval(pixel.PadSource, pixel.Fraction{Numerator: 4, Denominator: 60})
	if err != nil {
		t.Fatalf("set source: %v", err)
	}
	if (got != pixel.Fraction{Numerator: 4, Denominator: 60}) {
		t.Errorf("achieved = %v, want 4/60", got)
	}
	if p.SkipCode() != 2 {
		t.Errorf("skip code = %d, want 2", p.SkipCode())
	}

	// Sink set again resets the stale skip ratio.
	if _, err := p.SetFrameInterval(pixel.PadSink, pixel.Fraction{Numerator: 1, Denominator: 25}); err != nil {
		t.Fatalf("set sink: %v", err)
	}
	if p.SkipCode() != 0 {
		t.Errorf("skip code = %d, want reset to 0", p.SkipCode())
	}
	if src := p.FrameInterval(pixel.PadSource); (src != pixel.Fraction{Numerator: 1, Denominator: 25}) {
		t.Errorf("source interval = %v, want 1/25", src)
	}
}

func TestSetFrameIntervalUnsetFallsBack(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_main_pixelproc")

	got, err := p.SetFrameInterval(pixel.PadSource, pixel.Fraction{})
	if err != nil {
		t.Fatalf("set source: %v", err)
	}
	if got != pixel.DefaultInterval() {
		t.Errorf("achieved = %v, want sink default", got)
	}
	if p.SkipCode() != 0 {
		t.Errorf("skip code = %d, want 0", p.SkipCode())
	}
}

func TestSetFrameIntervalBusy(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_aux_pixelproc")

	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for _, pad := range []pixel.Pad{pixel.PadSink, pixel.PadSource} {
		if _, err := p.SetFrameInterval(pad, pixel.Fraction{Numerator: 1, Denominator: 15}); !errors.Is(err, ErrBusy) {
			t.Errorf("%s while streaming: err = %v, want ErrBusy", pad, err)
		}
	}
}

func TestEnumerations(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_main_pixelproc")

	if got := len(p.Encodings(pixel.PadSink)); got != 2 {
		t.Errorf("sink encodings = %d, want 2", got)
	}
	if got := len(p.Encodings(pixel.PadSource)); got != 14 {
		t.Errorf("source encodings = %d, want 14", got)
	}

	min, max, err := p.SizeRange(pixel.PadSink, pixel.EncRGB888_1X24)
	if err != nil {
		t.Fatalf("SizeRange: %v", err)
	}
	if (min != pixel.Size{Width: 16, Height: 16}) || (max != pixel.Size{Width: 4096, Height: 4096}) {
		t.Errorf("range = %v..%v", min, max)
	}
	if _, _, err := p.SizeRange(pixel.PadSink, pixel.EncYUYV8_2X8); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("unknown code: err = %v, want ErrInvalidArgument", err)
	}

	if got := p.FrameIntervals(pixel.PadSink); len(got) != 1 || got[0] != pixel.DefaultInterval() {
		t.Errorf("sink intervals = %v", got)
	}
	src := p.FrameIntervals(pixel.PadSource)
	want := []pixel.Fraction{
		{Numerator: 1, Denominator: 30},
		{Numerator: 2, Denominator: 30},
		{Numerator: 4, Denominator: 30},
		{Numerator: 8, Denominator: 30},
	}
	if len(src) != len(want) {
		t.Fatalf("source intervals = %v", src)
	}
	for i := range want {
		if src[i] != want[i] {
			t.Errorf("interval[%d] = %v, want %v", i, src[i], want[i])
		}
	}
}

func TestGammaCorrection(t *testing.T) {
	p, bus, power, _ := newTestPipe(t, "dcmipp_aux_pixelproc")
	regs := RegistersFor(ports.PipeAux)

	// Device gated off: the value is stored but nothing is written.
	if err := p.SetGammaCorrection(true); err != nil {
		t.Fatalf("SetGammaCorrection: %v", err)
	}
	if !p.GammaCorrection() {
		t.Error("gamma not stored")
	}
	if got := len(bus.Journal()); got != 0 {
		t.Errorf("journal = %d ops, want 0 while unpowered", got)
	}

	// Powered: the enable is written immediately and the reference
	// returned.
	power.SetPowered(true)
	if err := p.SetGammaCorrection(true); err != nil {
		t.Fatalf("SetGammaCorrection: %v", err)
	}
	if v, ok := bus.Register(regs.GMCR); !ok || v != GammaEnable {
		t.Errorf("GMCR = 0x%x (ok=%v), want 0x%x", v, ok, GammaEnable)
	}
	if power.Refs() != 0 {
		t.Errorf("power refs = %d, want balanced 0", power.Refs())
	}

	if err := p.SetGammaCorrection(false); err != nil {
		t.Fatalf("SetGammaCorrection: %v", err)
	}
	if v, _ := bus.Register(regs.GMCR); v != 0 {
		t.Errorf("GMCR = 0x%x, want 0", v)
	}
}

func TestResetProposed(t *testing.T) {
	p, _, _, _ := newTestPipe(t, "dcmipp_main_pixelproc")

	req := pixel.DefaultFormat(pixel.PadSink)
	req.Width = 1920
	req.Height = 1080
	if _, err := p.SetFormat(Proposed, pixel.PadSink, req); err != nil {
		t.Fatalf("SetFormat: %v", err)
	}

	p.ResetProposed()
	if got := p.Format(Proposed, pixel.PadSink); got.Width != 640 {
		t.Errorf("proposed sink after reset = %s, want defaults", got)
	}
}
