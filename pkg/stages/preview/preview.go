// Package preview renders the negotiated pipe geometry as an image: the
// sink frame with the crop and compose rectangles drawn to scale, plus a
// caption block with the formats, scaler factors and frame skipping.
package preview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/user/pixelproc/pkg/pixel"
	"github.com/user/pixelproc/pkg/ports"
	"github.com/user/pixelproc/pkg/stages/downscale"
	"github.com/user/pixelproc/pkg/stages/framectl"
)

// Layout constants, in canvas pixels before the final resize.
const (
	margin     = 24
	captionH   = 72
	lineHeight = 20
	fontSize   = 13
)

var (
	frameFill     = color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}
	frameStroke   = color.RGBA{R: 0x60, G: 0x60, B: 0x60, A: 0xff}
	cropStroke    = color.RGBA{R: 0xd9, G: 0x53, B: 0x2c, A: 0xff}
	composeFill   = color.RGBA{R: 0x4a, G: 0x90, B: 0xd9, A: 0x50}
	composeStroke = color.RGBA{R: 0x2a, G: 0x62, B: 0xa0, A: 0xff}
	captionColor  = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}
)

// Input carries the negotiated state to draw.
type Input struct {
	Pipe     string
	Sink     pixel.Format
	Source   pixel.Format
	Crop     pixel.Rect
	Compose  pixel.Rect
	Scaler   downscale.Plan
	SkipCode uint32
	Interval pixel.Fraction

	// MaxWidth bounds the output width; 0 keeps the natural size.
	MaxWidth int
}

// Stage renders geometry previews.
type Stage struct {
	renderer ports.Renderer
	logger   ports.Logger
}

// NewStage creates a new preview stage.
func NewStage(renderer ports.Renderer, logger ports.Logger) *Stage {
	return &Stage{
		renderer: renderer,
		logger:   logger.WithComponent("preview"),
	}
}

// Render draws the geometry at sink-frame scale and fits the result to
// Input.MaxWidth.
func (s *Stage) Render(input Input) (image.Image, error) {
	if input.Sink.Width == 0 || input.Sink.Height == 0 {
		return nil, fmt.Errorf("preview: empty sink frame")
	}

	canvasW := int(input.Sink.Width) + 2*margin
	canvasH := int(input.Sink.Height) + 2*margin + captionH
	canvas := s.renderer.CreateCanvas(canvasW, canvasH, color.White)

	s.logger.Debug("rendering %s preview on %dx%d canvas", input.Pipe, canvasW, canvasH)

	// Sink frame.
	canvas.DrawRect(margin, margin, int(input.Sink.Width), int(input.Sink.Height), frameFill)
	canvas.DrawRectStroke(margin, margin, int(input.Sink.Width), int(input.Sink.Height), frameStroke, 1)

	// Compose, anchored at the crop origin. Drawn first so the crop
	// outline stays visible when the two coincide.
	composeX := margin + int(input.Crop.Left)
	composeY := margin + int(input.Crop.Top)
	canvas.DrawRect(composeX, composeY, int(input.Compose.Width), int(input.Compose.Height), composeFill)
	canvas.DrawRectStroke(composeX, composeY, int(input.Compose.Width), int(input.Compose.Height), composeStroke, 1)

	// Crop.
	cropX := margin + int(input.Crop.Left)
	cropY := margin + int(input.Crop.Top)
	canvas.DrawRectStroke(cropX, cropY, int(input.Crop.Width), int(input.Crop.Height), cropStroke, 2)

	// A diagonal from the compose corner to the crop corner hints at the
	// scaling direction when the two differ.
	if input.Compose.Width != input.Crop.Width || input.Compose.Height != input.Crop.Height {
		canvas.DrawLine(
			composeX+int(input.Compose.Width), composeY+int(input.Compose.Height),
			cropX+int(input.Crop.Width), cropY+int(input.Crop.Height),
			composeStroke, 1)
	}

	s.drawLabel(canvas, "crop "+input.Crop.String(), cropX, cropY, int(input.Crop.Width), cropStroke)
	s.drawLabel(canvas, "compose "+input.Compose.Size().String(), composeX, composeY+int(input.Compose.Height)+4, int(input.Compose.Width), composeStroke)

	s.drawCaption(canvas, input, canvasH)

	img := canvas.ToImage()
	if input.MaxWidth > 0 && canvasW > input.MaxWidth {
		scaled := canvasH * input.MaxWidth / canvasW
		img = s.renderer.ResizeImage(img, input.MaxWidth, scaled)
	}
	return img, nil
}

// drawLabel puts text just above the given rectangle edge, or inside it
// when there is no room above.
func (s *Stage) drawLabel(canvas ports.Canvas, text string, x, y, w int, col color.Color) {
	style := ports.TextStyle{FontSize: fontSize, Color: col}
	tw, th := canvas.MeasureText(text, style)
	ty := y - 6
	if ty < int(th) {
		ty = y + int(th) + 2
	}
	if int(tw) > w {
		// Keep narrow rectangles readable by not clipping the label.
		x = x - (int(tw)-w)/2
	}
	canvas.DrawText(text, x, ty, style)
}

// drawCaption writes the format and scaler summary block under the frame.
func (s *Stage) drawCaption(canvas ports.Canvas, input Input, canvasH int) {
	style := ports.TextStyle{FontSize: fontSize, Color: captionColor}

	ratio := framectl.Ratios[input.SkipCode%uint32(len(framectl.Ratios))]
	lines := []string{
		fmt.Sprintf("%s: %s %s -> %s %s", input.Pipe,
			input.Sink.Size(), input.Sink.Code,
			input.Source.Size(), input.Source.Code),
		fmt.Sprintf("decimation %d/%d  ratio 0x%04x/0x%04x  div %d/%d",
			1<<input.Scaler.HDec, 1<<input.Scaler.VDec,
			input.Scaler.HRatio, input.Scaler.VRatio,
			input.Scaler.HDiv, input.Scaler.VDiv),
		fmt.Sprintf("interval %s  keeping 1 of %d frames", input.Interval, ratio),
	}

	y := canvasH - captionH + lineHeight
	for _, line := range lines {
		canvas.DrawText(line, margin, y, style)
		y += lineHeight
	}
}
