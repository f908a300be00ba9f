package summarizer

import (
	"fmt"
	"strings"
)

// MarkdownFormatter formats a Summary as a Markdown document.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format converts a Summary to a Markdown string.
func (f *MarkdownFormatter) Format(summary *Summary) string {
	var b strings.Builder

	b.WriteString("# Pixelproc Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", summary.GeneratedAt.Format("2006-01-02 15:04:05 MST"))

	f.writePipe(&b, summary)
	f.writeFormats(&b, summary)
	f.writeGeometry(&b, summary)
	f.writeRate(&b, summary)
	f.writeScaler(&b, summary)
	f.writeProgram(&b, summary)

	return b.String()
}

func (f *MarkdownFormatter) writePipe(b *strings.Builder, s *Summary) {
	gamma := "off"
	if s.Pipe.Gamma {
		gamma = "on"
	}

	b.WriteString("## Pipe\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(b, "| Pipe | %s |\n", s.Pipe.ID)
	fmt.Fprintf(b, "| Entity | %s |\n", s.Pipe.Entity)
	fmt.Fprintf(b, "| Gamma correction | %s |\n", gamma)
	b.WriteString("\n")
}

func (f *MarkdownFormatter) writeFormats(b *strings.Builder, s *Summary) {
	b.WriteString("## Formats\n\n")
	b.WriteString("| Pad | Size | Code | Colorspace | YCbCr | Quantization |\n")
	b.WriteString("|-----|------|------|------------|-------|--------------|\n")
	for _, row := range []struct {
		pad  string
		info FormatInfo
	}{
		{"sink", s.Sink},
		{"source", s.Source},
	} {
		fmt.Fprintf(b, "| %s | %dx%d | %s | %s | %s | %s |\n",
			row.pad, row.info.Width, row.info.Height, row.info.Code,
			row.info.Colorspace, row.info.YCbCrEnc, row.info.Quantization)
	}
	b.WriteString("\n")
}

func (f *MarkdownFormatter) writeGeometry(b *strings.Builder, s *Summary) {
	b.WriteString("## Geometry\n\n")
	b.WriteString("| Rectangle | Size | Origin |\n")
	b.WriteString("|-----------|------|--------|\n")
	fmt.Fprintf(b, "| Crop | %dx%d | (%d,%d) |\n",
		s.Crop.Width, s.Crop.Height, s.Crop.Left, s.Crop.Top)
	fmt.Fprintf(b, "| Compose | %dx%d | (%d,%d) |\n",
		s.Compose.Width, s.Compose.Height, s.Compose.Left, s.Compose.Top)
	b.WriteString("\n")
}

func (f *MarkdownFormatter) writeRate(b *strings.Builder, s *Summary) {
	b.WriteString("## Frame Rate\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(b, "| Sink interval | %s (%.1f fps) |\n", s.Rate.SinkInterval, s.Rate.SinkFPS)
	fmt.Fprintf(b, "| Source interval | %s (%.1f fps) |\n", s.Rate.SourceInterval, s.Rate.SourceFPS)
	fmt.Fprintf(b, "| Skip code | %d |\n", s.Rate.SkipCode)
	fmt.Fprintf(b, "| Forwarding | 1 frame in %d |\n", s.Rate.SkipRatio)
	b.WriteString("\n")
}

func (f *MarkdownFormatter) writeScaler(b *strings.Builder, s *Summary) {
	b.WriteString("## Scaler\n\n")
	b.WriteString("| Stage | Horizontal | Vertical |\n")
	b.WriteString("|-------|------------|----------|\n")
	fmt.Fprintf(b, "| Decimation | /%d | /%d |\n", 1<<s.Scaler.HDec, 1<<s.Scaler.VDec)
	fmt.Fprintf(b, "| Post-decimation size | %d | %d |\n", s.Scaler.HPostDec, s.Scaler.VPostDec)
	fmt.Fprintf(b, "| Downsize ratio | 0x%04x | 0x%04x |\n", s.Scaler.HRatio, s.Scaler.VRatio)
	fmt.Fprintf(b, "| Downsize divider | %d | %d |\n", s.Scaler.HDiv, s.Scaler.VDiv)
	b.WriteString("\n")
}

func (f *MarkdownFormatter) writeProgram(b *strings.Builder, s *Summary) {
	b.WriteString("## Register Program\n\n")

	if len(s.Program) == 0 {
		b.WriteString("No registers programmed (negotiation only).\n")
		return
	}

	b.WriteString("| # | Pipe | Action | Offset | Value |\n")
	b.WriteString("|---|------|--------|--------|-------|\n")
	for i, op := range s.Program {
		fmt.Fprintf(b, "| %d | %s | %s | 0x%03x | 0x%08x |\n",
			i+1, op.Pipe, op.Action, op.Offset, op.Value)
	}
}

// Ensure MarkdownFormatter implements Formatter.
var _ Formatter = (*MarkdownFormatter)(nil)
