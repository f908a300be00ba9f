// Package main provides the CLI entry point for pixelproc.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/pixelproc/pkg/adapters/colorconv"
	"github.com/user/pixelproc/pkg/adapters/filesink"
	"github.com/user/pixelproc/pkg/adapters/ggrenderer"
	"github.com/user/pixelproc/pkg/adapters/logger"
	"github.com/user/pixelproc/pkg/adapters/memregbus"
	"github.com/user/pixelproc/pkg/adapters/nullsink"
	"github.com/user/pixelproc/pkg/adapters/osfilesystem"
	"github.com/user/pixelproc/pkg/config"
	"github.com/user/pixelproc/pkg/pipe"
	"github.com/user/pixelproc/pkg/pixel"
	"github.com/user/pixelproc/pkg/pixelproc"
	"github.com/user/pixelproc/pkg/ports"
	"github.com/user/pixelproc/pkg/stages/packer"
	"github.com/user/pixelproc/pkg/stages/preview"
	"github.com/user/pixelproc/pkg/summarizer"
)

// previewMaxWidth bounds preview images saved as debug artifacts.
const previewMaxWidth = 1024

var version = "dev"

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// scenarioFlags returns the flags shared by the commands that run a
// configured scenario.
func scenarioFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "config",
			Aliases:  []string{"c"},
			Required: true,
			Usage:    l10n.T("Pipe scenario YAML file"),
		},
		&cli.StringFlag{
			Name:  "pipe",
			Value: "main",
			Usage: l10n.T("Pipe to drive (main, aux)"),
		},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "pixelproc",
		Usage:   l10n.T("Negotiate and program the camera pixel processing pipes"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: l10n.T("Log level (debug, info, warn, error)"),
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   l10n.T("Suppress all log output"),
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: l10n.T("Disable colored log output"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "formats",
				Usage: l10n.T("List the encodings each pad accepts"),
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "pad",
						Value: "sink",
						Usage: l10n.T("Pad to list (sink, source)"),
					},
				},
				Action: runFormats,
			},
			{
				Name:  "negotiate",
				Usage: l10n.T("Negotiate a scenario and print the result"),
				Flags: append(scenarioFlags(),
					&cli.StringFlag{
						Name:  "summary",
						Usage: l10n.T("Write the Markdown summary to a file"),
					},
				),
				Action: runNegotiate,
			},
			{
				Name:  "program",
				Usage: l10n.T("Negotiate a scenario and program the register file"),
				Flags: append(scenarioFlags(),
					&cli.StringFlag{
						Name:  "debug-dir",
						Usage: l10n.T("Directory for debug output"),
					},
				),
				Action: runProgram,
			},
			{
				Name:  "preview",
				Usage: l10n.T("Render the negotiated geometry as a PNG image"),
				Flags: append(scenarioFlags(),
					&cli.StringFlag{
						Name:     "output",
						Aliases:  []string{"o"},
						Required: true,
						Usage:    l10n.T("Output PNG file path"),
					},
					&cli.IntFlag{
						Name:  "max-width",
						Value: previewMaxWidth,
						Usage: l10n.T("Bound the preview width in pixels"),
					},
				),
				Action: runPreview,
			},
		},
	}
}

// runFormats lists the pad's encoding catalog. Source entries carry the
// packing control value the encoding programs.
func runFormats(c *cli.Context) error {
	var pad pixel.Pad
	switch c.String("pad") {
	case "sink":
		pad = pixel.PadSink
	case "source":
		pad = pixel.PadSource
	default:
		return fmt.Errorf("unknown pad %q (want sink or source)", c.String("pad"))
	}

	fmt.Println(l10n.F("%d encodings, %dx%d to %dx%d frames:",
		packer.Count(pad),
		pixel.FrameMinWidth, pixel.FrameMinHeight,
		pixel.FrameMaxWidth, pixel.FrameMaxHeight))
	for i := 0; i < packer.Count(pad); i++ {
		entry := packer.ByIndex(pad, i)
		if pad == pixel.PadSource {
			fmt.Printf("  %-14s packer 0x%02x\n", entry.Code, entry.RegisterValue())
		} else {
			fmt.Printf("  %s\n", entry.Code)
		}
	}
	return nil
}

// runNegotiate applies the scenario and prints the negotiated state. The
// device stays gated off so nothing reaches the register bus.
func runNegotiate(c *cli.Context) error {
	e, err := setup(c, false)
	if err != nil {
		return err
	}

	_, res, err := applyScenario(c, e)
	if err != nil {
		return err
	}

	summary := summarizer.FromResult(res).Build()
	formatter := summarizer.NewMarkdownFormatter()
	fmt.Print(formatter.Format(summary))

	if path := c.String("summary"); path != "" {
		writer := summarizer.NewWriter(formatter, osfilesystem.New())
		if err := writer.Write(path, summary); err != nil {
			e.log.Warn(l10n.F("Failed to write summary: %s", err))
		} else {
			e.log.Info(l10n.F("Summary saved to %s", path))
		}
	}
	return nil
}

// runProgram applies the scenario against a powered device and starts the
// stream, so the full register program lands on the in-memory bus.
func runProgram(c *cli.Context) error {
	e, err := setup(c, true)
	if err != nil {
		return err
	}

	id, res, err := applyScenario(c, e)
	if err != nil {
		return err
	}

	p := e.dev.Pipe(id)
	if err := p.Start(); err != nil {
		return fmt.Errorf("start stream: %w", err)
	}
	journal := e.bus.JournalFor(id)
	p.Stop()

	summary := summarizer.FromResult(res).WithProgram(journal).Build()
	formatter := summarizer.NewMarkdownFormatter()
	fmt.Print(formatter.Format(summary))

	return saveDebugArtifacts(c, e, id, res)
}

// runPreview applies the scenario and saves the geometry preview.
func runPreview(c *cli.Context) error {
	e, err := setup(c, false)
	if err != nil {
		return err
	}

	_, res, err := applyScenario(c, e)
	if err != nil {
		return err
	}

	renderer := ggrenderer.New()
	img, err := preview.NewStage(renderer, e.log).Render(previewInput(res, c.Int("max-width")))
	if err != nil {
		return err
	}
	data, err := renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return err
	}
	if err := osfilesystem.New().WriteFile(c.String("output"), data); err != nil {
		return err
	}

	e.log.Info(l10n.F("Preview saved to %s", c.String("output")))
	return nil
}

// env binds the configuration and adapters a command runs against.
type env struct {
	cfg config.Config
	log ports.Logger
	bus *memregbus.Bus
	dev *pixelproc.Device
}

// setup loads the configuration and wires the device over the in-memory
// register bus. powered controls whether control writes and stream starts
// reach the bus.
func setup(c *cli.Context, powered bool) (*env, error) {
	cfg, err := config.LoadFromFile(c.String("config"))
	if err != nil {
		return nil, err
	}

	log := newLogger(c, cfg)

	bus := memregbus.New(log)
	dev, err := pixelproc.NewDevice(pixelproc.Options{
		Bus:       bus,
		Power:     memregbus.NewGate(powered),
		Converter: colorconv.New(log),
		Logger:    log,
	})
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, log: log, bus: bus, dev: dev}, nil
}

// newLogger builds the command logger. The command line wins over the
// configuration file for the level.
func newLogger(c *cli.Context, cfg config.Config) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	level := cfg.Level()
	if c.IsSet("log-level") {
		level = ports.ParseLogLevel(c.String("log-level"))
	}
	if c.Bool("no-color") {
		return logger.NewConsoleColor(level, false)
	}
	return logger.NewConsole(level)
}

// applyScenario negotiates the configured scenario against the selected
// pipe under a signal-cancelled context.
func applyScenario(c *cli.Context, e *env) (ports.PipeID, *pixelproc.Result, error) {
	id, err := pipe.ParseID(c.String("pipe"))
	if err != nil {
		return 0, nil, err
	}
	scenario, err := e.cfg.ToScenario(c.String("pipe"))
	if err != nil {
		return 0, nil, err
	}

	ctx, cancel := signalContext(e.log)
	defer cancel()

	res, err := e.dev.Apply(ctx, id, scenario)
	if err != nil {
		return 0, nil, err
	}
	return id, res, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	return ctx, cancel
}

// saveDebugArtifacts writes the negotiated state, the planned program, the
// register file and a geometry preview under --debug-dir when given.
func saveDebugArtifacts(c *cli.Context, e *env, id ports.PipeID, res *pixelproc.Result) error {
	fs := osfilesystem.New()

	var sink ports.DebugSink
	if dir := c.String("debug-dir"); dir != "" {
		if err := fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(dir, fs)
	} else {
		sink = nullsink.New()
	}
	if !sink.Enabled() {
		return nil
	}

	state, err := json.MarshalIndent(res.State, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := sink.SaveNegotiationJSON(id.String(), state); err != nil {
		return err
	}

	plan, err := json.MarshalIndent(res.Plan, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}
	if err := sink.SaveProgramJSON(id.String(), plan); err != nil {
		return err
	}

	if err := sink.SaveRegisterDump(id.String(), []byte(e.bus.Dump(id))); err != nil {
		return err
	}

	renderer := ggrenderer.New()
	img, err := preview.NewStage(renderer, e.log).Render(previewInput(res, previewMaxWidth))
	if err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	data, err := renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return err
	}
	if err := sink.SavePreview(id.String(), data); err != nil {
		return err
	}

	e.log.Info(l10n.F("Debug artifacts saved to %s", c.String("debug-dir")))
	return nil
}

// previewInput maps a negotiation result onto the preview stage input.
func previewInput(res *pixelproc.Result, maxWidth int) preview.Input {
	return preview.Input{
		Pipe:     res.Pipe.String(),
		Sink:     res.State.Sink,
		Source:   res.State.Source,
		Crop:     res.State.Crop,
		Compose:  res.State.Compose,
		Scaler:   res.Plan.Scaler,
		SkipCode: res.State.SkipCode,
		Interval: res.State.SourceInterval,
		MaxWidth: maxWidth,
	}
}
