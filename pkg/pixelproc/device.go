// Package pixelproc provides a high-level API for negotiating and
// programming the two pixel processing pipes of the camera pipeline.
package pixelproc

import (
	"fmt"

	"github.com/user/pixelproc/pkg/pipe"
	"github.com/user/pixelproc/pkg/ports"
)

// Entity names the two pipes answer to. Pipe resolution keys on the
// "main"/"aux" markers inside them.
const (
	MainEntity = "dcmipp_main_pixelproc"
	AuxEntity  = "dcmipp_aux_pixelproc"
)

// Options carries the collaborators a Device is built on. Bus, Power and
// Logger are required. Converter feeds the main pipe's color-conversion
// block; the aux pipe has no such block and never sees it.
type Options struct {
	Bus       ports.RegisterBus
	Power     ports.PowerGate
	Converter ports.ColorConverter
	Logger    ports.Logger
}

// Device is the pair of processing pipes of one pixel processor.
type Device struct {
	Main *pipe.Pipe
	Aux  *pipe.Pipe

	log ports.Logger
}

// NewDevice builds both pipes with their construction defaults: 640x480
// frames, full-frame crop and compose, 30 fps, no frame skipping.
func NewDevice(opts Options) (*Device, error) {
	if opts.Bus == nil {
		return nil, fmt.Errorf("pixelproc: register bus is required")
	}
	if opts.Power == nil {
		return nil, fmt.Errorf("pixelproc: power gate is required")
	}
	if opts.Logger == nil {
		return nil, fmt.Errorf("pixelproc: logger is required")
	}

	main, err := pipe.New(MainEntity, opts.Bus, opts.Power, opts.Converter, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("main pipe: %w", err)
	}
	aux, err := pipe.New(AuxEntity, opts.Bus, opts.Power, nil, opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("aux pipe: %w", err)
	}

	return &Device{
		Main: main,
		Aux:  aux,
		log:  opts.Logger,
	}, nil
}

// Pipe returns the pipe with the given id, or nil for an unknown id.
func (d *Device) Pipe(id ports.PipeID) *pipe.Pipe {
	switch id {
	case ports.PipeMain:
		return d.Main
	case ports.PipeAux:
		return d.Aux
	default:
		return nil
	}
}
