package pixelproc

import (
	"errors"
	"testing"

	"github.com/user/pixelproc/pkg/mocks"
	"github.com/user/pixelproc/pkg/pipe"
	"github.com/user/pixelproc/pkg/ports"
)

func newTestDevice(t *testing.T) (*Device, *mocks.RegisterBus, *mocks.PowerGate, *mocks.ColorConverter) {
	t.Helper()
	bus := mocks.NewRegisterBus()
	power := mocks.NewPowerGate(false)
	conv := &mocks.ColorConverter{}
	dev, err := NewDevice(Options{
		Bus:       bus,
		Power:     power,
		Converter: conv,
		Logger:    mocks.NewLogger(),
	})
	if err != nil {
		t.Fatalf("NewDevice() error = %v", err)
	}
	return dev, bus, power, conv
}

func TestNewDeviceBuildsBothPipes(t *testing.T) {
	dev, _, _, _ := newTestDevice(t)

	if dev.Main == nil || dev.Aux == nil {
		t.Fatalf("NewDevice() pipes = %v, %v, want both built", dev.Main, dev.Aux)
	}
	if got := dev.Main.ID(); got != ports.PipeMain {
		t.Errorf("Main.ID() = %v, want %v", got, ports.PipeMain)
	}
	if got := dev.Main.Name(); got != MainEntity {
		t.Errorf("Main.Name() = %q, want %q", got, MainEntity)
	}
	if got := dev.Aux.ID(); got != ports.PipeAux {
		t.Errorf("Aux.ID() = %v, want %v", got, ports.PipeAux)
	}
	if got := dev.Aux.Name(); got != AuxEntity {
		t.Errorf("Aux.Name() = %q, want %q", got, AuxEntity)
	}
}

func TestDevicePipeAccessor(t *testing.T) {
	dev, _, _, _ := newTestDevice(t)

	if got := dev.Pipe(ports.PipeMain); got != dev.Main {
		t.Errorf("Pipe(main) = %p, want %p", got, dev.Main)
	}
	if got := dev.Pipe(ports.PipeAux); got != dev.Aux {
		t.Errorf("Pipe(aux) = %p, want %p", got, dev.Aux)
	}
	if got := dev.Pipe(ports.PipeID(0)); got != nil {
		t.Errorf("Pipe(0) = %v, want nil", got)
	}
}

func TestNewDeviceValidatesOptions(t *testing.T) {
	bus := mocks.NewRegisterBus()
	power := mocks.NewPowerGate(false)
	conv := &mocks.ColorConverter{}
	log := mocks.NewLogger()

	tests := []struct {
		name string
		opts Options
	}{
		{"missing bus", Options{Power: power, Converter: conv, Logger: log}},
		{"missing power", Options{Bus: bus, Converter: conv, Logger: log}},
		{"missing logger", Options{Bus: bus, Power: power, Converter: conv}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDevice(tt.opts); err == nil {
				t.Errorf("NewDevice() error = nil, want error")
			}
		})
	}
}

func TestNewDeviceRequiresConverterForMain(t *testing.T) {
	_, err := NewDevice(Options{
		Bus:    mocks.NewRegisterBus(),
		Power:  mocks.NewPowerGate(false),
		Logger: mocks.NewLogger(),
	})
	if !errors.Is(err, pipe.ErrInvalidArgument) {
		t.Errorf("NewDevice() without converter error = %v, want ErrInvalidArgument", err)
	}
}
