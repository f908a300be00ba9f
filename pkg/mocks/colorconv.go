package mocks

import (
	"sync"

	"github.com/user/pixelproc/pkg/pixel"
	"github.com/user/pixelproc/pkg/ports"
)

// ConvCall records one Configure invocation.
type ConvCall struct {
	Sink   pixel.Format
	Source pixel.Format
}

// ColorConverter is a mock implementation of ports.ColorConverter.
type ColorConverter struct {
	mu    sync.Mutex
	calls []ConvCall

	// Params and Err are returned when ConfigureFunc is nil.
	Params ports.ColorConvParams
	Err    error

	ConfigureFunc func(sink, source pixel.Format) (ports.ColorConvParams, error)
}

func (m *ColorConverter) Configure(sink, source pixel.Format) (ports.ColorConvParams, error) {
	m.mu.Lock()
	m.calls = append(m.calls, ConvCall{Sink: sink, Source: source})
	m.mu.Unlock()

	if m.ConfigureFunc != nil {
		return m.ConfigureFunc(sink, source)
	}
	return m.Params, m.Err
}

// Calls returns the recorded invocations (for test verification).
func (m *ColorConverter) Calls() []ConvCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ConvCall, len(m.calls))
	copy(out, m.calls)
	return out
}

var _ ports.ColorConverter = (*ColorConverter)(nil)
