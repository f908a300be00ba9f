package mocks

import (
	"sync"

	"github.com/user/pixelproc/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink keyed by pipe name.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	NegotiationJSON map[string][]byte
	ProgramJSON     map[string][]byte
	RegisterDumps   map[string][]byte
	Previews        map[string][]byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled:         enabled,
		NegotiationJSON: make(map[string][]byte),
		ProgramJSON:     make(map[string][]byte),
		RegisterDumps:   make(map[string][]byte),
		Previews:        make(map[string][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveNegotiationJSON(pipe string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.NegotiationJSON[pipe] = data
	return nil
}

func (m *DebugSink) SaveProgramJSON(pipe string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProgramJSON[pipe] = data
	return nil
}

func (m *DebugSink) SaveRegisterDump(pipe string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterDumps[pipe] = data
	return nil
}

func (m *DebugSink) SavePreview(pipe string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Previews[pipe] = data
	return nil
}

var _ ports.DebugSink = (*DebugSink)(nil)
