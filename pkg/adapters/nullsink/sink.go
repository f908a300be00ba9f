// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"github.com/user/pixelproc/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new Sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveNegotiationJSON does nothing.
func (s *Sink) SaveNegotiationJSON(pipe string, data []byte) error {
	return nil
}

// SaveProgramJSON does nothing.
func (s *Sink) SaveProgramJSON(pipe string, data []byte) error {
	return nil
}

// SaveRegisterDump does nothing.
func (s *Sink) SaveRegisterDump(pipe string, data []byte) error {
	return nil
}

// SavePreview does nothing.
func (s *Sink) SavePreview(pipe string, data []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
