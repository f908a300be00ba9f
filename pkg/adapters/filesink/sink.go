// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"path/filepath"

	"github.com/user/pixelproc/pkg/ports"
)

// Sink saves debug output to files, one set per pipe.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new Sink writing under baseDir.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveNegotiationJSON saves the negotiated pipe state as JSON.
func (s *Sink) SaveNegotiationJSON(pipe string, data []byte) error {
	return s.save(pipe, "negotiation.json", data)
}

// SaveProgramJSON saves the planned register program as JSON.
func (s *Sink) SaveProgramJSON(pipe string, data []byte) error {
	return s.save(pipe, "program.json", data)
}

// SaveRegisterDump saves a human-readable register trace.
func (s *Sink) SaveRegisterDump(pipe string, data []byte) error {
	return s.save(pipe, "registers.txt", data)
}

// SavePreview saves a rendered geometry preview image.
func (s *Sink) SavePreview(pipe string, data []byte) error {
	return s.save(pipe, "preview.png", data)
}

func (s *Sink) save(pipe, name string, data []byte) error {
	path := filepath.Join(s.baseDir, fmt.Sprintf("%s-%s", pipe, name))
	return s.fs.WriteFile(path, data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
