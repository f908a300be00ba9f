package ports

// DebugSink abstracts debug output for intermediate results.
// It allows saving negotiation and programming artifacts for inspection.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveNegotiationJSON saves the negotiated pipe state as JSON.
	SaveNegotiationJSON(pipe string, data []byte) error

	// SaveProgramJSON saves the planned register program as JSON.
	SaveProgramJSON(pipe string, data []byte) error

	// SaveRegisterDump saves a human-readable register trace.
	SaveRegisterDump(pipe string, data []byte) error

	// SavePreview saves a rendered geometry preview image.
	SavePreview(pipe string, data []byte) error
}
