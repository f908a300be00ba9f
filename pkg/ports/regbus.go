// Package ports defines the interfaces the pixelproc core depends on:
// the register bus and power gate of the device, the color-conversion
// planner, and the ambient logging/rendering/filesystem/debug surfaces.
package ports

import "fmt"

// PipeID identifies one of the two processing pipes. The numeric values
// match the hardware numbering used to select register bases.
type PipeID uint32

const (
	PipeMain PipeID = 1
	PipeAux  PipeID = 2
)

// String returns "main" or "aux".
func (id PipeID) String() string {
	switch id {
	case PipeMain:
		return "main"
	case PipeAux:
		return "aux"
	default:
		return fmt.Sprintf("pipe(%d)", uint32(id))
	}
}

// RegisterBus abstracts raw access to the device register file. Offsets are
// absolute; the pipe id is carried so implementations can route or trace
// per pipe. All operations are synchronous and non-blocking; failures are
// opaque to the core and abort the current register program.
type RegisterBus interface {
	// Write stores value at offset.
	Write(pipe PipeID, offset uint32, value uint32) error

	// SetBits sets the bits of mask at offset (read-modify-write).
	SetBits(pipe PipeID, offset uint32, mask uint32) error

	// ClearBits clears the bits of mask at offset (read-modify-write).
	ClearBits(pipe PipeID, offset uint32, mask uint32) error
}

// PowerGate tells the core whether the device is powered so runtime control
// writes can be applied immediately or deferred to the next stream start.
type PowerGate interface {
	// TryGet takes a power reference if the device is already active.
	// It returns false when the device is gated off; callers must then
	// skip the hardware write and must not call Put.
	TryGet() bool

	// Put releases a reference taken by a successful TryGet.
	Put()
}

// RegisterAction discriminates the journal entries a recording bus keeps.
type RegisterAction int

const (
	ActionWrite RegisterAction = iota
	ActionSetBits
	ActionClearBits
)

// String returns the action name used in register dumps.
func (a RegisterAction) String() string {
	switch a {
	case ActionWrite:
		return "write"
	case ActionSetBits:
		return "set"
	case ActionClearBits:
		return "clear"
	default:
		return "unknown"
	}
}

// RegisterOp is one recorded bus operation: a write's value, or a
// set/clear's mask.
type RegisterOp struct {
	Pipe   PipeID
	Action RegisterAction
	Offset uint32
	Value  uint32
}

// String renders the op the way register dumps list it.
func (op RegisterOp) String() string {
	return fmt.Sprintf("%s %-5s 0x%03x = 0x%08x", op.Pipe, op.Action, op.Offset, op.Value)
}
