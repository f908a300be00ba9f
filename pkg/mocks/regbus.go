// Package mocks provides mock implementations for testing.
package mocks

import (
	"sync"

	"github.com/user/pixelproc/pkg/ports"
)

// RegisterBus is a mock implementation of ports.RegisterBus. It applies
// operations to an in-memory register file and journals them in call
// order.
type RegisterBus struct {
	mu      sync.Mutex
	regs    map[uint32]uint32
	journal []ports.RegisterOp

	WriteFunc     func(pipe ports.PipeID, offset, value uint32) error
	SetBitsFunc   func(pipe ports.PipeID, offset, mask uint32) error
	ClearBitsFunc func(pipe ports.PipeID, offset, mask uint32) error
}

// NewRegisterBus creates a new mock RegisterBus.
func NewRegisterBus() *RegisterBus {
	return &RegisterBus{regs: make(map[uint32]uint32)}
}

func (m *RegisterBus) Write(pipe ports.PipeID, offset, value uint32) error {
	if m.WriteFunc != nil {
		return m.WriteFunc(pipe, offset, value)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs[offset] = value
	m.journal = append(m.journal, ports.RegisterOp{Pipe: pipe, Action: ports.ActionWrite, Offset: offset, Value: value})
	return nil
}

func (m *RegisterBus) SetBits(pipe ports.PipeID, offset, mask uint32) error {
	if m.SetBitsFunc != nil {
		return m.SetBitsFunc(pipe, offset, mask)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs[offset] |= mask
	m.journal = append(m.journal, ports.RegisterOp{Pipe: pipe, Action: ports.ActionSetBits, Offset: offset, Value: mask})
	return nil
}

func (m *RegisterBus) ClearBits(pipe ports.PipeID, offset, mask uint32) error {
	if m.ClearBitsFunc != nil {
		return m.ClearBitsFunc(pipe, offset, mask)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs[offset] &^= mask
	m.journal = append(m.journal, ports.RegisterOp{Pipe: pipe, Action: ports.ActionClearBits, Offset: offset, Value: mask})
	return nil
}

// Register returns the current value at offset (for test verification).
func (m *RegisterBus) Register(offset uint32) (uint32, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.regs[offset]
	return v, ok
}

// Journal returns a copy of all recorded operations (for test verification).
func (m *RegisterBus) Journal() []ports.RegisterOp {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.RegisterOp, len(m.journal))
	copy(out, m.journal)
	return out
}

// Reset clears the register file and the journal.
func (m *RegisterBus) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs = make(map[uint32]uint32)
	m.journal = nil
}

var _ ports.RegisterBus = (*RegisterBus)(nil)

// PowerGate is a mock implementation of ports.PowerGate with a settable
// powered state.
type PowerGate struct {
	mu      sync.Mutex
	powered bool
	refs    int

	TryGetFunc func() bool
}

// NewPowerGate creates a new mock PowerGate.
func NewPowerGate(powered bool) *PowerGate {
	return &PowerGate{powered: powered}
}

func (m *PowerGate) TryGet() bool {
	if m.TryGetFunc != nil {
		return m.TryGetFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.powered {
		return false
	}
	m.refs++
	return true
}

func (m *PowerGate) Put() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refs--
}

// SetPowered flips the powered state.
func (m *PowerGate) SetPowered(on bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.powered = on
}

// Refs returns the outstanding reference count (for test verification).
func (m *PowerGate) Refs() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refs
}

var _ ports.PowerGate = (*PowerGate)(nil)
