// Package memregbus provides an in-memory register bus implementation.
// It stands in for the memory-mapped pipe registers so negotiation and
// stream programming can run without hardware, keeping a per-pipe register
// file and a journal of every operation in call order.
package memregbus

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/user/pixelproc/pkg/ports"
)

// Bus implements ports.RegisterBus against an in-memory register file.
type Bus struct {
	mu      sync.Mutex
	regs    map[ports.PipeID]map[uint32]uint32
	journal []ports.RegisterOp
	log     ports.Logger
}

// New creates a new Bus. Every operation is traced at debug level through
// log.
func New(log ports.Logger) *Bus {
	return &Bus{
		regs: make(map[ports.PipeID]map[uint32]uint32),
		log:  log.WithComponent("memregbus"),
	}
}

// Write stores value at offset.
func (b *Bus) Write(pipe ports.PipeID, offset, value uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.file(pipe)[offset] = value
	return b.record(ports.RegisterOp{Pipe: pipe, Action: ports.ActionWrite, Offset: offset, Value: value})
}

// SetBits ORs mask into the register at offset.
func (b *Bus) SetBits(pipe ports.PipeID, offset, mask uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.file(pipe)[offset] |= mask
	return b.record(ports.RegisterOp{Pipe: pipe, Action: ports.ActionSetBits, Offset: offset, Value: mask})
}

// ClearBits clears mask from the register at offset.
func (b *Bus) ClearBits(pipe ports.PipeID, offset, mask uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.file(pipe)[offset] &^= mask
	return b.record(ports.RegisterOp{Pipe: pipe, Action: ports.ActionClearBits, Offset: offset, Value: mask})
}

// file must be called with the lock held.
func (b *Bus) file(pipe ports.PipeID) map[uint32]uint32 {
	f, ok := b.regs[pipe]
	if !ok {
		f = make(map[uint32]uint32)
		b.regs[pipe] = f
	}
	return f
}

// record must be called with the lock held.
func (b *Bus) record(op ports.RegisterOp) error {
	b.journal = append(b.journal, op)
	b.log.Debug("%s", op)
	return nil
}

// Register returns the current value at offset on the given pipe.
func (b *Bus) Register(pipe ports.PipeID, offset uint32) (uint32, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.regs[pipe][offset]
	return v, ok
}

// Journal returns a copy of all recorded operations in call order.
func (b *Bus) Journal() []ports.RegisterOp {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]ports.RegisterOp, len(b.journal))
	copy(out, b.journal)
	return out
}

// JournalFor returns the recorded operations addressing one pipe.
func (b *Bus) JournalFor(pipe ports.PipeID) []ports.RegisterOp {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []ports.RegisterOp
	for _, op := range b.journal {
		if op.Pipe == pipe {
			out = append(out, op)
		}
	}
	return out
}

// Reset clears the register files and the journal.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.regs = make(map[ports.PipeID]map[uint32]uint32)
	b.journal = nil
}

// Dump renders the register file of one pipe as sorted "offset = value"
// lines, the layout used for register-dump debug artifacts.
func (b *Bus) Dump(pipe ports.PipeID) string {
	b.mu.Lock()
	defer b.mu.Unlock()

	file := b.regs[pipe]
	offsets := make([]uint32, 0, len(file))
	for off := range file {
		offsets = append(offsets, off)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	var sb strings.Builder
	for _, off := range offsets {
		fmt.Fprintf(&sb, "0x%03x = 0x%08x\n", off, file[off])
	}
	return sb.String()
}

// Ensure Bus implements ports.RegisterBus
var _ ports.RegisterBus = (*Bus)(nil)

// Gate implements ports.PowerGate with an explicit powered flag. The real
// device is runtime-suspended most of the time; flipping the flag models
// power state transitions in tests and tools.
type Gate struct {
	mu      sync.Mutex
	powered bool
	refs    int
}

// NewGate creates a new Gate in the given power state.
func NewGate(powered bool) *Gate {
	return &Gate{powered: powered}
}

// TryGet takes a usage reference if the device is powered.
func (g *Gate) TryGet() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.powered {
		return false
	}
	g.refs++
	return true
}

// Put releases a usage reference.
func (g *Gate) Put() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.refs--
}

// SetPowered flips the powered state.
func (g *Gate) SetPowered(on bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.powered = on
}

// Refs returns the outstanding reference count.
func (g *Gate) Refs() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.refs
}

// Ensure Gate implements ports.PowerGate
var _ ports.PowerGate = (*Gate)(nil)
