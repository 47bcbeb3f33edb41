// Package monitor implements the per-strand instrumentation bundle
// (spec.md §3 component 6): opcode-count map, object-count map, a tracing
// flag, and a start/stop lifecycle.
package monitor

import (
	"github.com/google/uuid"
	"github.com/rosette-vm/rvm/opcode"
)

// Monitor is shared by pointer among the strands that carry it (Push and
// Fork hand the parent's monitor to the new ctxt); VMState.currentMonitor
// mirrors whichever strand is installed (spec.md §3 invariants).
type Monitor struct {
	ID      uuid.UUID
	Tracing bool

	running      bool
	opcodeCounts map[opcode.Op]uint64
	obCounts     map[string]uint64
}

// New constructs a stopped monitor with empty counters and a fresh, stable
// identity in ID (spec.md §6 Monitor hooks). The VM itself tells monitors
// apart by pointer and does not print ID in its trace.
func New() *Monitor {
	return &Monitor{
		ID:           uuid.New(),
		opcodeCounts: make(map[opcode.Op]uint64),
		obCounts:     make(map[string]uint64),
	}
}

// Start begins a monitoring session; counters are left as-is so a monitor
// can be stopped and restarted without losing history.
func (m *Monitor) Start() { m.running = true }

// Stop ends a monitoring session.
func (m *Monitor) Stop() { m.running = false }

// Running reports whether Start has been called more recently than Stop.
func (m *Monitor) Running() bool { return m.running }

// RecordOpcode bumps this monitor's per-opcode counter. The VM-wide total
// (VMState.bytecodes, spec.md §3/§8 testable property 5) is counted
// separately by the dispatch loop.
func (m *Monitor) RecordOpcode(op opcode.Op) {
	if m.opcodeCounts == nil {
		m.opcodeCounts = make(map[opcode.Op]uint64)
	}
	m.opcodeCounts[op]++
}

// RecordObject bumps a named object-allocation counter.
func (m *Monitor) RecordObject(kind string) {
	if m.obCounts == nil {
		m.obCounts = make(map[string]uint64)
	}
	m.obCounts[kind]++
}

// OpcodeCounts returns the live opcode-count map (not copied — callers that
// need a stable snapshot should range over it immediately).
func (m *Monitor) OpcodeCounts() map[opcode.Op]uint64 { return m.opcodeCounts }

// ObCounts returns the live object-count map.
func (m *Monitor) ObCounts() map[string]uint64 { return m.obCounts }
