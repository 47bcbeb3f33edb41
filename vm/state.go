package vm

import (
	"github.com/rosette-vm/rvm/code"
	"github.com/rosette-vm/rvm/globalenv"
	"github.com/rosette-vm/rvm/monitor"
	"github.com/rosette-vm/rvm/opcode"
	"github.com/rosette-vm/rvm/prim"
)

// ErrorPolicy resolves the open question spec.md §9 raises about
// handleVirtualMachineError: the source leaves it an unused stub and just
// does a next-thread switch on vmErrorFlag. We make the choice explicit and
// configurable rather than guessing (see DESIGN.md).
type ErrorPolicy byte

const (
	// ErrorPolicyNextThread preserves the reference VM's behavior: a
	// vm-error simply triggers a strand switch. This is the default so
	// every testable property in spec.md §8 keeps holding unmodified.
	ErrorPolicyNextThread ErrorPolicy = iota
	// ErrorPolicyRecover hands the error to the State.OnVMError hook before
	// deciding whether to switch strands: a hook that reports recovered=true
	// keeps the current strand running.
	ErrorPolicyRecover
)

// XmitScratch is the (unwind, next) scratch pair a transmit opcode stashes
// for doXmit to consume — spec.md §3's `xmitData`.
type XmitScratch struct {
	Unwind bool
	Next   bool
}

// State is the aggregate mutable execution context described in spec.md
// §3: current ctxt, code, pc, strand/sleeper pools, global env, monitor,
// per-step control flags, xmit/return scratch, and the debug buffer.
type State struct {
	Ctxt           *Ctxt
	Code           *code.Code
	PC             int
	GlobalEnv      globalenv.GlobalEnv
	CurrentMonitor *monitor.Monitor

	StrandPool  []*Ctxt
	SleeperPool []*Ctxt

	DoXmitFlag       bool
	DoRtnFlag        bool
	DoNextThreadFlag bool
	VMErrorFlag      bool
	ExitFlag         bool
	DoAsyncWaitFlag  bool
	Debug            bool

	XmitData  XmitScratch
	DoRtnData bool
	Loc       Location

	// Bytecodes is a VM-wide dispatch counter (spec.md §8 testable
	// property 5), independent of any single strand's Monitor — see
	// DESIGN.md for why this is tracked globally rather than per-monitor.
	Bytecodes map[opcode.Op]uint64
	ObCounts  map[string]uint64
	Nsigs     uint32
	ExitCode  int

	DebugInfo []string

	PrimTable   *prim.Table
	ErrorPolicy ErrorPolicy

	// Extension hooks for the sys-value handlers spec.md §4.5 specifies as
	// stubs. Defaults are no-ops; an embedding host may override them to
	// implement sleep/suspend/upcall semantics.
	OnUpcall  func(st *State, c *Ctxt, fromPrim bool)
	OnSuspend func(st *State, c *Ctxt, fromPrim bool)
	OnSleep   func(st *State, c *Ctxt)
	OnVMError func(st *State, c *Ctxt) (recovered bool)
}

// NewState builds a VM ready to execute root from pc 0 with the given
// global environment size and primitive table.
func NewState(root *Ctxt, globalSlots int, primTable *prim.Table) *State {
	st := &State{
		Ctxt:      root,
		Code:      root.Code,
		PC:        root.PC,
		GlobalEnv: globalenv.New(globalSlots),
		Bytecodes: make(map[opcode.Op]uint64),
		ObCounts:  make(map[string]uint64),
		Loc:       Limbo,
		PrimTable: primTable,
	}
	if root.Monitor == nil {
		root.Monitor = monitor.New()
	}
	st.CurrentMonitor = root.Monitor
	st.CurrentMonitor.Start()
	return st
}

// AppendDebug records a trace line when debugging is enabled.
func (st *State) AppendDebug(msg string) {
	if !st.Debug {
		return
	}
	st.DebugInfo = append(st.DebugInfo, msg)
}
