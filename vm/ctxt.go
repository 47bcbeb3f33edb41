package vm

import (
	"github.com/rosette-vm/rvm/code"
	"github.com/rosette-vm/rvm/monitor"
	"github.com/rosette-vm/rvm/ob"
)

// NumRegs bounds the context register file. The source VM treats registers
// as a small fixed bank addressed by the `r` operand; spec.md §4.8 defines
// the "no such register" failure mode this bound makes reachable.
const NumRegs = 8

// Ctxt is the per-strand execution record (spec.md §3): program counter,
// code pointer, argvec, nargs, env, self-env, result, tag, parent-context
// link, outstanding-count, and monitor binding.
type Ctxt struct {
	Tag     Location
	Argvec  ob.Tuple
	Nargs   uint16
	Env     ob.Env
	SelfEnv ob.Env
	Code    *code.Code
	PC      int
	Rslt    ob.Ob
	Trgt    ob.Ob
	Monitor *monitor.Monitor
	// Outstanding tracks the pending-reply count Outstanding(p,n) installs.
	Outstanding int32
	// Parent is the continuation this strand returns into; nil at the root
	// of a strand's call chain.
	Parent *Ctxt

	regs [NumRegs]ob.Ob
}

// NewRootCtxt builds the initial strand for a freshly loaded code object.
func NewRootCtxt(c *code.Code, m *monitor.Monitor) *Ctxt {
	ctxt := &Ctxt{
		Code:    c,
		Env:     ob.TopEnv,
		SelfEnv: ob.TopEnv,
		Rslt:    ob.Niv,
		Trgt:    ob.Niv,
		Monitor: m,
		Tag:     Limbo,
	}
	for i := range ctxt.regs {
		ctxt.regs[i] = ob.Niv
	}
	return ctxt
}

// clone produces a shallow value copy of the strand, used by every
// operation that must hand back a "new" Ctxt without mutating the
// original in place (Fork, Location.Store's LocArgReg/LocCtxtReg paths,
// unwindAndApplyPrim's temporary ctxt).
func (c *Ctxt) clone() *Ctxt {
	cp := *c
	return &cp
}

// Arg and NumArgs satisfy prim.ArgSource, the narrow read surface a
// primitive can type-assert its opaque ctxt argument against without this
// package ever needing to be imported by package prim.
func (c *Ctxt) Arg(i int) ob.Ob { return c.Argvec.Elem(i) }
func (c *Ctxt) NumArgs() int    { return int(c.Nargs) }

// GetReg reads context register r. Out-of-range reads return Absent —
// spec.md §3's `getReg(r) -> option<Ob>`.
func (c *Ctxt) GetReg(r int) ob.Ob {
	if r < 0 || r >= NumRegs {
		return ob.Absent
	}
	return c.regs[r]
}

// SetReg writes context register r in place, reporting whether r was in
// range — spec.md §3's `setReg(r, ob) -> option<Ctxt>`.
func (c *Ctxt) SetReg(r int, val ob.Ob) bool {
	if r < 0 || r >= NumRegs {
		return false
	}
	c.regs[r] = val
	return true
}

// withReg returns a cloned Ctxt with register r set, or ok=false if r is
// out of range — the value-returning counterpart SetReg uses when a new
// Ctxt (rather than in-place mutation) is required, e.g. from
// Location.Store.
func (c *Ctxt) withReg(r int, val ob.Ob) (*Ctxt, bool) {
	if r < 0 || r >= NumRegs {
		return nil, false
	}
	cp := c.clone()
	cp.regs[r] = val
	return cp, true
}

// Push creates a fresh child context whose parent is c — OpPush.
func Push(c *Ctxt) *Ctxt {
	child := &Ctxt{
		Env:     c.Env,
		SelfEnv: c.SelfEnv,
		Code:    c.Code,
		PC:      c.PC,
		Rslt:    ob.Niv,
		Trgt:    ob.Niv,
		Monitor: c.Monitor,
		Tag:     Limbo,
		Parent:  c,
	}
	for i := range child.regs {
		child.regs[i] = ob.Niv
	}
	return child
}

// Fork clones c with pc replaced by p, ready to be prepended to the strand
// pool — OpFork. The clone does not share mutable register state with c.
func (c *Ctxt) Fork(p int) *Ctxt {
	cp := c.clone()
	cp.PC = p
	return cp
}

// ScheduleStrand appends c to the strand pool — spec.md §3's
// `scheduleStrand(state) -> state`.
func (c *Ctxt) ScheduleStrand(st *State) {
	st.StrandPool = append(st.StrandPool, c)
}
