// Package code implements the read-only Code object: a decoded opcode
// sequence paired with its literal pool (spec.md §6).
package code

import (
	"fmt"

	"github.com/rosette-vm/rvm/ob"
	"github.com/rosette-vm/rvm/opcode"
)

// Code is immutable once built: the VM only ever indexes into it.
type Code struct {
	Ops  []opcode.Instruction
	Lits []ob.Ob
}

// New builds a Code object from a decoded instruction stream and literal
// pool. Both slices are copied defensively so later mutation by the caller
// cannot violate the read-only contract.
func New(ops []opcode.Instruction, lits []ob.Ob) *Code {
	o := make([]opcode.Instruction, len(ops))
	copy(o, ops)
	l := make([]ob.Ob, len(lits))
	copy(l, lits)
	return &Code{Ops: o, Lits: l}
}

// Len reports how many instructions this code object holds.
func (c *Code) Len() int { return len(c.Ops) }

// At returns the instruction at the given program-counter offset.
func (c *Code) At(pc int) opcode.Instruction { return c.Ops[pc] }

// Lit returns the v-th literal-pool entry, panicking with a descriptive
// message on out-of-range access (a malformed Code object is a programmer
// error, not a recoverable runtime condition).
func (c *Code) Lit(v int) ob.Ob {
	if v < 0 || v >= len(c.Lits) {
		panic(fmt.Sprintf("code: literal index %d out of range (pool has %d entries)", v, len(c.Lits)))
	}
	return c.Lits[v]
}
