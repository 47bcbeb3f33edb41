// Package globalenv implements the indexed slot vector the global
// environment opcodes address (spec.md §3).
package globalenv

import "github.com/rosette-vm/rvm/ob"

// GlobalEnv is value-like: WithEntry/Grow return a new GlobalEnv rather than
// mutating the receiver, matching the "swapped wholesale on update"
// resource-scoping rule in spec.md §5.
type GlobalEnv struct {
	slots []ob.Ob
}

// New builds a global environment with n slots, all initialized to Niv.
func New(n int) GlobalEnv {
	s := make([]ob.Ob, n)
	for i := range s {
		s[i] = ob.Niv
	}
	return GlobalEnv{slots: s}
}

// Len reports the number of entries.
func (g GlobalEnv) Len() int { return len(g.slots) }

// Entry returns the g-th slot, or Absent if out of range.
func (g GlobalEnv) Entry(idx int) ob.Ob {
	if idx < 0 || idx >= len(g.slots) {
		return ob.Absent
	}
	return g.slots[idx]
}

// WithEntry returns a copy of g with slot idx set to v. Growing the vector
// to fit idx is the caller's responsibility via Grow.
func (g GlobalEnv) WithEntry(idx int, v ob.Ob) GlobalEnv {
	cp := make([]ob.Ob, len(g.slots))
	copy(cp, g.slots)
	if idx >= 0 && idx < len(cp) {
		cp[idx] = v
	}
	return GlobalEnv{slots: cp}
}

// Grow returns a copy of g with at least n slots, extending with Niv.
func (g GlobalEnv) Grow(n int) GlobalEnv {
	if n <= len(g.slots) {
		return g
	}
	cp := make([]ob.Ob, n)
	copy(cp, g.slots)
	for i := len(g.slots); i < n; i++ {
		cp[i] = ob.Niv
	}
	return GlobalEnv{slots: cp}
}
