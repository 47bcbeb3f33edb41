// Package prim defines the primitive-function dispatch contract the VM
// consumes as a fixed external interface (spec.md §6): "the primitive
// function table" is explicitly out of scope for this core, so Prim is kept
// intentionally narrow — just enough surface for ApplyPrim* to call through
// to it and interpret the result.
package prim

import "github.com/rosette-vm/rvm/ob"

// Prim is one callable primitive. DispatchHelper receives the strand state
// as an opaque value (concretely *vm.Ctxt at the call site) to avoid an
// import cycle between the VM and its primitive table — primitives are
// written against the VM's public strand surface, not against this
// package's internals.
type Prim interface {
	// DispatchHelper runs the primitive against the given strand context,
	// returning either a result Ob (possibly a sys-value-carrying Ob) or an
	// error (typically one of the sentinels in package rblerr: DeadThread,
	// or a PrimMismatch/RuntimeError diagnostic).
	DispatchHelper(ctxt interface{}) (ob.Ob, error)
	// RuntimeError builds a user-visible diagnostic in the idiom this
	// primitive uses for argument/type errors.
	RuntimeError(message string) error
}

// Table maps primitive indices (the `k` operand field) to their Prim.
type Table struct {
	entries []Prim
}

// NewTable builds a table from an ordered list of primitives; index i in
// the list is primitive index i.
func NewTable(prims ...Prim) *Table {
	return &Table{entries: append([]Prim(nil), prims...)}
}

// Lookup returns the primitive at index k, or nil if k is out of range.
func (t *Table) Lookup(k int) Prim {
	if t == nil || k < 0 || k >= len(t.entries) {
		return nil
	}
	return t.entries[k]
}

// Len reports how many primitives are registered.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
