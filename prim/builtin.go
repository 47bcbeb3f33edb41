package prim

import (
	"fmt"

	"github.com/rosette-vm/rvm/ob"
	"github.com/rosette-vm/rvm/rblerr"
)

// ArgSource is the narrow read surface a primitive type-asserts its opaque
// ctxt argument against to read the call's arguments — *vm.Ctxt satisfies
// it via Arg/NumArgs without prim ever importing package vm.
type ArgSource interface {
	Arg(i int) ob.Ob
	NumArgs() int
}

// DeadThreadPrim is a minimal reference primitive that always terminates
// the calling strand — the harness primitive spec.md §8 scenario 5 uses to
// exercise ApplyCmd's DeadThread path.
type DeadThreadPrim struct{ Label string }

func (p DeadThreadPrim) DispatchHelper(_ interface{}) (ob.Ob, error) {
	return ob.Ob{}, rblerr.DeadThread
}

func (p DeadThreadPrim) RuntimeError(message string) error {
	return rblerr.New(rblerr.RuntimeError, "%s: %s", p.Label, message)
}

// IdentityPrim returns its first argument unchanged, or a PrimMismatch
// error if called with no arguments or against a ctxt that doesn't expose
// ArgSource.
type IdentityPrim struct{}

func (IdentityPrim) DispatchHelper(ctxt interface{}) (ob.Ob, error) {
	src, ok := ctxt.(ArgSource)
	if !ok {
		return ob.Ob{}, rblerr.New(rblerr.PrimMismatch, "ctxt does not expose arguments")
	}
	if src.NumArgs() < 1 {
		return ob.Ob{}, rblerr.New(rblerr.PrimMismatch, "identity requires one argument, got %d", src.NumArgs())
	}
	return src.Arg(0), nil
}

func (IdentityPrim) RuntimeError(message string) error {
	return rblerr.New(rblerr.RuntimeError, "identity: %s", message)
}

// ArityCheckPrim reports PrimMismatch unless called with exactly Want
// arguments, otherwise returns Niv — useful in tests exercising
// ApplyPrimArg/Reg's destination bounds checks.
type ArityCheckPrim struct{ Want int }

func (p ArityCheckPrim) DispatchHelper(ctxt interface{}) (ob.Ob, error) {
	src, ok := ctxt.(ArgSource)
	if !ok {
		return ob.Ob{}, rblerr.New(rblerr.PrimMismatch, "ctxt does not expose arguments")
	}
	if src.NumArgs() != p.Want {
		return ob.Ob{}, p.RuntimeError(fmt.Sprintf("expected %d args, got %d", p.Want, src.NumArgs()))
	}
	return ob.Niv, nil
}

func (p ArityCheckPrim) RuntimeError(message string) error {
	return rblerr.New(rblerr.PrimMismatch, "%s", message)
}
