package prim

import (
	"errors"
	"testing"

	"github.com/rosette-vm/rvm/ob"
	"github.com/rosette-vm/rvm/rblerr"
)

type fakeCtxt struct{ args []ob.Ob }

func (f fakeCtxt) Arg(i int) ob.Ob { return f.args[i] }
func (f fakeCtxt) NumArgs() int    { return len(f.args) }

func TestDeadThreadPrimAlwaysDies(t *testing.T) {
	p := DeadThreadPrim{Label: "harness"}
	_, err := p.DispatchHelper(nil)
	if !errors.Is(err, rblerr.DeadThread) {
		t.Fatalf("expected DeadThread, got %v", err)
	}
}

func TestIdentityPrimReturnsFirstArg(t *testing.T) {
	ctxt := fakeCtxt{args: []ob.Ob{ob.NewFixnum(7)}}
	result, err := IdentityPrim{}.DispatchHelper(ctxt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Fixnum() != 7 {
		t.Fatalf("expected 7, got %v", result)
	}
}

func TestIdentityPrimRequiresAnArgument(t *testing.T) {
	_, err := IdentityPrim{}.DispatchHelper(fakeCtxt{})
	if !errors.Is(err, rblerr.PrimMismatch) {
		t.Fatalf("expected PrimMismatch, got %v", err)
	}
}

func TestIdentityPrimRejectsOpaqueCtxt(t *testing.T) {
	_, err := IdentityPrim{}.DispatchHelper(42)
	if !errors.Is(err, rblerr.PrimMismatch) {
		t.Fatalf("expected PrimMismatch, got %v", err)
	}
}

func TestArityCheckPrim(t *testing.T) {
	p := ArityCheckPrim{Want: 2}
	if _, err := p.DispatchHelper(fakeCtxt{args: []ob.Ob{ob.Niv, ob.Niv}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.DispatchHelper(fakeCtxt{args: []ob.Ob{ob.Niv}}); !errors.Is(err, rblerr.PrimMismatch) {
		t.Fatalf("expected PrimMismatch, got %v", err)
	}
}

func TestTableLookup(t *testing.T) {
	tbl := NewTable(IdentityPrim{}, DeadThreadPrim{Label: "harness"})
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", tbl.Len())
	}
	if tbl.Lookup(0) == nil {
		t.Fatal("expected entry 0 to resolve")
	}
	if tbl.Lookup(5) != nil {
		t.Fatal("expected out-of-range lookup to return nil")
	}
}
