package vm_test

import (
	"strings"
	"testing"

	"github.com/rosette-vm/rvm/code"
	"github.com/rosette-vm/rvm/ob"
	"github.com/rosette-vm/rvm/opcode"
	"github.com/rosette-vm/rvm/prim"
	"github.com/rosette-vm/rvm/vm"
)

func TestBoundaryApplyPrimArgOutOfRangeSwitchesStrand(t *testing.T) {
	pt := prim.NewTable(prim.ArityCheckPrim{Want: 0})
	c := code.New([]opcode.Instruction{
		{Op: opcode.OpApplyPrimArg, K: 0, A: 0},
		{Op: opcode.OpHalt},
	}, nil)
	st := vm.New(c, 0, pt)

	vm.Step(st)

	if !st.ExitFlag {
		t.Fatal("an out-of-range ApplyPrimArg destination raises a VM error, which switches strands; with none queued the VM exits")
	}
}

func TestBoundaryLookupToArgMissingBindingSwitchesStrand(t *testing.T) {
	lits := []ob.Ob{ob.NewUser("missing-key")}
	c := code.New([]opcode.Instruction{
		{Op: opcode.OpLookupToArg, V: 0, A: 0},
		{Op: opcode.OpHalt},
	}, lits)
	st := vm.New(c, 0, prim.NewTable())
	st.Debug = true

	vm.Step(st)

	if !st.ExitFlag {
		t.Fatal("a missing binding switches strands; with none queued the VM exits")
	}
	found := false
	for _, line := range st.DebugInfo {
		if strings.Contains(line, "missing binding") {
			found = true
		}
	}
	if !found {
		t.Fatal("expected a missing-binding debug trace")
	}
}

func TestBoundaryExtendArityMismatchSwitchesStrand(t *testing.T) {
	tmpl := ob.NewTemplate("a", "b")
	lits := []ob.Ob{tmpl.AsOb()}
	c := code.New([]opcode.Instruction{
		{Op: opcode.OpExtend, V: 0},
		{Op: opcode.OpHalt},
	}, lits)
	st := vm.New(c, 0, prim.NewTable())
	st.Ctxt.Nargs = 1 // template wants 2

	vm.Step(st)

	if !st.ExitFlag {
		t.Fatal("a formals mismatch on Extend switches strands; with none queued the VM exits")
	}
}

func TestBoundaryEmptyPoolsHaltsWithCodeZero(t *testing.T) {
	c := code.New([]opcode.Instruction{{Op: opcode.OpNxt}, {Op: opcode.OpHalt}}, nil)
	st := vm.New(c, 0, prim.NewTable())

	vm.Step(st)

	if !st.ExitFlag || st.ExitCode != 0 {
		t.Fatalf("exitFlag=%v exitCode=%d, want true/0", st.ExitFlag, st.ExitCode)
	}
}

func TestBoundaryEmptyPoolsWithNsigsSetsDoAsyncWaitFlag(t *testing.T) {
	c := code.New([]opcode.Instruction{{Op: opcode.OpNxt}, {Op: opcode.OpHalt}}, nil)
	st := vm.New(c, 0, prim.NewTable())
	st.Nsigs = 1

	vm.Step(st)

	if st.ExitFlag {
		t.Fatal("a pending async signal must not exit the VM")
	}
	if !st.DoAsyncWaitFlag {
		t.Fatal("expected doAsyncWaitFlag once strandPool and sleeperPool are both empty but nsigs > 0")
	}
}
