package vm_test

import (
	"testing"

	"github.com/rosette-vm/rvm/code"
	"github.com/rosette-vm/rvm/ob"
	"github.com/rosette-vm/rvm/opcode"
	"github.com/rosette-vm/rvm/prim"
	"github.com/rosette-vm/rvm/vm"
)

// XferRsltToArg(a) followed by XferArgToRslt(a) is a round trip: rslt ends
// up holding exactly what it held before, with the argvec slot as a
// harmless detour.
func TestAlgebraRsltArgRoundTrip(t *testing.T) {
	c := code.New([]opcode.Instruction{
		{Op: opcode.OpAlloc, M: 1},
		{Op: opcode.OpXferRsltToArg, A: 0},
		{Op: opcode.OpXferArgToRslt, A: 0},
		{Op: opcode.OpHalt},
	}, nil)
	st := vm.New(c, 0, prim.NewTable())
	st.Ctxt.Rslt = ob.NewFixnum(42)

	vm.Run(st)

	if got := st.Ctxt.Rslt; got.Fixnum() != 42 {
		t.Fatalf("rslt = %v, want Fixnum(42) restored by the round trip", got)
	}
}

// IndLitToRslt(v) followed by XferRsltToReg(r) must leave register r
// holding exactly the literal-pool entry at v.
func TestAlgebraIndLitThroughRsltIntoReg(t *testing.T) {
	lits := []ob.Ob{ob.NewFixnum(7)}
	c := code.New([]opcode.Instruction{
		{Op: opcode.OpIndLitToRslt, V: 0},
		{Op: opcode.OpXferRsltToReg, R: 2},
		{Op: opcode.OpHalt},
	}, lits)
	st := vm.New(c, 0, prim.NewTable())

	vm.Run(st)

	if got := st.Ctxt.GetReg(2); got.Fixnum() != 7 {
		t.Fatalf("regs[2] = %v, want Fixnum(7)", got)
	}
}

// XferRegToRslt then XferRsltToReg into a different register is a copy,
// not a move: the source register is untouched.
func TestAlgebraRegToRsltToRegIsACopy(t *testing.T) {
	c := code.New([]opcode.Instruction{
		{Op: opcode.OpImmediateLitToReg, V: 3, R: 0},
		{Op: opcode.OpXferRegToRslt, R: 0},
		{Op: opcode.OpXferRsltToReg, R: 1},
		{Op: opcode.OpHalt},
	}, nil)
	st := vm.New(c, 0, prim.NewTable())

	vm.Run(st)

	if got := st.Ctxt.GetReg(0); got.Fixnum() != 3 {
		t.Fatalf("regs[0] = %v, want untouched Fixnum(3)", got)
	}
	if got := st.Ctxt.GetReg(1); got.Fixnum() != 3 {
		t.Fatalf("regs[1] = %v, want Fixnum(3) copied via rslt", got)
	}
}

// Fork queues a clone targeting p without disturbing the forking strand's
// own next instruction; Nxt is what actually hands control over. Until Nxt
// runs, the original strand keeps executing its own stream.
func TestAlgebraForkThenOwnNextInstructionStillRuns(t *testing.T) {
	c := code.New([]opcode.Instruction{
		{Op: opcode.OpFork, P: 3},
		{Op: opcode.OpImmediateLitToReg, V: 5, R: 0},
		{Op: opcode.OpHalt},
		{Op: opcode.OpHalt},
	}, nil)
	st := vm.New(c, 0, prim.NewTable())

	vm.Step(st) // Fork
	vm.Step(st) // the forking strand's own next instruction, not the fork target

	if got := st.Ctxt.GetReg(0); got.Fixnum() != 5 {
		t.Fatal("Fork must not redirect the forking strand's own instruction stream")
	}
	if len(st.StrandPool) != 1 {
		t.Fatal("the forked clone must still be queued, untouched")
	}
}
