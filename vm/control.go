package vm

import (
	"github.com/rosette-vm/rvm/code"
	"github.com/rosette-vm/rvm/ob"
	"github.com/rosette-vm/rvm/opcode"
)

// Control-transfer opcode handlers — spec.md §4.6. Each handler is a pure
// state transition: it reads/writes st and the installed ctxt directly and
// never returns an error; failure modes are encoded as flags, per spec.md
// §7's "per-opcode handlers never raise" propagation policy.

func opHalt(st *State, _ opcode.Instruction) {
	st.ExitFlag = true
	st.ExitCode = 0
}

func opPush(st *State, _ opcode.Instruction) {
	st.Ctxt = Push(st.Ctxt)
}

func opPop(st *State, _ opcode.Instruction) {
	if st.Ctxt.Parent != nil {
		st.Ctxt = st.Ctxt.Parent
	}
}

func opNargs(st *State, ins opcode.Instruction) {
	st.Ctxt.Nargs = uint16(ins.M)
}

func opAlloc(st *State, ins opcode.Instruction) {
	st.Ctxt.Argvec = ob.NewTupleOf(ins.M, ob.Niv)
}

func opPushAlloc(st *State, ins opcode.Instruction) {
	child := Push(st.Ctxt)
	child.Argvec = ob.NewTupleOf(ins.M, ob.Niv)
	st.Ctxt = child
}

func opExtend(st *State, ins opcode.Instruction) {
	lit := st.Code.Lit(ins.V)
	tmpl, ok := ob.TemplateOf(lit)
	if !ok {
		handleFormalsMismatch(st, ins)
		return
	}
	actuals, matched := tmpl.MatchPattern(st.Ctxt.Argvec, int(st.Ctxt.Nargs))
	if !matched {
		handleFormalsMismatch(st, ins)
		return
	}
	st.Ctxt.Nargs = 0
	st.Ctxt.Env = st.Ctxt.Env.ExtendWith(tmpl, actuals)
}

// handleFormalsMismatch is the extension point spec.md §4.6 names for a
// template/argvec arity mismatch on Extend; left as a debug trace plus a
// next-thread switch, matching the "stub, record as extension point"
// framing used elsewhere in this revision (§4.5).
func handleFormalsMismatch(st *State, ins opcode.Instruction) {
	st.AppendDebug("formals mismatch on Extend(v=" + itoa(ins.V) + ")")
	st.DoNextThreadFlag = true
}

// opOutstanding implements Outstanding(p,n): the `n` operand (a pending-reply
// count, not the usual next-thread boolean) travels in the D field since
// Instruction.N is reserved for the shared next-thread-flag convention.
func opOutstanding(st *State, ins opcode.Instruction) {
	st.Ctxt.PC = ins.P
	st.Ctxt.Outstanding = int32(ins.D)
}

func opFork(st *State, ins opcode.Instruction) {
	child := st.Ctxt.Fork(ins.P)
	st.StrandPool = append([]*Ctxt{child}, st.StrandPool...)
}

func xmitLocation(ins opcode.Instruction, c *code.Code) Location {
	switch ins.Op {
	case opcode.OpXmitArg:
		return ArgReg(ins.A)
	case opcode.OpXmitReg:
		return CtxtReg(ins.R)
	case opcode.OpXmitTag:
		return LocationAtom(c.Lit(ins.V))
	default:
		return Limbo
	}
}

func opXmit(st *State, ins opcode.Instruction) {
	st.Ctxt.Nargs = uint16(ins.M)
	st.Ctxt.Tag = xmitLocation(ins, st.Code)
	st.XmitData = XmitScratch{Unwind: ins.U, Next: ins.N}
	st.DoXmitFlag = true
}

func opSend(st *State, ins opcode.Instruction) {
	st.Ctxt.Parent = nil
	st.Ctxt.Nargs = uint16(ins.M)
	st.Ctxt.Tag = xmitLocation(ins, st.Code)
	st.XmitData = XmitScratch{Unwind: ins.U, Next: ins.N}
	st.DoXmitFlag = true
}

func opRtn(st *State, ins opcode.Instruction) {
	if ins.Op == opcode.OpRtnTag {
		st.Ctxt.Tag = LocationAtom(st.Code.Lit(ins.V))
	}
	st.DoRtnData = ins.N
	st.DoRtnFlag = true
}

// opUpcallRtn stores ctxt.rslt directly into ctxt.tag of ctxt.parent,
// bypassing the doRtnFlag/doRtnData machinery entirely. This intentionally
// reproduces the source gap spec.md §9 flags: unlike the Rtn family, this
// path never touches doRtnData/doRtnFlag, so a caller relying on those
// scratch fields after an upcall-return will see stale values.
func opUpcallRtn(st *State, ins opcode.Instruction) {
	if ins.V != 0 {
		// a nonzero v operand re-targets ctxt.tag before the store, mirroring
		// Rtn's optional tag-set (v,n) signature.
		st.Ctxt.Tag = LocationAtom(st.Code.Lit(ins.V))
	}
	parent := st.Ctxt.Parent
	if parent == nil {
		st.VMErrorFlag = true
		return
	}
	result := Store(st.Ctxt.Tag, parent, st.GlobalEnv, st.Ctxt.Rslt)
	switch result.Outcome {
	case StoreFail:
		st.VMErrorFlag = true
	case StoreCtxt:
		st.Ctxt = result.NewCtxt
	case StoreGlobal:
		st.GlobalEnv = result.NewGlobal
		st.Ctxt = parent
	}
	if ins.N {
		st.DoNextThreadFlag = true
	}
}

func opUpcallResume(st *State, _ opcode.Instruction) {
	if st.Ctxt.Parent != nil {
		st.Ctxt.Parent.ScheduleStrand(st)
	}
	st.DoNextThreadFlag = true
}

func opNxt(st *State, _ opcode.Instruction) {
	exit := getNextStrand(st)
	if exit {
		st.ExitFlag = true
		st.ExitCode = 0
	}
}

func opJmp(st *State, ins opcode.Instruction) {
	st.Ctxt.PC = ins.P
	st.PC = ins.P
}

func opJmpCut(st *State, ins opcode.Instruction) {
	env := st.Ctxt.Env
	for i := 0; i < ins.M; i++ {
		if env.Parent() == nil {
			break
		}
		env = *env.Parent()
	}
	st.Ctxt.Env = env
	st.Ctxt.PC = ins.P
	st.PC = ins.P
}

func opJmpFalse(st *State, ins opcode.Instruction) {
	if st.Ctxt.Rslt.Eq(ob.RBLFALSE) {
		st.Ctxt.PC = ins.P
		st.PC = ins.P
	}
}

// itoa is a tiny dependency-free int formatter for debug strings, avoiding
// a fmt import in this file for a single call site.
func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
