package vm

import (
	"github.com/rosette-vm/rvm/ob"
	"github.com/rosette-vm/rvm/opcode"
)

// Lookup and data-transfer opcode handlers — spec.md §4.7.

// immediateLits is the fixed, ordered literal table ImmediateLitToArg/Reg
// index into: Fixnum(0..7), RBLTRUE, RBLFALSE, NIL, NIV — twelve entries,
// process-wide and immutable (spec.md §9 design notes).
var immediateLits = buildImmediateLits()

func buildImmediateLits() [12]ob.Ob {
	var t [12]ob.Ob
	for i := 0; i < 8; i++ {
		t[i] = ob.NewFixnum(int64(i))
	}
	t[8] = ob.RBLTRUE
	t[9] = ob.RBLFALSE
	t[10] = ob.NIL.AsOb()
	t[11] = ob.Niv
	return t
}

func immediateLit(v int) ob.Ob {
	if v < 0 || v >= len(immediateLits) {
		return ob.Absent
	}
	return immediateLits[v]
}

func opLookup(st *State, ins opcode.Instruction, dest opcode.SrcKind) {
	key := litKey(st.Code.Lit(ins.V))
	result, err := st.Ctxt.Env.LookupOBO(st.Ctxt.SelfEnv, key)
	if err != nil {
		if err == ob.ErrUpcall {
			st.DoNextThreadFlag = true
			return
		}
		handleMissingBinding(st, key, ins)
		st.DoNextThreadFlag = true
		return
	}
	writeDest(st, ins, dest, result)
}

// handleMissingBinding is the extension point spec.md §4.7 names for an
// Absent lookup result.
func handleMissingBinding(st *State, key string, ins opcode.Instruction) {
	st.AppendDebug("missing binding: " + key + " (v=" + itoa(ins.V) + ")")
}

// litKey extracts the symbolic key a lookup opcode's literal-pool entry
// names. Keys travel as user-tagged Ob wrapping a string, the representation
// the compiler-out-of-scope collaborator is assumed to emit.
func litKey(lit ob.Ob) string {
	if s, ok := lit.Data.(string); ok {
		return s
	}
	return lit.String()
}

func opXferLex(st *State, ins opcode.Instruction, dest opcode.SrcKind) {
	env := st.Ctxt.Env
	for i := 0; i < ins.L; i++ {
		if env.Parent() == nil {
			break
		}
		env = *env.Parent()
	}
	var val ob.Ob
	if ins.I {
		if actor, ok := ob.ActorOf(env.Slot(0)); ok {
			val = actor.Extension.Slot(ins.O)
		} else {
			val = ob.Absent
		}
	} else {
		val = env.Slot(ins.O)
	}
	writeDest(st, ins, dest, val)
}

func opXferGlobal(st *State, ins opcode.Instruction, dest opcode.SrcKind) {
	writeDest(st, ins, dest, st.GlobalEnv.Entry(ins.G))
}

func opXferArgToArg(st *State, ins opcode.Instruction) {
	st.Ctxt.Argvec = st.Ctxt.Argvec.WithElem(ins.D, st.Ctxt.Argvec.Elem(ins.S))
}

func opXferRsltToDest(st *State, ins opcode.Instruction, dest opcode.SrcKind) {
	writeDest(st, ins, dest, st.Ctxt.Rslt)
}

func opXferArgToRslt(st *State, ins opcode.Instruction) {
	st.Ctxt.Rslt = st.Ctxt.Argvec.Elem(ins.A)
}

func opXferRegToRslt(st *State, ins opcode.Instruction) {
	st.Ctxt.Rslt = st.Ctxt.GetReg(ins.R)
}

func opXferSrcToRslt(st *State, ins opcode.Instruction) {
	if ins.I {
		st.Ctxt.Rslt = st.Ctxt.GetReg(ins.R)
		return
	}
	st.Ctxt.Rslt = st.Ctxt.Argvec.Elem(ins.S)
}

func opIndLit(st *State, ins opcode.Instruction, dest indDest) {
	lit := st.Code.Lit(ins.V)
	switch dest {
	case indDestRslt:
		st.Ctxt.Rslt = lit
	default:
		writeDest(st, ins, srcKindFor(dest), lit)
	}
}

func opImmediateLit(st *State, ins opcode.Instruction, dest opcode.SrcKind) {
	writeDest(st, ins, dest, immediateLit(ins.V))
}

// indDest distinguishes IndLitTo{Arg,Reg,Rslt}'s three destinations — Rslt
// is not expressible via opcode.SrcKind alone.
type indDest byte

const (
	indDestArg indDest = iota
	indDestReg
	indDestRslt
)

func srcKindFor(d indDest) opcode.SrcKind {
	if d == indDestReg {
		return opcode.SrcReg
	}
	return opcode.SrcArg
}

// writeDest stores val into the argvec slot or register an opcode's dest
// kind names, using ins.A for SrcArg and ins.R for SrcReg per spec.md §6's
// shared operand conventions.
func writeDest(st *State, ins opcode.Instruction, dest opcode.SrcKind, val ob.Ob) {
	switch dest {
	case opcode.SrcArg:
		st.Ctxt.Argvec = st.Ctxt.Argvec.WithElem(ins.A, val)
	case opcode.SrcReg:
		if !st.Ctxt.SetReg(ins.R, val) {
			registerAccessFailure(st, ins.R)
		}
	}
}

// registerAccessFailure implements spec.md §4.8's register-access-failure
// policy: fatal, exit code 1, debug trace when enabled.
func registerAccessFailure(st *State, r int) {
	st.ExitFlag = true
	st.ExitCode = 1
	st.AppendDebug("Unknown register: " + itoa(r))
}

func opUnknown(st *State, _ opcode.Instruction) {
	st.ExitFlag = true
	st.ExitCode = 1
}
