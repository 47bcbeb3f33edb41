package vm

import (
	"github.com/rosette-vm/rvm/ob"
	"github.com/rosette-vm/rvm/opcode"
	"github.com/rosette-vm/rvm/rblerr"
)

// Primitive-application opcode handlers — spec.md §4.4. The four ApplyPrim*
// opcodes share everything except where the result lands.

type primDest byte

const (
	primDestTag primDest = iota
	primDestArg
	primDestReg
	primDestCmd
)

func opApplyPrim(st *State, ins opcode.Instruction, dest primDest) {
	st.Ctxt.Nargs = uint16(ins.M)
	if dest == primDestTag {
		st.Loc = LocationAtom(st.Code.Lit(ins.V))
	}

	p := st.PrimTable.Lookup(ins.K)
	if p == nil {
		st.AppendDebug("no such primitive: k=" + itoa(ins.K))
		st.VMErrorFlag = true
		return
	}

	var result ob.Ob
	var err error
	if ins.U {
		result, err = unwindAndApplyPrim(st, p)
	} else {
		result, err = p.DispatchHelper(st.Ctxt)
	}

	disposePrimResult(st, ins, dest, result, err)
}

// unwindAndApplyPrim flattens argvec's trailing &rest slot into a temporary
// context before dispatching, then restores the pre-call ctxt verbatim —
// spec.md §4.4's argvec save/restore. This reproduces the source's
// documented gap (spec.md §9): the restore is unconditional, so any change
// the primitive made to the fields of the temporary ctxt it was handed
// (rslt, registers, argvec, ...) is discarded along with the temporary
// argvec, not merged back in. Nothing else in State is saved or restored.
func unwindAndApplyPrim(st *State, p primitiveLookup) (ob.Ob, error) {
	orig := st.Ctxt
	flat, disposition := orig.Argvec.FlattenRest()
	if disposition == ob.RestInvalidRest {
		return ob.Ob{}, rblerr.New(rblerr.RuntimeError, "&rest value is not a tuple")
	}
	if disposition == ob.RestAbsentRest {
		flat = ob.NIL
	}
	tmp := orig.clone()
	tmp.Argvec = flat
	tmp.Nargs = uint16(flat.Len())
	result, err := p.DispatchHelper(tmp)
	st.Ctxt = orig
	return result, err
}

// primitiveLookup is the narrow slice of prim.Prim unwindAndApplyPrim needs;
// spelled out locally so this file doesn't need to import package prim just
// for a parameter type (prim.Prim is already satisfied by whatever
// st.PrimTable.Lookup returns).
type primitiveLookup interface {
	DispatchHelper(ctxt interface{}) (ob.Ob, error)
}

func disposePrimResult(st *State, ins opcode.Instruction, dest primDest, result ob.Ob, err error) {
	if err != nil {
		if rblerr.Is(err, rblerr.DeadThread) {
			st.DoNextThreadFlag = true
			return
		}
		st.AppendDebug("primitive error: " + decorateError(ins.Op, st.PC, err).Error())
		st.VMErrorFlag = true
		return
	}

	if result.Is(ob.OTsysval) {
		handleException(st, result, ins.Op)
		st.DoNextThreadFlag = true
		return
	}

	switch dest {
	case primDestTag:
		sr := Store(st.Loc, st.Ctxt, st.GlobalEnv, result)
		switch sr.Outcome {
		case StoreFail:
			st.VMErrorFlag = true
		case StoreCtxt:
			st.Ctxt = sr.NewCtxt
			if ins.N {
				st.DoNextThreadFlag = true
			}
		case StoreGlobal:
			st.GlobalEnv = sr.NewGlobal
		}
	case primDestArg:
		if ins.A < 0 || ins.A >= st.Ctxt.Argvec.Len() {
			st.VMErrorFlag = true
			return
		}
		st.Ctxt.Argvec = st.Ctxt.Argvec.WithElem(ins.A, result)
		if ins.N {
			st.DoNextThreadFlag = true
		}
	case primDestReg:
		if !st.Ctxt.SetReg(ins.R, result) {
			registerAccessFailure(st, ins.R)
			return
		}
		if ins.N {
			st.DoNextThreadFlag = true
		}
	case primDestCmd:
		if ins.N {
			st.DoNextThreadFlag = true
		}
	}
}

// handleException routes a sys-value result per spec.md §4.5. It is called
// from disposePrimResult with an ApplyPrim-family op and from doXmit with
// op 0 (OpNop); fromPrim tells the two apart. An Upcall reaches OnUpcall
// with fromPrim set accordingly; a Suspend reaches OnSuspend only from the
// ApplyPrim family and is a no-op otherwise.
func handleException(st *State, sv ob.Ob, op opcode.Op) {
	fromPrim := op == opcode.OpApplyPrimTag || op == opcode.OpApplyPrimArg ||
		op == opcode.OpApplyPrimReg || op == opcode.OpApplyCmd
	switch sv.SysVal() {
	case ob.SysUpcall:
		if st.OnUpcall != nil {
			st.OnUpcall(st, st.Ctxt, fromPrim)
		}
	case ob.SysSuspend:
		if fromPrim && st.OnSuspend != nil {
			st.OnSuspend(st, st.Ctxt, true)
		}
	case ob.SysSleep:
		if st.OnSleep != nil {
			st.OnSleep(st, st.Ctxt)
		}
	case ob.SysInvalid, ob.SysDeadThread:
		// no-op by design (spec.md §4.5).
	case ob.SysInterrupt:
		st.AppendDebug("fatal interrupt during " + op.String())
		st.ExitFlag = true
		st.ExitCode = 1
	default:
		st.AppendDebug("fatal unknown sys-code during " + op.String())
		st.ExitFlag = true
		st.ExitCode = 1
	}
}
