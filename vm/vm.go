// Package vm implements the dispatch loop, flag machine, scheduler, and
// opcode handlers for the register-oriented strand VM (spec.md §§2-4):
// the engine that walks a Code object's instruction stream against a
// GlobalEnv and a pool of cooperative Ctxt strands.
package vm

import (
	"github.com/rosette-vm/rvm/code"
	"github.com/rosette-vm/rvm/opcode"
	"github.com/rosette-vm/rvm/prim"
)

// New builds a VM ready to run c from pc 0 on a fresh root strand.
func New(c *code.Code, globalSlots int, primTable *prim.Table) *State {
	root := NewRootCtxt(c, nil)
	return NewState(root, globalSlots, primTable)
}

// executeInstruction is the opcode handler table spec.md §9 calls "the
// principal sealed-trait match" — a single exhaustive switch over Op. Each
// case is a pure state transition per spec.md §7's propagation policy;
// decorateError exists for the rare handler (primapply.go) that surfaces a
// genuine *rblerr.Error for debug-trail purposes rather than a bare flag.
func executeInstruction(st *State, ins opcode.Instruction) {
	switch ins.Op {
	case opcode.OpNop:
		// no-op.

	case opcode.OpHalt:
		opHalt(st, ins)
	case opcode.OpPush:
		opPush(st, ins)
	case opcode.OpPop:
		opPop(st, ins)
	case opcode.OpNargs:
		opNargs(st, ins)
	case opcode.OpAlloc:
		opAlloc(st, ins)
	case opcode.OpPushAlloc:
		opPushAlloc(st, ins)
	case opcode.OpExtend:
		opExtend(st, ins)
	case opcode.OpOutstanding:
		opOutstanding(st, ins)
	case opcode.OpFork:
		opFork(st, ins)
	case opcode.OpXmitArg, opcode.OpXmitReg, opcode.OpXmitTag, opcode.OpXmit:
		opXmit(st, ins)
	case opcode.OpSend:
		opSend(st, ins)
	case opcode.OpRtnTag, opcode.OpRtn:
		opRtn(st, ins)
	case opcode.OpUpcallRtn:
		opUpcallRtn(st, ins)
	case opcode.OpUpcallResume:
		opUpcallResume(st, ins)
	case opcode.OpNxt:
		opNxt(st, ins)
	case opcode.OpJmp:
		opJmp(st, ins)
	case opcode.OpJmpCut:
		opJmpCut(st, ins)
	case opcode.OpJmpFalse:
		opJmpFalse(st, ins)

	case opcode.OpLookupToArg:
		opLookup(st, ins, opcode.SrcArg)
	case opcode.OpLookupToReg:
		opLookup(st, ins, opcode.SrcReg)
	case opcode.OpXferLexToArg:
		opXferLex(st, ins, opcode.SrcArg)
	case opcode.OpXferLexToReg:
		opXferLex(st, ins, opcode.SrcReg)
	case opcode.OpXferGlobalToArg:
		opXferGlobal(st, ins, opcode.SrcArg)
	case opcode.OpXferGlobalToReg:
		opXferGlobal(st, ins, opcode.SrcReg)
	case opcode.OpXferArgToArg:
		opXferArgToArg(st, ins)
	case opcode.OpXferRsltToArg:
		opXferRsltToDest(st, ins, opcode.SrcArg)
	case opcode.OpXferRsltToReg:
		opXferRsltToDest(st, ins, opcode.SrcReg)
	case opcode.OpXferArgToRslt:
		opXferArgToRslt(st, ins)
	case opcode.OpXferRegToRslt:
		opXferRegToRslt(st, ins)
	case opcode.OpXferSrcToRslt:
		opXferSrcToRslt(st, ins)
	case opcode.OpIndLitToArg:
		opIndLit(st, ins, indDestArg)
	case opcode.OpIndLitToReg:
		opIndLit(st, ins, indDestReg)
	case opcode.OpIndLitToRslt:
		opIndLit(st, ins, indDestRslt)
	case opcode.OpImmediateLitToArg:
		opImmediateLit(st, ins, opcode.SrcArg)
	case opcode.OpImmediateLitToReg:
		opImmediateLit(st, ins, opcode.SrcReg)

	case opcode.OpApplyPrimTag:
		opApplyPrim(st, ins, primDestTag)
	case opcode.OpApplyPrimArg:
		opApplyPrim(st, ins, primDestArg)
	case opcode.OpApplyPrimReg:
		opApplyPrim(st, ins, primDestReg)
	case opcode.OpApplyCmd:
		opApplyPrim(st, ins, primDestCmd)

	default:
		opUnknown(st, ins)
	}
}
