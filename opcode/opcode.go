// Package opcode enumerates the VM's instruction set and the operand
// conventions opcodes share (spec.md §6): small unsigned integer fields
// named a/d/s (argvec indices), r (register), g (global-env entry), v
// (literal-pool index), l (lexical lift level), i (actor-indirection flag),
// o (slot offset), k (primitive index), m (nargs), n (next-thread flag), u
// (unwind-argvec flag), p (target PC).
package opcode

// Op identifies an instruction's operation.
type Op byte

const (
	OpNop Op = iota

	// Control transfer (spec.md §4.6)
	OpHalt
	OpPush
	OpPop
	OpNargs
	OpAlloc
	OpPushAlloc
	OpExtend
	OpOutstanding
	OpFork
	OpXmitArg
	OpXmitReg
	OpXmitTag
	OpXmit
	OpSend
	OpRtnTag
	OpRtn
	OpUpcallRtn
	OpUpcallResume
	OpNxt
	OpJmp
	OpJmpCut
	OpJmpFalse

	// Lookup & transfer (spec.md §4.7)
	OpLookupToArg
	OpLookupToReg
	OpXferLexToArg
	OpXferLexToReg
	OpXferGlobalToArg
	OpXferGlobalToReg
	OpXferArgToArg
	OpXferRsltToArg
	OpXferRsltToReg
	OpXferArgToRslt
	OpXferRegToRslt
	OpXferSrcToRslt
	OpIndLitToArg
	OpIndLitToReg
	OpIndLitToRslt
	OpImmediateLitToArg
	OpImmediateLitToReg

	// Primitive application (spec.md §4.4)
	OpApplyPrimTag
	OpApplyPrimArg
	OpApplyPrimReg
	OpApplyCmd

	// Unknown is the catch-all fatal opcode (spec.md §4.7).
	OpUnknown
)

var names = map[Op]string{
	OpNop:               "Nop",
	OpHalt:               "Halt",
	OpPush:                "Push",
	OpPop:                 "Pop",
	OpNargs:               "Nargs",
	OpAlloc:               "Alloc",
	OpPushAlloc:           "PushAlloc",
	OpExtend:              "Extend",
	OpOutstanding:         "Outstanding",
	OpFork:                "Fork",
	OpXmitArg:             "XmitArg",
	OpXmitReg:             "XmitReg",
	OpXmitTag:             "XmitTag",
	OpXmit:                "Xmit",
	OpSend:                "Send",
	OpRtnTag:              "RtnTag",
	OpRtn:                 "Rtn",
	OpUpcallRtn:           "UpcallRtn",
	OpUpcallResume:        "UpcallResume",
	OpNxt:                 "Nxt",
	OpJmp:                 "Jmp",
	OpJmpCut:              "JmpCut",
	OpJmpFalse:            "JmpFalse",
	OpLookupToArg:         "LookupToArg",
	OpLookupToReg:         "LookupToReg",
	OpXferLexToArg:        "XferLexToArg",
	OpXferLexToReg:        "XferLexToReg",
	OpXferGlobalToArg:     "XferGlobalToArg",
	OpXferGlobalToReg:     "XferGlobalToReg",
	OpXferArgToArg:        "XferArgToArg",
	OpXferRsltToArg:       "XferRsltToArg",
	OpXferRsltToReg:       "XferRsltToReg",
	OpXferArgToRslt:       "XferArgToRslt",
	OpXferRegToRslt:       "XferRegToRslt",
	OpXferSrcToRslt:       "XferSrcToRslt",
	OpIndLitToArg:         "IndLitToArg",
	OpIndLitToReg:         "IndLitToReg",
	OpIndLitToRslt:        "IndLitToRslt",
	OpImmediateLitToArg:   "ImmediateLitToArg",
	OpImmediateLitToReg:   "ImmediateLitToReg",
	OpApplyPrimTag:        "ApplyPrimTag",
	OpApplyPrimArg:        "ApplyPrimArg",
	OpApplyPrimReg:        "ApplyPrimReg",
	OpApplyCmd:            "ApplyCmd",
	OpUnknown:             "Unknown",
}

func (op Op) String() string {
	if n, ok := names[op]; ok {
		return n
	}
	return "???"
}

// SrcKind identifies where a transfer/lookup/literal opcode's source or
// destination argument lives — the decoded form of operand fields that can
// address either an argvec slot or a context register.
type SrcKind byte

const (
	// SrcArg addresses an argvec slot.
	SrcArg SrcKind = iota
	// SrcReg addresses a context register.
	SrcReg
)

// Instruction is one decoded bytecode instruction: an opcode plus the small
// unsigned operand fields spec.md §6 names. Not every field is meaningful
// for every opcode; each handler reads only the fields its opcode defines.
type Instruction struct {
	Op Op

	A int // argvec index (a/d/s conventions)
	D int
	S int
	R int // context register index
	G int // global-env entry index
	V int // literal-pool index
	L int // lexical lift level
	I bool // actor-indirection flag
	O int // slot offset
	K int // primitive index
	M int // nargs for this call
	N bool // next-thread-after-completion flag
	U bool // unwind-argvec flag
	P int // target PC
}
