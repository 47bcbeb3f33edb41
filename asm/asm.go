// Package asm is a small line-oriented textual assembler for the VM's
// Code objects — convenient for tests and the cmd/rvm stepper, not a
// general compiler (spec.md §1 keeps lexing/parsing/compilation out of
// scope; this package exists purely so examples and tests can write
// bytecode by hand instead of constructing opcode.Instruction values
// field by field).
package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rosette-vm/rvm/code"
	"github.com/rosette-vm/rvm/ob"
	"github.com/rosette-vm/rvm/opcode"
)

var mnemonics = buildMnemonics()

func buildMnemonics() map[string]opcode.Op {
	m := make(map[string]opcode.Op)
	for _, op := range []opcode.Op{
		opcode.OpNop, opcode.OpHalt, opcode.OpPush, opcode.OpPop, opcode.OpNargs,
		opcode.OpAlloc, opcode.OpPushAlloc, opcode.OpExtend, opcode.OpOutstanding,
		opcode.OpFork, opcode.OpXmitArg, opcode.OpXmitReg, opcode.OpXmitTag,
		opcode.OpXmit, opcode.OpSend, opcode.OpRtnTag, opcode.OpRtn,
		opcode.OpUpcallRtn, opcode.OpUpcallResume, opcode.OpNxt, opcode.OpJmp,
		opcode.OpJmpCut, opcode.OpJmpFalse, opcode.OpLookupToArg,
		opcode.OpLookupToReg, opcode.OpXferLexToArg, opcode.OpXferLexToReg,
		opcode.OpXferGlobalToArg, opcode.OpXferGlobalToReg, opcode.OpXferArgToArg,
		opcode.OpXferRsltToArg, opcode.OpXferRsltToReg, opcode.OpXferArgToRslt,
		opcode.OpXferRegToRslt, opcode.OpXferSrcToRslt, opcode.OpIndLitToArg,
		opcode.OpIndLitToReg, opcode.OpIndLitToRslt, opcode.OpImmediateLitToArg,
		opcode.OpImmediateLitToReg, opcode.OpApplyPrimTag, opcode.OpApplyPrimArg,
		opcode.OpApplyPrimReg, opcode.OpApplyCmd, opcode.OpUnknown,
	} {
		m[strings.ToLower(op.String())] = op
	}
	return m
}

// Assemble parses a listing into a Code object. Format, line by line:
//
//	.lit fixnum 10        declares literal-pool entry 0 as Fixnum(10)
//	.lit true              ...entry 1 as RBLTRUE
//	Jmp p=2                an instruction; bare mnemonic, then field=value pairs
//	Halt
//
// Blank lines and lines starting with # are ignored. Literal declarations
// must all precede the first instruction.
func Assemble(listing string) (*code.Code, error) {
	var ops []opcode.Instruction
	var lits []ob.Ob
	seenInstruction := false

	for lineNo, raw := range strings.Split(listing, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, ".lit") {
			if seenInstruction {
				return nil, fmt.Errorf("asm: line %d: literal declared after first instruction", lineNo+1)
			}
			lit, err := parseLit(line)
			if err != nil {
				return nil, fmt.Errorf("asm: line %d: %w", lineNo+1, err)
			}
			lits = append(lits, lit)
			continue
		}
		seenInstruction = true
		ins, err := parseInstruction(line)
		if err != nil {
			return nil, fmt.Errorf("asm: line %d: %w", lineNo+1, err)
		}
		ops = append(ops, ins)
	}

	return code.New(ops, lits), nil
}

func parseLit(line string) (ob.Ob, error) {
	fields := strings.Fields(strings.TrimPrefix(line, ".lit"))
	if len(fields) == 0 {
		return ob.Ob{}, fmt.Errorf("empty .lit directive")
	}
	switch fields[0] {
	case "fixnum":
		if len(fields) != 2 {
			return ob.Ob{}, fmt.Errorf(".lit fixnum requires one argument")
		}
		n, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return ob.Ob{}, err
		}
		return ob.NewFixnum(n), nil
	case "true":
		return ob.RBLTRUE, nil
	case "false":
		return ob.RBLFALSE, nil
	case "niv":
		return ob.Niv, nil
	case "absent":
		return ob.Absent, nil
	default:
		return ob.Ob{}, fmt.Errorf("unknown .lit kind %q", fields[0])
	}
}

func parseInstruction(line string) (opcode.Instruction, error) {
	fields := strings.Fields(line)
	op, ok := mnemonics[strings.ToLower(fields[0])]
	if !ok {
		return opcode.Instruction{}, fmt.Errorf("unknown mnemonic %q", fields[0])
	}
	ins := opcode.Instruction{Op: op}
	for _, kv := range fields[1:] {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 {
			return opcode.Instruction{}, fmt.Errorf("malformed operand %q", kv)
		}
		if err := setField(&ins, parts[0], parts[1]); err != nil {
			return opcode.Instruction{}, err
		}
	}
	return ins, nil
}

func setField(ins *opcode.Instruction, name, value string) error {
	if name == "i" || name == "n" || name == "u" {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("operand %q: %w", name, err)
		}
		switch name {
		case "i":
			ins.I = b
		case "n":
			ins.N = b
		case "u":
			ins.U = b
		}
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("operand %q: %w", name, err)
	}
	switch name {
	case "a":
		ins.A = n
	case "d":
		ins.D = n
	case "s":
		ins.S = n
	case "r":
		ins.R = n
	case "g":
		ins.G = n
	case "v":
		ins.V = n
	case "l":
		ins.L = n
	case "o":
		ins.O = n
	case "k":
		ins.K = n
	case "m":
		ins.M = n
	case "p":
		ins.P = n
	default:
		return fmt.Errorf("unknown operand field %q", name)
	}
	return nil
}
