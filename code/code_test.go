package code

import (
	"testing"

	"github.com/rosette-vm/rvm/ob"
	"github.com/rosette-vm/rvm/opcode"
)

func TestNewCopiesDefensively(t *testing.T) {
	ops := []opcode.Instruction{{Op: opcode.OpHalt}}
	lits := []ob.Ob{ob.NewFixnum(1)}

	c := New(ops, lits)
	ops[0] = opcode.Instruction{Op: opcode.OpNop}
	lits[0] = ob.NewFixnum(99)

	if c.At(0).Op != opcode.OpHalt {
		t.Fatal("New must copy the instruction slice, not alias it")
	}
	if c.Lit(0).Fixnum() != 1 {
		t.Fatal("New must copy the literal slice, not alias it")
	}
}

func TestLenAndAt(t *testing.T) {
	c := New([]opcode.Instruction{{Op: opcode.OpHalt}, {Op: opcode.OpNop}}, nil)
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	if c.At(1).Op != opcode.OpNop {
		t.Fatalf("At(1) = %v, want OpNop", c.At(1).Op)
	}
}

func TestLitOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Lit out of range to panic")
		}
	}()
	New(nil, nil).Lit(0)
}
