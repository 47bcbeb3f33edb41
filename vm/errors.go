package vm

import (
	"github.com/rosette-vm/rvm/opcode"
	"github.com/rosette-vm/rvm/rblerr"
)

// Re-exported sentinels so callers can write vm.ErrDeadThread instead of
// reaching into package rblerr directly — mirrors the teacher's pattern of
// a small set of package-level error values (vm/errors.go in the reference
// repo) layered over a shared base.
var (
	ErrDeadThread    = rblerr.DeadThread
	ErrInvalid       = rblerr.Invalid
	ErrSuspend       = rblerr.Suspend
	ErrAbsent        = rblerr.Absent
	ErrUpcall        = rblerr.Upcall
	ErrPrimMismatch  = rblerr.PrimMismatch
	ErrRuntimeError  = rblerr.RuntimeError
)

// decorateError attaches opcode/ip context to an error surfaced from a step,
// matching the teacher's decorateError in vm/vm.go.
func decorateError(op opcode.Op, ip int, err error) error {
	if err == nil {
		return nil
	}
	return rblerr.WithContext(err, op.String(), ip)
}
