// Package ob implements the tagged value universe shared by every strand in
// the virtual machine: fixed integers, booleans, tuples, templates,
// environments, system-value markers, operations, and actors.
package ob

import (
	"fmt"
	"reflect"
)

// Tag identifies the capability/variant an Ob carries. It is the Go
// analogue of the source VM's OT* predicates.
type Tag byte

const (
	OTfixnum Tag = iota
	OTbool
	OTtuple
	OTtemplate
	OTenv
	OTstdoprn
	OTactor
	OTsysval
	OTniv
	OTabsent
	OTuser
)

func (t Tag) String() string {
	switch t {
	case OTfixnum:
		return "fixnum"
	case OTbool:
		return "bool"
	case OTtuple:
		return "tuple"
	case OTtemplate:
		return "template"
	case OTenv:
		return "env"
	case OTstdoprn:
		return "stdoprn"
	case OTactor:
		return "actor"
	case OTsysval:
		return "sysval"
	case OTniv:
		return "niv"
	case OTabsent:
		return "absent"
	default:
		return "user"
	}
}

// SysCode enumerates the system-level control signals a SysVal can carry.
type SysCode byte

const (
	SysUpcall SysCode = iota
	SysSuspend
	SysInterrupt
	SysSleep
	SysInvalid
	SysDeadThread
)

func (c SysCode) String() string {
	switch c {
	case SysUpcall:
		return "upcall"
	case SysSuspend:
		return "suspend"
	case SysInterrupt:
		return "interrupt"
	case SysSleep:
		return "sleep"
	case SysInvalid:
		return "invalid"
	case SysDeadThread:
		return "dead-thread"
	default:
		return "unknown-syscode"
	}
}

// Ob is a single tagged value. Composite payloads (Tuple, Template, Env,
// StdOprn, Actor, user data) live behind the Data field; Fixnum and Bool
// store their payload inline for the hot arithmetic/comparison path.
type Ob struct {
	tag    Tag
	fixnum int64
	bval   bool
	sys    SysCode
	Data   interface{}
}

// Niv is the canonical "no value" sentinel.
var Niv = Ob{tag: OTniv}

// Absent is the canonical "missing argument/binding" marker.
var Absent = Ob{tag: OTabsent}

// RBLTRUE and RBLFALSE are the canonical boolean singletons the immediate
// literal table and JmpFalse compare against.
var (
	RBLTRUE  = NewBool(true)
	RBLFALSE = NewBool(false)
)

// NewFixnum constructs a fixed-integer Ob.
func NewFixnum(n int64) Ob { return Ob{tag: OTfixnum, fixnum: n} }

// NewBool constructs a boolean Ob.
func NewBool(b bool) Ob { return Ob{tag: OTbool, bval: b} }

// NewSysVal constructs a system-value marker carrying the given code.
func NewSysVal(code SysCode) Ob { return Ob{tag: OTsysval, sys: code} }

// NewUser wraps an arbitrary user-defined payload with the OTuser tag.
func NewUser(data interface{}) Ob { return Ob{tag: OTuser, Data: data} }

// Tag reports which variant this Ob carries.
func (o Ob) Tag() Tag { return o.tag }

// IsSysVal reports whether this Ob is a system-level control marker —
// the `isSysVal` capability predicate from spec.md §3.
func (o Ob) IsSysVal() bool { return o.tag == OTsysval }

// SysVal returns the system code carried by a sys-value Ob. Calling it on a
// non-sysval Ob is a programmer error and panics, matching the source
// contract that callers check IsSysVal first.
func (o Ob) SysVal() SysCode {
	if o.tag != OTsysval {
		panic("ob: SysVal() called on non-sysval Ob")
	}
	return o.sys
}

// Fixnum extracts the integer payload. Panics if the tag is not OTfixnum.
func (o Ob) Fixnum() int64 {
	if o.tag != OTfixnum {
		panic("ob: Fixnum() called on non-fixnum Ob")
	}
	return o.fixnum
}

// Bool extracts the boolean payload. Panics if the tag is not OTbool.
func (o Ob) Bool() bool {
	if o.tag != OTbool {
		panic("ob: Bool() called on non-bool Ob")
	}
	return o.bval
}

// Is reports whether this Ob carries the given capability tag.
func (o Ob) Is(tag Tag) bool { return o.tag == tag }

// Eq implements the structural equality the object model relies on in lieu
// of a garbage-collected identity comparison (spec.md Non-goals: objects
// are externally managed, value-like, with structural equality).
func (o Ob) Eq(other Ob) bool {
	if o.tag != other.tag {
		return false
	}
	switch o.tag {
	case OTfixnum:
		return o.fixnum == other.fixnum
	case OTbool:
		return o.bval == other.bval
	case OTsysval:
		return o.sys == other.sys
	case OTniv, OTabsent:
		return true
	default:
		return reflect.DeepEqual(o.Data, other.Data)
	}
}

// Slot accesses a composite object's i-th component. Non-composite tags
// (fixnum, bool, niv, absent, sysval) have no slots and return Absent.
func (o Ob) Slot(i int) Ob {
	switch s := o.Data.(type) {
	case slotted:
		return s.Slot(i)
	default:
		return Absent
	}
}

// slotted is implemented by composite Ob payloads (Tuple, Env)
// that expose indexed components.
type slotted interface {
	Slot(i int) Ob
}

func (o Ob) String() string {
	switch o.tag {
	case OTfixnum:
		return fmt.Sprintf("%d", o.fixnum)
	case OTbool:
		return fmt.Sprintf("%t", o.bval)
	case OTsysval:
		return fmt.Sprintf("#[sysval %s]", o.sys)
	case OTniv:
		return "#niv"
	case OTabsent:
		return "#absent"
	default:
		return fmt.Sprintf("#[%s %v]", o.tag, o.Data)
	}
}
