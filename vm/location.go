package vm

import (
	"github.com/rosette-vm/rvm/globalenv"
	"github.com/rosette-vm/rvm/ob"
)

// LocKind discriminates the variants of the location algebra (spec.md §3).
type LocKind byte

const (
	// LocLimbo addresses nothing: fetch yields Niv, store always fails.
	LocLimbo LocKind = iota
	// LocArgReg addresses ctxt.argvec[N].
	LocArgReg
	// LocCtxtReg addresses ctxt's register file at N.
	LocCtxtReg
	// LocAtom addresses a global-environment entry named by a literal
	// fixnum index (the "tag/atom literal" variant of spec.md §3).
	LocAtom
)

// Location is a small value type: an address within a machine that may
// target the current context, the parent context, or the global
// environment, per spec.md §3.
type Location struct {
	Kind LocKind
	N    int
	Lit  ob.Ob
}

// Limbo is the canonical no-op location.
var Limbo = Location{Kind: LocLimbo}

// ArgReg addresses argvec slot n.
func ArgReg(n int) Location { return Location{Kind: LocArgReg, N: n} }

// CtxtReg addresses register n of the context's register file.
func CtxtReg(n int) Location { return Location{Kind: LocCtxtReg, N: n} }

// LocationAtom addresses a global-environment entry named by a literal
// fixnum index.
func LocationAtom(lit ob.Ob) Location { return Location{Kind: LocAtom, Lit: lit} }

// StoreOutcome is the tagged result of Location.Store (spec.md §3).
type StoreOutcome byte

const (
	StoreFail StoreOutcome = iota
	StoreCtxt
	StoreGlobal
)

// StoreResult carries the outcome of a store plus whichever replacement
// value is relevant to it.
type StoreResult struct {
	Outcome   StoreOutcome
	NewCtxt   *Ctxt
	NewGlobal globalenv.GlobalEnv
}

// Fetch reads the value addressed by loc out of ctxt/globalEnv.
func Fetch(loc Location, ctxt *Ctxt, g globalenv.GlobalEnv) ob.Ob {
	switch loc.Kind {
	case LocArgReg:
		if ctxt == nil {
			return ob.Absent
		}
		return ctxt.Argvec.Elem(loc.N)
	case LocCtxtReg:
		if ctxt == nil {
			return ob.Absent
		}
		return ctxt.GetReg(loc.N)
	case LocAtom:
		if loc.Lit.Tag() != ob.OTfixnum {
			return ob.Absent
		}
		return g.Entry(int(loc.Lit.Fixnum()))
	default:
		return ob.Niv
	}
}

// Store writes val to the address loc names, relative to ctxt/globalEnv.
// Per spec.md §3, a store may only ever succeed by replacing the context
// (LocArgReg/LocCtxtReg, by returning a new *Ctxt) or by replacing the
// global environment (LocAtom); LocLimbo and out-of-range targets fail.
func Store(loc Location, ctxt *Ctxt, g globalenv.GlobalEnv, val ob.Ob) StoreResult {
	switch loc.Kind {
	case LocArgReg:
		if ctxt == nil || loc.N < 0 || loc.N >= ctxt.Argvec.Len() {
			return StoreResult{Outcome: StoreFail}
		}
		newCtxt := ctxt.clone()
		newCtxt.Argvec = ctxt.Argvec.WithElem(loc.N, val)
		return StoreResult{Outcome: StoreCtxt, NewCtxt: newCtxt}
	case LocCtxtReg:
		if ctxt == nil {
			return StoreResult{Outcome: StoreFail}
		}
		newCtxt, ok := ctxt.withReg(loc.N, val)
		if !ok {
			return StoreResult{Outcome: StoreFail}
		}
		return StoreResult{Outcome: StoreCtxt, NewCtxt: newCtxt}
	case LocAtom:
		if loc.Lit.Tag() != ob.OTfixnum || loc.Lit.Fixnum() < 0 {
			return StoreResult{Outcome: StoreFail}
		}
		idx := int(loc.Lit.Fixnum())
		grown := g.Grow(idx + 1)
		return StoreResult{Outcome: StoreGlobal, NewGlobal: grown.WithEntry(idx, val)}
	default:
		return StoreResult{Outcome: StoreFail}
	}
}
