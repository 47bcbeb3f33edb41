package ob

// Dispatcher is the fixed interface a StdOprn target exposes to doXmit:
// "StdOprn.dispatch" from spec.md §6. The concrete method-resolution logic
// behind it is the object system's business and explicitly out of scope
// here (spec.md §1) — the VM only needs to invoke it and observe the
// resulting Ob/error.
type Dispatcher interface {
	Dispatch(state interface{}) (interface{}, error)
}

// StdOprn wraps a Dispatcher so it can travel through the Ob universe and
// be addressed as ctxt.trgt.
type StdOprn struct {
	Name       string
	Dispatcher Dispatcher
}

// AsOb wraps the operation as an Ob carrying the OTstdoprn tag.
func (s StdOprn) AsOb() Ob { return Ob{tag: OTstdoprn, Data: s} }

// StdOprnOf unwraps an Ob known to carry a StdOprn payload.
func StdOprnOf(o Ob) (StdOprn, bool) {
	s, ok := o.Data.(StdOprn)
	return s, ok && o.tag == OTstdoprn
}

// Actor is the minimal actor payload: an identity plus the extension frame
// actors expose to XferLexToArg/Reg's indirection flag.
type Actor struct {
	Name      string
	Extension Env
}

// AsOb wraps the actor as an Ob carrying the OTactor tag.
func (a Actor) AsOb() Ob { return Ob{tag: OTactor, Data: a} }

// ActorOf unwraps an Ob known to carry an actor payload.
func ActorOf(o Ob) (Actor, bool) {
	a, ok := o.Data.(Actor)
	return a, ok && o.tag == OTactor
}
