package ob

import "errors"

// ErrUpcall and ErrAbsent are the two failure modes lookupOBO can report:
// ErrUpcall asks the caller to yield back to the object system for a method
// re-dispatch; ErrAbsent means the key genuinely has no binding anywhere in
// the chain.
var (
	ErrUpcall = errors.New("env: lookup requires upcall")
	ErrAbsent = errors.New("env: binding absent")
)

// Env is a lexical-frame chain. Frames are value-like: ExtendWith always
// returns a new Env rather than mutating the receiver.
type Env struct {
	parent *Env
	slots  []Ob
	keys   []string
}

// TopEnv is the empty root of every lexical chain.
var TopEnv = Env{}

// NewEnv constructs a frame with the given keys/slots bound pairwise.
func NewEnv(parent *Env, keys []string, slots []Ob) Env {
	k := make([]string, len(keys))
	copy(k, keys)
	s := make([]Ob, len(slots))
	copy(s, slots)
	return Env{parent: parent, keys: k, slots: s}
}

// Parent returns the enclosing frame, or nil at the top of the chain.
func (e Env) Parent() *Env { return e.parent }

// Slot returns the i-th bound value in this frame, or Absent out of range.
func (e Env) Slot(i int) Ob {
	if i < 0 || i >= len(e.slots) {
		return Absent
	}
	return e.slots[i]
}

// AsOb wraps the env as an Ob carrying the OTenv tag.
func (e Env) AsOb() Ob { return Ob{tag: OTenv, Data: e} }

// EnvOf unwraps an Ob known to carry an env payload.
func EnvOf(o Ob) (Env, bool) {
	env, ok := o.Data.(Env)
	return env, ok && o.tag == OTenv
}

// ExtendWith binds a Template's keys to a tuple of actuals in a fresh frame
// whose parent is the receiver — spec.md §3's `Env.extendWith`.
func (e Env) ExtendWith(t Template, actuals Tuple) Env {
	parentCopy := e
	slots := make([]Ob, actuals.Len())
	for i := 0; i < actuals.Len(); i++ {
		slots[i] = actuals.Elem(i)
	}
	return Env{parent: &parentCopy, keys: append([]string(nil), t.Keys()...), slots: slots}
}

// localIndex finds key within this frame only.
func (e Env) localIndex(key string) (int, bool) {
	for i, k := range e.keys {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

// LookupOBO walks the lexical chain (Own-Binding-Or...) for key. If no
// binding is found in the pure lexical chain, it consults selfEnv (the
// actor's own extension frame). A key found in neither is reported as
// ErrUpcall when selfEnv has bindings or a parent — the object system is
// expected to re-dispatch method resolution from there — and as ErrAbsent
// only when selfEnv is an empty top-level frame.
func (e Env) LookupOBO(selfEnv Env, key string) (Ob, error) {
	for frame := &e; frame != nil; frame = frame.parent {
		if i, ok := frame.localIndex(key); ok {
			return frame.slots[i], nil
		}
	}
	if i, ok := selfEnv.localIndex(key); ok {
		return selfEnv.slots[i], nil
	}
	if selfEnv.parent != nil || len(selfEnv.keys) > 0 {
		return Ob{}, ErrUpcall
	}
	return Ob{}, ErrAbsent
}
