package ob

// Template is a pattern for binding actuals into an environment frame. It
// names a fixed arity of keys and, optionally, a trailing &rest key that
// soaks up the remainder of the argument vector as a nested tuple.
type Template struct {
	keys     []string
	restKey  string
	hasRest  bool
}

// NewTemplate builds a fixed-arity template (no &rest).
func NewTemplate(keys ...string) Template {
	return Template{keys: append([]string(nil), keys...)}
}

// NewRestTemplate builds a template whose trailing key collects the
// remaining actuals as a tuple.
func NewRestTemplate(restKey string, keys ...string) Template {
	return Template{keys: append([]string(nil), keys...), restKey: restKey, hasRest: true}
}

// Keys returns the full key set this template binds, in order — the
// `keymeta` accessor from spec.md §3. When HasRest, the rest key is the
// last entry.
func (t Template) Keys() []string {
	if !t.hasRest {
		return t.keys
	}
	return append(append([]string(nil), t.keys...), t.restKey)
}

// HasRest reports whether this template collects a trailing &rest tuple.
func (t Template) HasRest() bool { return t.hasRest }

// MatchPattern attempts to bind nargs actuals from argvec against the
// template. On a fixed-arity mismatch (too few/too many actuals and no
// &rest to absorb the remainder) it reports ok=false and the handler is
// expected to invoke handleFormalsMismatch per spec.md §4.6.
func (t Template) MatchPattern(argvec Tuple, nargs int) (Tuple, bool) {
	fixed := len(t.keys)
	if !t.hasRest {
		if nargs != fixed {
			return NIL, false
		}
		elems := make([]Ob, fixed)
		for i := 0; i < fixed; i++ {
			elems[i] = argvec.Elem(i)
		}
		return NewTuple(elems...), true
	}
	if nargs < fixed {
		return NIL, false
	}
	elems := make([]Ob, 0, fixed+1)
	for i := 0; i < fixed; i++ {
		elems = append(elems, argvec.Elem(i))
	}
	restElems := make([]Ob, 0, nargs-fixed)
	for i := fixed; i < nargs; i++ {
		restElems = append(restElems, argvec.Elem(i))
	}
	elems = append(elems, NewTuple(restElems...).AsOb())
	return NewTuple(elems...), true
}

// AsOb wraps the template as an Ob carrying the OTtemplate tag, suitable for
// storage in a Code object's literal pool.
func (t Template) AsOb() Ob { return Ob{tag: OTtemplate, Data: t} }

// TemplateOf unwraps an Ob known to carry a template payload.
func TemplateOf(o Ob) (Template, bool) {
	t, ok := o.Data.(Template)
	return t, ok && o.tag == OTtemplate
}
