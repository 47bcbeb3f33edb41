package ob

// RestDisposition reports how Tuple.FlattenRest handled a trailing &rest
// slot when unwinding an argument vector for a primitive call.
type RestDisposition byte

const (
	// RestOK means the rest slot held a proper tuple that was spliced in.
	RestOK RestDisposition = iota
	// RestAbsentRest means there was no rest slot to flatten.
	RestAbsentRest
	// RestInvalidRest means the rest slot held something other than a tuple.
	RestInvalidRest
)

// Tuple is an ordered, immutable sequence of Ob used for argument vectors,
// compound literals, and pattern actuals.
type Tuple struct {
	elems []Ob
}

// NIL is the canonical empty tuple.
var NIL = Tuple{}

// NewTuple builds a tuple from the given elements (copied defensively).
func NewTuple(elems ...Ob) Tuple {
	cp := make([]Ob, len(elems))
	copy(cp, elems)
	return Tuple{elems: cp}
}

// NewTupleOf builds a tuple of n copies of fill — the shape Alloc(n) needs.
func NewTupleOf(n int, fill Ob) Tuple {
	cp := make([]Ob, n)
	for i := range cp {
		cp[i] = fill
	}
	return Tuple{elems: cp}
}

// Len reports the number of elements.
func (t Tuple) Len() int { return len(t.elems) }

// Elem returns the i-th element, or Absent if out of range.
func (t Tuple) Elem(i int) Ob {
	if i < 0 || i >= len(t.elems) {
		return Absent
	}
	return t.elems[i]
}

// Slot implements the slotted interface so Tuple can be wrapped in an Ob
// and addressed via Ob.Slot.
func (t Tuple) Slot(i int) Ob { return t.Elem(i) }

// WithElem returns a new tuple with index i replaced by v, leaving the
// receiver untouched (tuples are value-like per the object model).
func (t Tuple) WithElem(i int, v Ob) Tuple {
	cp := make([]Ob, len(t.elems))
	copy(cp, t.elems)
	if i >= 0 && i < len(cp) {
		cp[i] = v
	}
	return Tuple{elems: cp}
}

// AsOb wraps the tuple as an Ob carrying the OTtuple tag.
func (t Tuple) AsOb() Ob { return Ob{tag: OTtuple, Data: t} }

// TupleOf unwraps an Ob known to carry a tuple payload.
func TupleOf(o Ob) (Tuple, bool) {
	t, ok := o.Data.(Tuple)
	return t, ok && o.tag == OTtuple
}

// FlattenRest interprets the tuple as `fixed... &rest` actuals: if the last
// slot holds a nested tuple, it is spliced flat; if there is no trailing
// slot to flatten the disposition is RestAbsentRest; if the trailing slot
// holds something other than a tuple, RestInvalidRest is reported and the
// returned tuple is the receiver unmodified.
func (t Tuple) FlattenRest() (Tuple, RestDisposition) {
	if len(t.elems) == 0 {
		return NIL, RestAbsentRest
	}
	last := t.elems[len(t.elems)-1]
	if last.tag != OTtuple {
		return t, RestInvalidRest
	}
	restTuple, _ := TupleOf(last)
	flat := make([]Ob, 0, len(t.elems)-1+restTuple.Len())
	flat = append(flat, t.elems[:len(t.elems)-1]...)
	flat = append(flat, restTuple.elems...)
	return Tuple{elems: flat}, RestOK
}
