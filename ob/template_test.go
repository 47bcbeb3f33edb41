package ob

import "testing"

func TestMatchPatternFixedArity(t *testing.T) {
	tmpl := NewTemplate("a", "b")
	argvec := NewTuple(NewFixnum(1), NewFixnum(2))

	actuals, ok := tmpl.MatchPattern(argvec, 2)
	if !ok {
		t.Fatal("expected a fixed-arity match to succeed")
	}
	if actuals.Len() != 2 || actuals.Elem(0).Fixnum() != 1 {
		t.Fatalf("unexpected actuals: %+v", actuals)
	}
}

func TestMatchPatternFixedArityMismatch(t *testing.T) {
	tmpl := NewTemplate("a", "b")
	argvec := NewTuple(NewFixnum(1))
	if _, ok := tmpl.MatchPattern(argvec, 1); ok {
		t.Fatal("expected arity mismatch to fail")
	}
}

func TestMatchPatternWithRest(t *testing.T) {
	tmpl := NewRestTemplate("rest", "a")
	argvec := NewTuple(NewFixnum(1), NewFixnum(2), NewFixnum(3))

	actuals, ok := tmpl.MatchPattern(argvec, 3)
	if !ok {
		t.Fatal("expected rest template to match")
	}
	if actuals.Len() != 2 {
		t.Fatalf("expected fixed key + rest tuple, got %d entries", actuals.Len())
	}
	rest, ok := TupleOf(actuals.Elem(1))
	if !ok {
		t.Fatal("expected the rest slot to hold a tuple")
	}
	if rest.Len() != 2 || rest.Elem(0).Fixnum() != 2 || rest.Elem(1).Fixnum() != 3 {
		t.Fatalf("unexpected rest tuple: %+v", rest)
	}
}

func TestMatchPatternRestRequiresMinimumArity(t *testing.T) {
	tmpl := NewRestTemplate("rest", "a", "b")
	argvec := NewTuple(NewFixnum(1))
	if _, ok := tmpl.MatchPattern(argvec, 1); ok {
		t.Fatal("expected match to fail when fewer actuals than fixed keys")
	}
}

func TestKeysIncludesRestKeyLast(t *testing.T) {
	tmpl := NewRestTemplate("rest", "a", "b")
	keys := tmpl.Keys()
	if len(keys) != 3 || keys[2] != "rest" {
		t.Fatalf("unexpected keys: %v", keys)
	}
}
