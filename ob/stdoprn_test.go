package ob

import "testing"

type fakeDispatcher struct {
	result interface{}
	err    error
}

func (d fakeDispatcher) Dispatch(state interface{}) (interface{}, error) {
	return d.result, d.err
}

func TestStdOprnRoundTrip(t *testing.T) {
	so := StdOprn{Name: "plus", Dispatcher: fakeDispatcher{result: NewFixnum(3)}}
	wrapped := so.AsOb()

	if wrapped.Tag() != OTstdoprn {
		t.Fatalf("tag = %v, want OTstdoprn", wrapped.Tag())
	}
	got, ok := StdOprnOf(wrapped)
	if !ok {
		t.Fatal("StdOprnOf failed to unwrap a StdOprn Ob")
	}
	if got.Name != "plus" {
		t.Fatalf("Name = %q, want %q", got.Name, "plus")
	}

	result, err := got.Dispatcher.Dispatch(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fx, ok := result.(Ob); !ok || fx.Fixnum() != 3 {
		t.Fatalf("Dispatch result = %v, want Fixnum(3)", result)
	}
}

func TestStdOprnOfRejectsOtherTags(t *testing.T) {
	if _, ok := StdOprnOf(NewFixnum(1)); ok {
		t.Fatal("StdOprnOf must reject a non-stdoprn Ob")
	}
}

func TestActorRoundTrip(t *testing.T) {
	ext := NewEnv(nil, []string{"x"}, []Ob{NewFixnum(9)})
	a := Actor{Name: "counter", Extension: ext}
	wrapped := a.AsOb()

	if wrapped.Tag() != OTactor {
		t.Fatalf("tag = %v, want OTactor", wrapped.Tag())
	}
	got, ok := ActorOf(wrapped)
	if !ok {
		t.Fatal("ActorOf failed to unwrap an Actor Ob")
	}
	if got.Name != "counter" {
		t.Fatalf("Name = %q, want %q", got.Name, "counter")
	}
	if got.Extension.Slot(0).Fixnum() != 9 {
		t.Fatal("Extension frame must round-trip through AsOb/ActorOf")
	}
}

func TestActorOfRejectsOtherTags(t *testing.T) {
	if _, ok := ActorOf(Niv); ok {
		t.Fatal("ActorOf must reject a non-actor Ob")
	}
}
