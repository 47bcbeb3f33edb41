package ob

import "testing"

func TestTupleElemOutOfRange(t *testing.T) {
	tup := NewTuple(NewFixnum(1))
	if got := tup.Elem(5); !got.Eq(Absent) {
		t.Fatalf("Elem out of range = %v, want Absent", got)
	}
}

func TestTupleWithElemIsValueLike(t *testing.T) {
	orig := NewTuple(NewFixnum(1), NewFixnum(2))
	updated := orig.WithElem(1, NewFixnum(99))
	if orig.Elem(1).Fixnum() != 2 {
		t.Fatal("WithElem must not mutate the receiver")
	}
	if updated.Elem(1).Fixnum() != 99 {
		t.Fatal("WithElem must apply the replacement in the returned tuple")
	}
}

func TestNewTupleOf(t *testing.T) {
	tup := NewTupleOf(3, Niv)
	if tup.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tup.Len())
	}
	for i := 0; i < 3; i++ {
		if !tup.Elem(i).Eq(Niv) {
			t.Fatalf("Elem(%d) = %v, want Niv", i, tup.Elem(i))
		}
	}
}

func TestFlattenRest(t *testing.T) {
	tests := []struct {
		name     string
		tup      Tuple
		wantLen  int
		wantDisp RestDisposition
	}{
		{
			name:     "no elements",
			tup:      NIL,
			wantLen:  0,
			wantDisp: RestAbsentRest,
		},
		{
			name:     "trailing non-tuple",
			tup:      NewTuple(NewFixnum(1), NewFixnum(2)),
			wantLen:  2,
			wantDisp: RestInvalidRest,
		},
		{
			name:     "trailing rest tuple is spliced",
			tup:      NewTuple(NewFixnum(1), NewTuple(NewFixnum(2), NewFixnum(3)).AsOb()),
			wantLen:  3,
			wantDisp: RestOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flat, disp := tt.tup.FlattenRest()
			if disp != tt.wantDisp {
				t.Fatalf("disposition = %v, want %v", disp, tt.wantDisp)
			}
			if disp == RestOK && flat.Len() != tt.wantLen {
				t.Fatalf("Len() = %d, want %d", flat.Len(), tt.wantLen)
			}
		})
	}
}
