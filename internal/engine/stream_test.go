package engine

import (
	"math"
	"testing"
)

func TestStreamIntnRange(t *testing.T) {
	s := NewStream("server", "client", 1)
	for _, n := range []int{1, 2, 13, 37, 52} {
		for range 200 {
			v := s.Intn(n)
			if v < 0 || v >= n {
				t.Fatalf("Intn(%d) = %d, out of range", n, v)
			}
		}
	}
	if s.Drawn() != 5*200 {
		t.Errorf("Drawn() = %d, want %d", s.Drawn(), 5*200)
	}
}

func TestStreamMatchesFloats(t *testing.T) {
	floats := Floats("server", "client", 9, 0, 4)
	s := NewStream("server", "client", 9)
	for i, f := range floats {
		want := int(math.Floor(f * 52))
		if got := s.Intn(52); got != want {
			t.Errorf("pick %d: Intn(52) = %d, want %d", i, got, want)
		}
	}
}

func TestStreamReplay(t *testing.T) {
	a := NewStream("server", "client", 100)
	b := NewStream("server", "client", 100)
	for i := range 50 {
		if x, y := a.Intn(52-i), b.Intn(52-i); x != y {
			t.Fatalf("pick %d differs: %d != %d", i, x, y)
		}
	}
}

func TestStreamIntnPanicsOnNonPositive(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Intn(0) did not panic")
		}
	}()
	NewStream("s", "c", 0).Intn(0)
}
