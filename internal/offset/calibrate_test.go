package offset

import (
	"math"
	"math/rand/v2"
	"testing"

	"lyricsync/internal/lyrics"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{0, 0},
		{150, 150},
		{2000, 2000},
		{2001, 2000},
		{-2000, -2000},
		{-5000, -2000},
		{math.MaxInt32, 2000},
	}
	for _, tt := range tests {
		if got := Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestIncrementDecrement(t *testing.T) {
	if got := Increment(0); got != 50 {
		t.Fatalf("Increment(0) = %d", got)
	}
	if got := Increment(1980); got != 2000 {
		t.Fatalf("Increment(1980) = %d, want 2000", got)
	}
	if got := Increment(2000); got != 2000 {
		t.Fatalf("Increment at ceiling = %d", got)
	}
	if got := Decrement(-2000); got != -2000 {
		t.Fatalf("Decrement at floor = %d", got)
	}
	if got := Decrement(100); got != 50 {
		t.Fatalf("Decrement(100) = %d", got)
	}

	c := Calibrator{Min: -100, Max: 100, Step: 25}
	if got := c.Increment(90); got != 100 {
		t.Fatalf("custom Increment(90) = %d", got)
	}
	if got := c.Decrement(-500); got != -100 {
		t.Fatalf("custom Decrement(-500) = %d", got)
	}
}

func TestIncrementStaysInRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for i := 0; i < 500; i++ {
		o := Clamp(rng.IntN(4001) - 2000)
		next := Increment(o)
		if next < DefaultMin || next > DefaultMax {
			t.Fatalf("Increment(%d) = %d escaped range", o, next)
		}
		delta := next - o
		if delta != 0 && delta != DefaultStep {
			t.Fatalf("Increment(%d) moved by %d", o, delta)
		}
		if delta == 0 && o+DefaultStep <= DefaultMax {
			t.Fatalf("Increment(%d) stalled below the ceiling", o)
		}
	}
}

func TestFormatDisplay(t *testing.T) {
	tests := map[int]string{
		150:   "+150ms",
		-50:   "-50ms",
		0:     "0ms",
		2000:  "+2000ms",
		-2000: "-2000ms",
	}
	for in, want := range tests {
		if got := FormatDisplay(in); got != want {
			t.Errorf("FormatDisplay(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestApply(t *testing.T) {
	words := []lyrics.AlignedWord{
		{Word: "hello", StartS: 1.0, EndS: 1.5},
		{Word: "world", StartS: 0.05, EndS: 0.2},
	}
	shifted := Apply(words, 150)
	if math.Abs(shifted[0].StartS-1.15) > 1e-9 || math.Abs(shifted[0].EndS-1.65) > 1e-9 {
		t.Fatalf("unexpected shift: %+v", shifted[0])
	}
	if words[0].StartS != 1.0 {
		t.Fatal("Apply mutated its input")
	}

	back := Apply(words, -100)
	if back[1].StartS >= 0 {
		t.Fatalf("expected negative start to be preserved, got %v", back[1].StartS)
	}

	same := Apply(words, 0)
	if &same[0] == &words[0] {
		t.Fatal("expected a new slice for zero offset")
	}
	if Apply(nil, 100) != nil {
		t.Fatal("expected nil for nil input")
	}
}
