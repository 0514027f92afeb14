package perf

import (
	"math"
	"testing"

	"lyricsync/internal/lyrics"
)

func TestBinarySearchCurrentLine(t *testing.T) {
	cues := []lyrics.LineCue{
		{LineIndex: 0, Text: "one", StartTime: 1, EndTime: 2},
		{LineIndex: 1, Text: "two", StartTime: 3, EndTime: 4},
		{LineIndex: 2, Text: "three", StartTime: 4, EndTime: 6},
	}
	tests := []struct {
		name string
		t    float64
		want int
	}{
		{"before first", 0.5, -1},
		{"first start", 1, 0},
		{"inside first", 1.5, 0},
		{"first end inclusive", 2, 0},
		{"between cues", 2.5, -1},
		{"shared boundary prefers later cue", 4, 2},
		{"inside last", 5, 2},
		{"after last", 6.1, -1},
		{"nan", math.NaN(), -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BinarySearchCurrentLine(cues, tt.t); got != tt.want {
				t.Fatalf("BinarySearchCurrentLine(%v) = %d, want %d", tt.t, got, tt.want)
			}
		})
	}
	if BinarySearchCurrentLine(nil, 1) != -1 {
		t.Fatal("expected -1 for no cues")
	}
}
