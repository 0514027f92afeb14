package perf

import (
	"math"
	"sort"

	"lyricsync/internal/lyrics"
)

// BinarySearchCurrentLine returns the index of the cue whose [StartTime,
// EndTime] contains t, or -1 when t falls between cues, outside them, or is
// NaN. Cues must be ordered by StartTime.
func BinarySearchCurrentLine(cues []lyrics.LineCue, t float64) int {
	if len(cues) == 0 || math.IsNaN(t) {
		return -1
	}
	next := sort.Search(len(cues), func(i int) bool {
		return cues[i].StartTime > t
	})
	idx := next - 1
	if idx < 0 || t > cues[idx].EndTime {
		return -1
	}
	return idx
}
