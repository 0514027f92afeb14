package lyrics

import (
	"math"
	"sort"
)

// AlignedWord is one token with its time range in seconds.
type AlignedWord struct {
	Word   string  `json:"word" yaml:"word"`
	StartS float64 `json:"startS" yaml:"startS"`
	EndS   float64 `json:"endS" yaml:"endS"`
}

// Duration returns the word length in seconds.
func (w AlignedWord) Duration() float64 {
	return w.EndS - w.StartS
}

// WordState describes a word relative to the playback position.
type WordState int

const (
	StateUpcoming WordState = iota
	StateCurrent
	StateCompleted
)

func (s WordState) String() string {
	switch s {
	case StateCurrent:
		return "current"
	case StateCompleted:
		return "completed"
	default:
		return "upcoming"
	}
}

// MarshalText renders the state by name so JSON and YAML output stay readable.
func (s WordState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// WordMatch is the result of a time lookup. Index is -1 and Word is nil when
// no word is active.
type WordMatch struct {
	Index int          `json:"index"`
	Word  *AlignedWord `json:"word"`
	State WordState    `json:"state"`
}

// Found reports whether the lookup resolved to a word.
func (m WordMatch) Found() bool {
	return m.Index >= 0 && m.Word != nil
}

func noMatch() WordMatch {
	return WordMatch{Index: -1, State: StateUpcoming}
}

func matchAt(words []AlignedWord, idx int, state WordState) WordMatch {
	return WordMatch{Index: idx, Word: &words[idx], State: state}
}

// ClassifyWordState reports whether word is current, completed, or upcoming at t.
func ClassifyWordState(word AlignedWord, t float64) WordState {
	switch {
	case t >= word.StartS && t <= word.EndS:
		return StateCurrent
	case t > word.EndS:
		return StateCompleted
	default:
		return StateUpcoming
	}
}

// CalculateWordProgress returns how far playback has moved through word, in
// [0, 1]. Nil words and words without a positive duration report 0.
func CalculateWordProgress(word *AlignedWord, t float64) float64 {
	if word == nil || math.IsNaN(t) {
		return 0
	}
	duration := word.Duration()
	if !(duration > 0) {
		return 0
	}
	progress := (t - word.StartS) / duration
	switch {
	case progress < 0:
		return 0
	case progress > 1:
		return 1
	default:
		return progress
	}
}

// FindWordAtTime locates the word to highlight at t.
//
// A word whose inclusive range contains t is current. Before the first word
// the first word is upcoming; after the last word the last word is completed.
// Inside a gap the closer neighbour wins, ties going to the earlier word.
func FindWordAtTime(words []AlignedWord, t float64) WordMatch {
	if len(words) == 0 || math.IsNaN(t) {
		return noMatch()
	}
	last := len(words) - 1
	if t < words[0].StartS {
		return matchAt(words, 0, StateUpcoming)
	}
	if t > words[last].EndS {
		return matchAt(words, last, StateCompleted)
	}

	// next is the first word starting strictly after t, so next-1 is the last
	// word that could contain t.
	next := sort.Search(len(words), func(i int) bool {
		return words[i].StartS > t
	})
	prev := next - 1
	if prev >= 0 && t <= words[prev].EndS {
		return matchAt(words, prev, StateCurrent)
	}

	// t now sits in a gap with prev and next both in range.
	if t-words[prev].EndS <= words[next].StartS-t {
		return matchAt(words, prev, ClassifyWordState(words[prev], t))
	}
	return matchAt(words, next, ClassifyWordState(words[next], t))
}

// FindActiveWord is FindWordAtTime with optional marker skipping. When
// skipMarkers is set and the lookup lands on a section marker, the next
// non-marker word is reported with its own state; if there is none, no word
// is active.
func FindActiveWord(words []AlignedWord, t float64, skipMarkers bool) WordMatch {
	match := FindWordAtTime(words, t)
	if !skipMarkers || !match.Found() || !IsSectionMarker(match.Word.Word) {
		return match
	}
	idx := FindNextNonMarkerIndex(words, match.Index+1)
	if idx < 0 {
		return noMatch()
	}
	return matchAt(words, idx, ClassifyWordState(words[idx], t))
}
