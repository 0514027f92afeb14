package offset

import (
	"strconv"

	"lyricsync/internal/lyrics"
)

// Default calibration bounds in milliseconds.
const (
	DefaultMin  = -2000
	DefaultMax  = 2000
	DefaultStep = 50
)

// Calibrator bounds and steps offsets.
type Calibrator struct {
	Min  int
	Max  int
	Step int
}

// Default returns the ±2000ms calibrator stepping by 50ms.
func Default() Calibrator {
	return Calibrator{Min: DefaultMin, Max: DefaultMax, Step: DefaultStep}
}

// Clamp saturates value to [Min, Max].
func (c Calibrator) Clamp(value int) int {
	return ClampRange(value, c.Min, c.Max)
}

// Increment adds one step, saturating at Max.
func (c Calibrator) Increment(value int) int {
	return c.Clamp(c.Clamp(value) + c.Step)
}

// Decrement subtracts one step, saturating at Min.
func (c Calibrator) Decrement(value int) int {
	return c.Clamp(c.Clamp(value) - c.Step)
}

// ClampRange saturates value to [lo, hi].
func ClampRange(value, lo, hi int) int {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func Clamp(value int) int     { return Default().Clamp(value) }
func Increment(value int) int { return Default().Increment(value) }
func Decrement(value int) int { return Default().Decrement(value) }

// FormatDisplay renders an offset for display: "+150ms", "-50ms", "0ms".
func FormatDisplay(ms int) string {
	if ms > 0 {
		return "+" + strconv.Itoa(ms) + "ms"
	}
	return strconv.Itoa(ms) + "ms"
}

// Apply returns a copy of words with every start and end shifted by
// offsetMs. Shifted times are not clamped to zero.
func Apply(words []lyrics.AlignedWord, offsetMs int) []lyrics.AlignedWord {
	if words == nil {
		return nil
	}
	shift := float64(offsetMs) / 1000
	shifted := make([]lyrics.AlignedWord, len(words))
	for i, word := range words {
		shifted[i] = lyrics.AlignedWord{
			Word:   word.Word,
			StartS: word.StartS + shift,
			EndS:   word.EndS + shift,
		}
	}
	return shifted
}
