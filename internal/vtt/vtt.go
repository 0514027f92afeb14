package vtt

import (
	"fmt"
	"math"
	"strings"

	"lyricsync/internal/lyrics"
)

// MIMEType is the media type of generated subtitle files.
const MIMEType = "text/vtt"

const header = "WEBVTT"

// Options controls GenerateContentWithOptions.
type Options struct {
	OffsetMs       int
	IncludeMarkers bool
}

// FormatTimestamp renders seconds as MM:SS.mmm, prefixed with HH: once the
// value reaches an hour. Negative and non-finite input renders as zero.
func FormatTimestamp(seconds float64) string {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds < 0 {
		return "00:00.000"
	}
	total := int64(math.Round(seconds * 1000))
	hours := total / 3_600_000
	total %= 3_600_000
	minutes := total / 60_000
	total %= 60_000
	secs := total / 1_000
	millis := total % 1_000
	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, secs, millis)
	}
	return fmt.Sprintf("%02d:%02d.%03d", minutes, secs, millis)
}

// GenerateContent renders non-marker cues as a WebVTT document with offsetMs
// applied to every timestamp.
func GenerateContent(cues []lyrics.LineCue, offsetMs int) string {
	return GenerateContentWithOptions(cues, Options{OffsetMs: offsetMs})
}

// GenerateContentWithOptions is GenerateContent with marker cues optionally
// kept. Cues with non-finite times, blank text, or an end before their start
// are skipped.
func GenerateContentWithOptions(cues []lyrics.LineCue, opts Options) string {
	shift := float64(opts.OffsetMs) / 1000

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n\n")
	for _, cue := range cues {
		if cue.IsMarker && !opts.IncludeMarkers {
			continue
		}
		text := strings.TrimSpace(cue.Text)
		if !wellFormed(cue, text) {
			continue
		}
		start := math.Max(0, cue.StartTime+shift)
		end := math.Max(0, cue.EndTime+shift)
		sb.WriteString(FormatTimestamp(start))
		sb.WriteString(" --> ")
		sb.WriteString(FormatTimestamp(end))
		sb.WriteString("\n")
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}
	return sb.String()
}

func wellFormed(cue lyrics.LineCue, text string) bool {
	if text == "" {
		return false
	}
	for _, v := range []float64{cue.StartTime, cue.EndTime} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return cue.EndTime >= cue.StartTime
}
