package lyrics

import (
	"strings"

	"lyricsync/internal/textutil"
)

// LineCue is one lyric line with the time range of its matched words.
type LineCue struct {
	LineIndex int     `json:"lineIndex" yaml:"lineIndex"`
	Text      string  `json:"text" yaml:"text"`
	StartTime float64 `json:"startTime" yaml:"startTime"`
	EndTime   float64 `json:"endTime" yaml:"endTime"`
	IsMarker  bool    `json:"isMarker" yaml:"isMarker"`
}

// Duration returns the cue length in seconds.
func (c LineCue) Duration() float64 {
	return c.EndTime - c.StartTime
}

// AggregateWordsToLines folds aligned word timings into one cue per lyric
// line.
//
// Lines are matched left to right against a word cursor that never rewinds,
// comparing normalized tokens. An aligned token may cover part of a lyric
// token (split, "we" + "re" for "we're") or a lyric token may cover part of
// an aligned token (merge, "gon" + "na" for "gonna"). Punctuation-only
// aligned tokens join the current line without consuming lyric tokens. The
// first real mismatch ends the line. A line that matches nothing at the
// cursor may resync a few aligned tokens ahead (see resyncLine); lines that
// still match nothing are dropped.
func AggregateWordsToLines(words []AlignedWord, lyricsText string) []LineCue {
	if len(words) == 0 || strings.TrimSpace(lyricsText) == "" {
		return nil
	}

	normalized := make([]string, len(words))
	for i, word := range words {
		normalized[i] = textutil.NormalizeToken(word.Word)
	}

	rawLines := strings.Split(strings.ReplaceAll(lyricsText, "\r\n", "\n"), "\n")
	cues := make([]LineCue, 0, len(rawLines))
	cursor := 0
	for lineIndex, raw := range rawLines {
		if cursor >= len(words) {
			break
		}
		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		marker := IsSectionMarker(text)
		tokens := textutil.NormalizedFields(text)
		span, next := matchLine(words, normalized, cursor, tokens, marker)
		if span.matched == 0 {
			if resynced, after, ok := resyncLine(words, normalized, cursor, tokens, marker); ok {
				span, next = resynced, after
			}
		}
		cursor = next
		if span.matched == 0 {
			continue
		}

		start := max(words[span.first].StartS, 0)
		end := max(words[span.last].EndS, start)
		cues = append(cues, LineCue{
			LineIndex: lineIndex,
			Text:      text,
			StartTime: start,
			EndTime:   end,
			IsMarker:  marker,
		})
	}
	return cues
}

// lineSpan records the consumed word range for one line. matched counts the
// words that carried lyric content; punctuation joins first..last only.
type lineSpan struct {
	first   int
	last    int
	matched int
}

func (s *lineSpan) include(idx int, content bool) {
	if s.first < 0 {
		s.first = idx
	}
	s.last = idx
	if content {
		s.matched++
	}
}

// matchLine consumes words starting at cursor until tokens are exhausted or a
// mismatch occurs. It returns the span and the cursor for the next line.
func matchLine(words []AlignedWord, normalized []string, cursor int, tokens []string, markerLine bool) (lineSpan, int) {
	span := lineSpan{first: -1, last: -1}
	tokenIdx := 0
	lineRest := ""
	wordRest := ""
	// wordOpen is true while words[cursor] is partially consumed by a merge.
	wordOpen := false

	for cursor < len(words) {
		if lineRest == "" {
			if tokenIdx >= len(tokens) {
				break
			}
			lineRest = tokens[tokenIdx]
		}
		if !wordOpen {
			norm := normalized[cursor]
			if norm == "" {
				span.include(cursor, false)
				cursor++
				continue
			}
			if !markerLine && IsSectionMarker(words[cursor].Word) {
				cursor++
				continue
			}
			wordRest = norm
		}

		switch {
		case wordRest == lineRest:
			span.include(cursor, true)
			cursor++
			tokenIdx++
			lineRest, wordRest, wordOpen = "", "", false
		case strings.HasPrefix(lineRest, wordRest):
			span.include(cursor, true)
			cursor++
			lineRest = lineRest[len(wordRest):]
			wordRest, wordOpen = "", false
		case strings.HasPrefix(wordRest, lineRest):
			span.include(cursor, true)
			wordRest = wordRest[len(lineRest):]
			wordOpen = true
			tokenIdx++
			lineRest = ""
		default:
			return finishLine(words, normalized, span, cursor, wordOpen)
		}
	}
	return finishLine(words, normalized, span, cursor, wordOpen)
}

// finishLine closes a line. An aligned token this line has partly consumed
// belongs to the line, so the cursor moves past it, and punctuation-only
// tokens that directly follow the line's last match join it as well.
func finishLine(words []AlignedWord, normalized []string, span lineSpan, cursor int, wordOpen bool) (lineSpan, int) {
	if wordOpen {
		cursor++
	}
	if span.matched == 0 {
		return span, cursor
	}
	for cursor < len(words) && normalized[cursor] == "" {
		span.include(cursor, false)
		cursor++
	}
	return span, cursor
}

// resyncWindow bounds how many unmatched aligned tokens a line may skip to
// find its start.
const resyncWindow = 8

// resyncLine looks for the line a few aligned tokens past cursor. This
// recovers from sung words missing from the lyric text, which otherwise
// leave the cursor parked on a token no later line can match. A candidate
// must match the first two tokens of the line (or the whole line when it is
// shorter) so a common word further ahead does not pull in another line.
func resyncLine(words []AlignedWord, normalized []string, cursor int, tokens []string, markerLine bool) (lineSpan, int, bool) {
	need := min(2, len(tokens))
	if need == 0 {
		return lineSpan{}, cursor, false
	}
	for start := cursor + 1; start < len(words) && start <= cursor+resyncWindow; start++ {
		norm := normalized[start]
		if norm == "" {
			continue
		}
		if !strings.HasPrefix(tokens[0], norm) && !strings.HasPrefix(norm, tokens[0]) {
			continue
		}
		span, next := matchLine(words, normalized, start, tokens, markerLine)
		if span.matched >= need {
			return span, next, true
		}
	}
	return lineSpan{}, cursor, false
}
