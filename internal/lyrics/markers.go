package lyrics

import "strings"

const markerDelimiter = "**"

// IsSectionMarker reports whether token is a structural label such as
// "**Chorus**": wrapped in double asterisks with content in between.
func IsSectionMarker(token string) bool {
	trimmed := strings.TrimSpace(token)
	return len(trimmed) > 2*len(markerDelimiter) &&
		strings.HasPrefix(trimmed, markerDelimiter) &&
		strings.HasSuffix(trimmed, markerDelimiter)
}

// Classified partitions aligned words into section markers and sung lyrics.
type Classified struct {
	Markers []AlignedWord
	Lyrics  []AlignedWord
}

// ClassifyAlignedWords splits words into markers and lyrics, keeping the
// original order inside each group.
func ClassifyAlignedWords(words []AlignedWord) Classified {
	var out Classified
	for _, word := range words {
		if IsSectionMarker(word.Word) {
			out.Markers = append(out.Markers, word)
		} else {
			out.Lyrics = append(out.Lyrics, word)
		}
	}
	return out
}

// FindNextNonMarkerIndex returns the first index >= from whose word is not a
// section marker, or -1.
func FindNextNonMarkerIndex(words []AlignedWord, from int) int {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(words); i++ {
		if !IsSectionMarker(words[i].Word) {
			return i
		}
	}
	return -1
}
