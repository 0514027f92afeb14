package lyrics

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// ErrUnrecognizedPayload reports JSON that holds no aligned-word list.
var ErrUnrecognizedPayload = errors.New("unrecognized aligned words payload")

// Keys under which alignment services wrap the word list.
var wordListKeys = []string{"alignedWords", "aligned_words", "words"}

// Field aliases accepted for each word attribute, in priority order.
var (
	wordTextKeys  = []string{"word", "text"}
	wordStartKeys = []string{"startS", "start_s", "start"}
	wordEndKeys   = []string{"endS", "end_s", "end"}
)

// LoadAlignedWords reads an alignment payload from disk.
func LoadAlignedWords(path string) ([]AlignedWord, error) {
	if strings.TrimSpace(path) == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	words, err := ParseAlignedWords(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return words, nil
}

// ParseAlignedWords coerces a loosely typed alignment payload into the strict
// AlignedWord shape. It accepts a bare array or an object wrapping the array,
// numeric strings for times, and several field spellings. Entries without
// text or finite times are dropped, inverted ranges are collapsed to their
// start, and the result is stably sorted by start time.
func ParseAlignedWords(data []byte) ([]AlignedWord, error) {
	var root any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse aligned words json: %w", err)
	}

	var items []any
	switch value := root.(type) {
	case []any:
		items = value
	case map[string]any:
		found := false
		for _, key := range wordListKeys {
			if list, ok := value[key].([]any); ok {
				items, found = list, true
				break
			}
		}
		if !found {
			return nil, ErrUnrecognizedPayload
		}
	case nil:
		return nil, nil
	default:
		return nil, ErrUnrecognizedPayload
	}

	words := make([]AlignedWord, 0, len(items))
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		word, ok := coerceWord(fields)
		if !ok {
			continue
		}
		words = append(words, word)
	}
	return SortWords(words), nil
}

// SortWords returns words ordered by start time. Already sorted input is
// returned as is.
func SortWords(words []AlignedWord) []AlignedWord {
	less := func(i, j int) bool { return words[i].StartS < words[j].StartS }
	if sort.SliceIsSorted(words, less) {
		return words
	}
	sorted := make([]AlignedWord, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StartS < sorted[j].StartS })
	return sorted
}

func coerceWord(fields map[string]any) (AlignedWord, bool) {
	text, ok := firstString(fields, wordTextKeys)
	if !ok || strings.TrimSpace(text) == "" {
		return AlignedWord{}, false
	}
	start, ok := firstNumber(fields, wordStartKeys)
	if !ok {
		return AlignedWord{}, false
	}
	end, ok := firstNumber(fields, wordEndKeys)
	if !ok {
		end = start
	}
	if end < start {
		end = start
	}
	return AlignedWord{Word: text, StartS: start, EndS: end}, true
}

func firstString(fields map[string]any, keys []string) (string, bool) {
	for _, key := range keys {
		if s, ok := fields[key].(string); ok {
			return s, true
		}
	}
	return "", false
}

func firstNumber(fields map[string]any, keys []string) (float64, bool) {
	for _, key := range keys {
		raw, present := fields[key]
		if !present {
			continue
		}
		var value float64
		switch v := raw.(type) {
		case float64:
			value = v
		case string:
			parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				continue
			}
			value = parsed
		default:
			continue
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			continue
		}
		return value, true
	}
	return 0, false
}
