package vtt

import (
	"strconv"
	"strings"
	"time"

	"lyricsync/internal/textutil"
)

var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Filename builds song-<style slug>-<YYYY-MM-DD>.vtt. A zero createdAt
// yields "unknown-date".
func Filename(style string, createdAt time.Time) string {
	date := "unknown-date"
	if !createdAt.IsZero() {
		date = createdAt.Format("2006-01-02")
	}
	return "song-" + textutil.Slugify(style) + "-" + date + ".vtt"
}

// ParseCreatedAt reads a song creation timestamp in any of the common
// layouts or as epoch milliseconds. Unparseable input returns the zero time.
func ParseCreatedAt(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC()
	}
	for _, layout := range createdAtLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
