package vtt

import (
	"testing"
	"time"
)

func TestFilename(t *testing.T) {
	created := time.Date(2025, 3, 9, 18, 30, 0, 0, time.UTC)
	tests := []struct {
		style   string
		created time.Time
		want    string
	}{
		{"Synthwave / Retro", created, "song-synthwave-retro-2025-03-09.vtt"},
		{"  ", created, "song-unknown-2025-03-09.vtt"},
		{"lo-fi hip hop!!", time.Time{}, "song-lo-fi-hip-hop-unknown-date.vtt"},
	}
	for _, tt := range tests {
		if got := Filename(tt.style, tt.created); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.style, got, tt.want)
		}
	}
}

func TestParseCreatedAt(t *testing.T) {
	want := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-03-09T00:00:00Z", want},
		{"2025-03-09T00:00:00.000Z", want},
		{"2025-03-09 00:00:00", want},
		{"2025-03-09", want},
		{"1741478400000", want},
	}
	for _, tt := range tests {
		if got := ParseCreatedAt(tt.in); !got.Equal(tt.want) {
			t.Errorf("ParseCreatedAt(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	for _, bad := range []string{"", "yesterday", "2025-13-40"} {
		if got := ParseCreatedAt(bad); !got.IsZero() {
			t.Errorf("ParseCreatedAt(%q) = %v, want zero", bad, got)
		}
	}
}
