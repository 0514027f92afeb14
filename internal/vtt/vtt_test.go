package vtt

import (
	"math"
	"strings"
	"testing"

	"lyricsync/internal/lyrics"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00.000"},
		{1.5, "00:01.500"},
		{61.234, "01:01.234"},
		{59.9996, "01:00.000"},
		{3600, "01:00:00.000"},
		{3725.042, "01:02:05.042"},
		{-3, "00:00.000"},
		{math.NaN(), "00:00.000"},
		{math.Inf(1), "00:00.000"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.in); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateContent(t *testing.T) {
	cues := []lyrics.LineCue{
		{LineIndex: 0, Text: "**Verse 1**", StartTime: 0, EndTime: 0.4, IsMarker: true},
		{LineIndex: 1, Text: "Hello world", StartTime: 0.5, EndTime: 1.5},
		{LineIndex: 2, Text: "Goodbye moon", StartTime: 2, EndTime: 3.25},
	}

	got := GenerateContent(cues, 0)
	want := "WEBVTT\n\n" +
		"00:00.500 --> 00:01.500\nHello world\n\n" +
		"00:02.000 --> 00:03.250\nGoodbye moon\n\n"
	if got != want {
		t.Fatalf("unexpected content:\n%s\nwant:\n%s", got, want)
	}
}

func TestGenerateContentAppliesOffsetAndClamps(t *testing.T) {
	cues := []lyrics.LineCue{
		{Text: "early", StartTime: 0.2, EndTime: 1.0},
		{Text: "later", StartTime: 2.0, EndTime: 2.5},
	}
	got := GenerateContent(cues, -500)
	if !strings.Contains(got, "00:00.000 --> 00:00.500\nearly") {
		t.Fatalf("expected clamped start, got:\n%s", got)
	}
	if !strings.Contains(got, "00:01.500 --> 00:02.000\nlater") {
		t.Fatalf("expected shifted cue, got:\n%s", got)
	}

	got = GenerateContent(cues, 150)
	if !strings.Contains(got, "00:00.350 --> 00:01.150\nearly") {
		t.Fatalf("expected positive shift, got:\n%s", got)
	}
}

func TestGenerateContentSkipsMalformedCues(t *testing.T) {
	cues := []lyrics.LineCue{
		{Text: "nan", StartTime: math.NaN(), EndTime: 1},
		{Text: "inf", StartTime: 0, EndTime: math.Inf(1)},
		{Text: "   ", StartTime: 0, EndTime: 1},
		{Text: "backwards", StartTime: 2, EndTime: 1},
		{Text: "fine", StartTime: 3, EndTime: 4},
	}
	got := GenerateContent(cues, 0)
	want := "WEBVTT\n\n00:03.000 --> 00:04.000\nfine\n\n"
	if got != want {
		t.Fatalf("unexpected content:\n%q", got)
	}
	if GenerateContent(nil, 0) != "WEBVTT\n\n" {
		t.Fatal("expected header only for no cues")
	}
}

func TestGenerateContentWithMarkers(t *testing.T) {
	cues := []lyrics.LineCue{
		{Text: "**Chorus**", StartTime: 1, EndTime: 1.2, IsMarker: true},
		{Text: "sing", StartTime: 1.5, EndTime: 2},
	}
	got := GenerateContentWithOptions(cues, Options{IncludeMarkers: true})
	if !strings.Contains(got, "**Chorus**") {
		t.Fatalf("expected marker cue included:\n%s", got)
	}
	if strings.Contains(GenerateContent(cues, 0), "**Chorus**") {
		t.Fatal("markers must be excluded by default")
	}
}

func TestGenerateContentPerformsOnRealAggregation(t *testing.T) {
	words := []lyrics.AlignedWord{
		{Word: "**Verse**", StartS: 0, EndS: 0.3},
		{Word: "Hello", StartS: 0.5, EndS: 0.9},
		{Word: "world", StartS: 1.0, EndS: 1.4},
	}
	cues := lyrics.AggregateWordsToLines(words, "**Verse**\nHello world")
	got := GenerateContent(cues, 0)
	want := "WEBVTT\n\n00:00.500 --> 00:01.400\nHello world\n\n"
	if got != want {
		t.Fatalf("unexpected content:\n%q", got)
	}
}
