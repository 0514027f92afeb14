package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"lyricsync/internal/lyrics"
	"lyricsync/internal/offset"
	"lyricsync/internal/testsupport"
)

func TestLinesCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"lines", "-w", env.wordsPath, "-l", env.lyricsPath}, env.configPath)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	requireContains(t, out, "Hi there")
	requireContains(t, out, "gonna sing")
	requireContains(t, out, "00:00.500")

	out, _, err = runCLI(t, []string{"--json", "lines", "-w", env.wordsPath, "-l", env.lyricsPath}, env.configPath)
	if err != nil {
		t.Fatalf("lines --json: %v", err)
	}
	var cues []lyrics.LineCue
	if err := json.Unmarshal([]byte(out), &cues); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if len(cues) != 3 {
		t.Fatalf("expected 3 cues, got %+v", cues)
	}
	if !cues[0].IsMarker || cues[1].Text != "Hi there" || cues[2].LineIndex != 3 {
		t.Fatalf("unexpected cues %+v", cues)
	}
	if cues[2].StartTime != 2.0 || cues[2].EndTime != 3.0 {
		t.Fatalf("unexpected merged timing %+v", cues[2])
	}

	out, _, err = runCLI(t, []string{"lines", "-w", env.wordsPath, "-l", env.lyricsPath, "--format", "yaml"}, env.configPath)
	if err != nil {
		t.Fatalf("lines --format yaml: %v", err)
	}
	var yamlCues []lyrics.LineCue
	if err := yaml.Unmarshal([]byte(out), &yamlCues); err != nil {
		t.Fatalf("decode yaml: %v\n%s", err, out)
	}
	if len(yamlCues) != 3 || yamlCues[1].EndTime != 1.4 {
		t.Fatalf("unexpected yaml cues %+v", yamlCues)
	}

	if _, _, err := runCLI(t, []string{"lines", "-w", env.wordsPath, "-l", env.lyricsPath, "--format", "xml"}, env.configPath); err == nil {
		t.Fatal("expected unsupported format error")
	}
}

func TestOffsetCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"offset", "get", "song-a"}, env.configPath)
	if err != nil {
		t.Fatalf("offset get: %v", err)
	}
	requireContains(t, out, "Offset for song-a: 0ms")

	out, _, err = runCLI(t, []string{"offset", "set", "song-a", "5000"}, env.configPath)
	if err != nil {
		t.Fatalf("offset set: %v", err)
	}
	requireContains(t, out, "+2000ms")

	out, _, err = runCLI(t, []string{"offset", "dec", "song-a", "--steps", "3"}, env.configPath)
	if err != nil {
		t.Fatalf("offset dec: %v", err)
	}
	requireContains(t, out, "+1850ms")

	if _, _, err := runCLI(t, []string{"offset", "set", "song-b", "--", "-80"}, env.configPath); err != nil {
		t.Fatalf("offset set negative: %v", err)
	}

	out, _, err = runCLI(t, []string{"--json", "offset", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("offset list: %v", err)
	}
	var records []struct {
		Song     string `json:"song"`
		OffsetMs int    `json:"offsetMs"`
	}
	if err := json.Unmarshal([]byte(out), &records); err != nil {
		t.Fatalf("decode list: %v\n%s", err, out)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %+v", records)
	}
	stored := map[string]int{}
	for _, record := range records {
		stored[record.Song] = record.OffsetMs
	}
	if stored["song-a"] != 1850 || stored["song-b"] != -80 {
		t.Fatalf("unexpected records %+v", records)
	}

	store := testsupport.MustOpenStore(t, env.cfg)
	raw, ok, err := store.Get(context.Background(), offset.StorageKey)
	if err != nil || !ok {
		t.Fatalf("expected offsets persisted in the file backend: ok=%v err=%v", ok, err)
	}
	requireContains(t, raw, `"song-b":{"offset":-80`)

	out, _, err = runCLI(t, []string{"offset", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("offset clear: %v", err)
	}
	requireContains(t, out, "Cleared stored offsets")
	out, _, _ = runCLI(t, []string{"offset", "list"}, env.configPath)
	requireContains(t, out, "Stored offsets: none")

	if _, _, err := runCLI(t, []string{"offset", "set", "song-a", "soon"}, env.configPath); err == nil {
		t.Fatal("expected error for non-numeric offset")
	}
}

func TestPrefsCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"prefs", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("prefs show: %v", err)
	}
	requireContains(t, out, "shown")
	requireContains(t, out, "word")

	if _, _, err := runCLI(t, []string{"prefs", "markers", "off"}, env.configPath); err != nil {
		t.Fatalf("prefs markers: %v", err)
	}
	if _, _, err := runCLI(t, []string{"prefs", "mode", "line"}, env.configPath); err != nil {
		t.Fatalf("prefs mode: %v", err)
	}
	out, _, err = runCLI(t, []string{"--json", "prefs", "show"}, env.configPath)
	if err != nil {
		t.Fatalf("prefs show --json: %v", err)
	}
	var prefsOut struct {
		ShowMarkers bool   `json:"showMarkers"`
		SyncMode    string `json:"syncMode"`
	}
	if err := json.Unmarshal([]byte(out), &prefsOut); err != nil {
		t.Fatalf("decode prefs: %v", err)
	}
	if prefsOut.ShowMarkers || prefsOut.SyncMode != "line" {
		t.Fatalf("unexpected prefs %+v", prefsOut)
	}

	if _, _, err := runCLI(t, []string{"prefs", "mode", "syllable"}, env.configPath); err == nil {
		t.Fatal("expected invalid mode error")
	}
}

func TestLookupCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"lookup", "-w", env.wordsPath, "-l", env.lyricsPath, "--at", "0.7"}, env.configPath)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	requireContains(t, out, `"Hi" current`)
	requireContains(t, out, "Hi there")

	if _, _, err := runCLI(t, []string{"offset", "set", "song-a", "500"}, env.configPath); err != nil {
		t.Fatalf("offset set: %v", err)
	}
	out, _, err = runCLI(t, []string{"--json", "lookup", "-w", env.wordsPath, "-s", "song-a", "--at", "0.7"}, env.configPath)
	if err != nil {
		t.Fatalf("lookup --json: %v", err)
	}
	var result struct {
		OffsetMs int `json:"offsetMs"`
		Word     struct {
			Index int    `json:"index"`
			State string `json:"state"`
		} `json:"word"`
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode lookup: %v\n%s", err, out)
	}
	if result.OffsetMs != 500 {
		t.Fatalf("expected stored offset applied, got %d", result.OffsetMs)
	}
	if result.Word.Index != 0 || result.Word.State != "current" {
		t.Fatalf("expected marker current at 0.7s with +500ms, got %+v", result.Word)
	}

	out, _, err = runCLI(t, []string{"--json", "lookup", "-w", env.wordsPath, "-s", "song-a", "--at", "0.7", "--hide-markers"}, env.configPath)
	if err != nil {
		t.Fatalf("lookup --hide-markers: %v", err)
	}
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("decode lookup: %v", err)
	}
	if result.Word.Index != 1 || result.Word.State != "upcoming" {
		t.Fatalf("expected first lyric word upcoming, got %+v", result.Word)
	}
}

func TestExportCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{
		"export", "-w", env.wordsPath, "-l", env.lyricsPath,
		"--style", "Indie Rock", "--created-at", "2025-03-09T10:00:00Z",
	}, env.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	target := filepath.Join(env.cfg.Export.OutputDir, "song-indie-rock-2025-03-09.vtt")
	requireContains(t, out, target)
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	want := "WEBVTT\n\n00:00.500 --> 00:01.400\nHi there\n\n00:02.000 --> 00:03.000\ngonna sing\n\n"
	if string(data) != want {
		t.Fatalf("unexpected export:\n%q", data)
	}

	out, _, err = runCLI(t, []string{
		"export", "-w", env.wordsPath, "-l", env.lyricsPath, "--stdout", "--include-markers",
	}, env.configPath)
	if err != nil {
		t.Fatalf("export --stdout: %v", err)
	}
	if !strings.HasPrefix(out, "WEBVTT\n\n00:00.000 --> 00:00.400\n**Chorus**") {
		t.Fatalf("expected marker cue in stdout export:\n%s", out)
	}

	if _, _, err := runCLI(t, []string{"export", "-w", env.wordsPath}, env.configPath); err == nil {
		t.Fatal("expected missing --lyrics to fail")
	}
}

func TestPlayCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{
		"play", "-w", env.wordsPath, "-l", env.lyricsPath, "--speed", "0", "--mode", "line",
	}, env.configPath)
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	requireContains(t, out, "00:00.000  **Chorus**")
	requireContains(t, out, "Hi there")
	requireContains(t, out, "gonna sing")
	requireNotContains(t, out, "\x1b[")

	out, _, err = runCLI(t, []string{
		"--json", "play", "-w", env.wordsPath, "--speed", "0", "--hide-markers",
	}, env.configPath)
	if err != nil {
		t.Fatalf("play --json: %v", err)
	}
	var events []playEvent
	if err := json.Unmarshal([]byte(out), &events); err != nil {
		t.Fatalf("decode play events: %v\n%s", err, out)
	}
	if len(events) == 0 || events[0].Word != "Hi" {
		t.Fatalf("expected first event to skip the marker, got %+v", events)
	}
	for _, event := range events {
		if event.Word == "**Chorus**" {
			t.Fatalf("marker highlighted while hidden: %+v", event)
		}
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, env.configPath)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")
	requireContains(t, out, "Storage backend: file")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, ""); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
}
