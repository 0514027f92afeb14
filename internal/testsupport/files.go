package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"lyricsync/internal/lyrics"
)

// WriteAlignment writes words as an {"alignedWords": [...]} payload under
// dir and returns the file path.
func WriteAlignment(t testing.TB, dir string, words []lyrics.AlignedWord) string {
	t.Helper()

	data, err := json.Marshal(map[string]any{"alignedWords": words})
	if err != nil {
		t.Fatalf("marshal alignment: %v", err)
	}
	return WriteFile(t, filepath.Join(dir, "alignment.json"), string(data))
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
