package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lyricsync/internal/config"
	"lyricsync/internal/lyrics"
	"lyricsync/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
	wordsPath  string
	lyricsPath string
}

var fixtureWords = []lyrics.AlignedWord{
	{Word: "**Chorus**", StartS: 0.0, EndS: 0.4},
	{Word: "Hi", StartS: 0.5, EndS: 0.9},
	{Word: "there,", StartS: 0.9, EndS: 1.4},
	{Word: "gon", StartS: 2.0, EndS: 2.2},
	{Word: "na", StartS: 2.2, EndS: 2.4},
	{Word: "sing", StartS: 2.5, EndS: 3.0},
}

const fixtureLyrics = "**Chorus**\nHi there\n\ngonna sing\n"

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, key := range []string{"LYRICSYNC_STORAGE_BACKEND", "LIBSQL_URL", "LIBSQL_AUTH_TOKEN", "REDIS_URL", "REDIS_PASSWORD"} {
		t.Setenv(key, "")
	}
	t.Chdir(base)

	cfg := testsupport.NewConfig(t,
		testsupport.WithStorageBackend(config.BackendFile),
		testsupport.WithSeekThrottleMs(20),
		testsupport.WithTickIntervalMs(100),
		testsupport.WithExportDir("vtt"),
	)
	configPath := filepath.Join(homeDir, ".config", "lyricsync", "config.toml")
	writeTestConfig(t, configPath, cfg)

	fixtures := filepath.Join(base, "fixtures")
	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		baseDir:    base,
		wordsPath:  testsupport.WriteAlignment(t, fixtures, fixtureWords),
		lyricsPath: testsupport.WriteFile(t, filepath.Join(fixtures, "lyrics.txt"), fixtureLyrics),
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q

[storage]
backend = %q
file_path = %q

[export]
output_dir = %q

[sync]
seek_throttle_ms = %d
tick_interval_ms = %d

[logging]
level = "error"
`,
		cfg.Paths.DataDir,
		cfg.Paths.LogDir,
		cfg.Storage.Backend,
		cfg.Storage.FilePath,
		cfg.Export.OutputDir,
		cfg.Sync.SeekThrottleMs,
		cfg.Sync.TickIntervalMs,
	)
	testsupport.WriteFile(t, path, content)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func requireNotContains(t *testing.T, output, substr string) {
	t.Helper()
	if strings.Contains(output, substr) {
		t.Fatalf("expected %q not to contain %q", output, substr)
	}
}
