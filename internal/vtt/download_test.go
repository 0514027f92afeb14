package vtt

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type failingDownloader struct{}

func (failingDownloader) Download(string, []byte, string) error {
	return errors.New("quota exceeded")
}

type panickyDownloader struct{}

func (panickyDownloader) Download(string, []byte, string) error {
	panic("boom")
}

type recordingDownloader struct {
	filename string
	mimeType string
	content  []byte
}

func (r *recordingDownloader) Download(filename string, content []byte, mimeType string) error {
	r.filename = filename
	r.mimeType = mimeType
	r.content = content
	return nil
}

func TestDeliver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	rec := &recordingDownloader{}
	if !Deliver(logger, rec, "WEBVTT\n\n", "song-a-2025-01-01.vtt") {
		t.Fatal("expected successful delivery")
	}
	if rec.mimeType != MIMEType || rec.filename != "song-a-2025-01-01.vtt" || string(rec.content) != "WEBVTT\n\n" {
		t.Fatalf("unexpected download: %+v", rec)
	}

	for name, d := range map[string]Downloader{
		"nil":     nil,
		"failing": failingDownloader{},
		"panicky": panickyDownloader{},
	} {
		buf.Reset()
		if Deliver(logger, d, "WEBVTT\n\n", "x.vtt") {
			t.Fatalf("%s: expected delivery failure", name)
		}
		if !strings.Contains(buf.String(), "level=WARN") {
			t.Fatalf("%s: expected warning, got %q", name, buf.String())
		}
	}
}

func TestDirDownloader(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	d := DirDownloader{Dir: dir}
	if err := d.Download("song-a:b-2025-01-01.vtt", []byte("WEBVTT\n\n"), MIMEType); err != nil {
		t.Fatalf("Download: %v", err)
	}
	target := d.Path("song-a:b-2025-01-01.vtt")
	if filepath.Base(target) != "song-a-b-2025-01-01.vtt" {
		t.Fatalf("unexpected sanitized name %q", target)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "WEBVTT\n\n" {
		t.Fatalf("unexpected file contents %q", data)
	}
	if _, err := os.Stat(target + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("expected temp file removed, stat err=%v", err)
	}
}

func TestWriterDownloader(t *testing.T) {
	var buf bytes.Buffer
	if err := (WriterDownloader{W: &buf}).Download("ignored.vtt", []byte("WEBVTT\n\n"), MIMEType); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if buf.String() != "WEBVTT\n\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
	if err := (WriterDownloader{}).Download("x", nil, MIMEType); err == nil {
		t.Fatal("expected error without writer")
	}
}
