package vtt

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"

	"lyricsync/internal/logging"
	"lyricsync/internal/textutil"
)

// Downloader delivers a generated file to the user.
type Downloader interface {
	Download(filename string, content []byte, mimeType string) error
}

// DirDownloader writes files into Dir atomically.
type DirDownloader struct {
	Dir string
}

func (d DirDownloader) Download(filename string, content []byte, _ string) error {
	name := textutil.SanitizeFileName(filepath.Base(filename))
	if name == "" || name == "." {
		return errors.New("empty file name")
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	target := filepath.Join(d.Dir, name)
	tmpPath := target + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Path returns where Download places filename.
func (d DirDownloader) Path(filename string) string {
	return filepath.Join(d.Dir, textutil.SanitizeFileName(filepath.Base(filename)))
}

// WriterDownloader copies the content to W, ignoring the filename.
type WriterDownloader struct {
	W io.Writer
}

func (d WriterDownloader) Download(_ string, content []byte, _ string) error {
	if d.W == nil {
		return errors.New("no writer configured")
	}
	_, err := d.W.Write(content)
	return err
}

// ClipboardDownloader places the content on the system clipboard.
type ClipboardDownloader struct{}

func (ClipboardDownloader) Download(_ string, content []byte, _ string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard unavailable on this system")
	}
	return clipboard.WriteAll(string(content))
}

// Deliver hands content to d as a text/vtt file. Failures, including a nil
// downloader, are logged and reported as false.
func Deliver(logger *slog.Logger, d Downloader, content, filename string) (ok bool) {
	logger = logging.NewComponentLogger(logger, "vtt")
	defer func() {
		if r := recover(); r != nil {
			logging.WarnWithContext(logger, "subtitle export panicked", "vtt_download_panic",
				logging.String("filename", filename),
				logging.Any("panic", r),
				logging.String(logging.FieldImpact, "no file was produced"))
			ok = false
		}
	}()
	if d == nil {
		logging.WarnWithContext(logger, "subtitle export skipped", "vtt_no_downloader",
			logging.String("filename", filename),
			logging.String(logging.FieldErrorHint, "choose an output directory, stdout, or the clipboard"),
			logging.String(logging.FieldImpact, "no file was produced"))
		return false
	}
	if err := d.Download(filename, []byte(content), MIMEType); err != nil {
		logging.WarnWithContext(logger, "subtitle export failed", "vtt_download_failed",
			logging.String("filename", filename),
			logging.Error(err),
			logging.String(logging.FieldImpact, "no file was produced"))
		return false
	}
	logger.Info("subtitle exported",
		logging.String("filename", filename),
		logging.Int("bytes", len(content)))
	return true
}
