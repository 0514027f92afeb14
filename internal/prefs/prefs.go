// Package prefs persists the two display preferences: whether section
// markers are shown and whether highlighting follows words or lines.
package prefs

import (
	"context"
	"log/slog"
	"strings"

	"lyricsync/internal/kvstore"
	"lyricsync/internal/logging"
)

// Storage keys.
const (
	MarkerVisibilityKey = "lyricsync:show-markers"
	SyncModeKey         = "lyricsync:sync-mode"
)

// Mode selects the highlighting granularity.
type Mode string

const (
	ModeWord Mode = "word"
	ModeLine Mode = "line"
)

// ParseMode accepts "word" or "line" in any case.
func ParseMode(value string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeWord:
		return ModeWord, true
	case ModeLine:
		return ModeLine, true
	default:
		return "", false
	}
}

// Store reads and writes preferences. Failures are logged and the defaults
// (markers shown, word mode) are returned in place of unreadable values.
type Store struct {
	backend kvstore.Store
	logger  *slog.Logger
}

// NewStore wraps backend; a nil backend always yields defaults.
func NewStore(backend kvstore.Store, logger *slog.Logger) *Store {
	return &Store{backend: backend, logger: logging.NewComponentLogger(logger, "prefs")}
}

// MarkerVisibility reports whether section markers should be displayed.
func (s *Store) MarkerVisibility(ctx context.Context) bool {
	raw, ok := s.get(ctx, MarkerVisibilityKey)
	if !ok {
		return true
	}
	switch raw {
	case "true":
		return true
	case "false":
		return false
	default:
		s.warnValue(ctx, MarkerVisibilityKey, raw)
		return true
	}
}

func (s *Store) SetMarkerVisibility(ctx context.Context, show bool) {
	value := "false"
	if show {
		value = "true"
	}
	s.set(ctx, MarkerVisibilityKey, value)
}

// SyncMode returns the stored highlighting mode, defaulting to word.
func (s *Store) SyncMode(ctx context.Context) Mode {
	raw, ok := s.get(ctx, SyncModeKey)
	if !ok {
		return ModeWord
	}
	mode, valid := ParseMode(raw)
	if !valid {
		s.warnValue(ctx, SyncModeKey, raw)
		return ModeWord
	}
	return mode
}

func (s *Store) SetSyncMode(ctx context.Context, mode Mode) {
	parsed, ok := ParseMode(string(mode))
	if !ok {
		s.warnValue(ctx, SyncModeKey, string(mode))
		return
	}
	s.set(ctx, SyncModeKey, string(parsed))
}

func (s *Store) get(ctx context.Context, key string) (string, bool) {
	if s.backend == nil {
		return "", false
	}
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, s.logger), "failed to read preference", "pref_read_failed",
			logging.String("key", key),
			logging.Error(err),
			logging.String(logging.FieldImpact, "default preference used"))
		return "", false
	}
	return strings.TrimSpace(raw), ok
}

func (s *Store) set(ctx context.Context, key, value string) {
	if s.backend == nil {
		return
	}
	if err := s.backend.Set(ctx, key, value); err != nil {
		logging.WarnWithContext(logging.WithContext(ctx, s.logger), "failed to save preference", "pref_write_failed",
			logging.String("key", key),
			logging.Error(err),
			logging.String(logging.FieldImpact, "preference applies for this session only"))
	}
}

func (s *Store) warnValue(ctx context.Context, key, raw string) {
	logging.WarnWithContext(logging.WithContext(ctx, s.logger), "ignoring unrecognised preference value", "pref_invalid_value",
		logging.String("key", key),
		logging.String("value", raw),
		logging.String(logging.FieldImpact, "default preference used"))
}
