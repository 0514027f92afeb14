package offset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"lyricsync/internal/kvstore"
	"lyricsync/internal/logging"
)

// StorageKey holds the JSON map of song offsets.
const StorageKey = "lyricsync:offsets"

// MaxEntries is the default cap on remembered songs.
const MaxEntries = 50

// Entry is the persisted form of one song's offset.
type Entry struct {
	Offset    int   `json:"offset"`
	UpdatedAt int64 `json:"updatedAt"` // epoch ms
}

// Record is an Entry with its song id, for listings.
type Record struct {
	SongID    string
	Offset    int
	UpdatedAt time.Time
}

// Option customizes a Store.
type Option func(*Store)

// WithClock replaces time.Now, mainly for eviction tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithMaxEntries overrides the entry cap. Values below one are ignored.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// WithCalibrator sets the range stored values are clamped to on load.
func WithCalibrator(c Calibrator) Option {
	return func(s *Store) {
		s.calibrator = c
	}
}

// WithLogger sets the logger used for storage warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store persists per-song offsets in a kvstore backend. Its methods never
// return errors; storage failures are logged and degrade to defaults.
type Store struct {
	backend    kvstore.Store
	logger     *slog.Logger
	calibrator Calibrator
	maxEntries int
	now        func() time.Time

	mu sync.Mutex
}

// NewStore wraps backend. A nil backend yields a Store whose saves are
// dropped and whose loads return zero.
func NewStore(backend kvstore.Store, opts ...Option) *Store {
	s := &Store{
		backend:    backend,
		logger:     logging.NewNop(),
		calibrator: Default(),
		maxEntries: MaxEntries,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "offset")
	return s
}

// Save records offset for songID, then evicts the least recently updated
// entries until at most the cap remain.
func (s *Store) Save(ctx context.Context, songID string, offset int) {
	songID = strings.TrimSpace(songID)
	if songID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err != nil {
		s.warn(ctx, "offset storage unreadable; starting fresh", "offset_read_failed", err,
			"previously saved offsets for other songs are discarded")
		entries = make(map[string]Entry)
	}
	entries[songID] = Entry{Offset: offset, UpdatedAt: s.now().UnixMilli()}
	evictOldest(entries, s.maxEntries)

	if err := s.write(ctx, entries); err != nil {
		s.warn(ctx, "failed to save offset", "offset_write_failed", err,
			"offset applies for this session only")
		return
	}
	s.logger.DebugContext(ctx, "saved offset",
		logging.String(logging.FieldSongID, songID),
		logging.Int("offset_ms", offset),
		logging.Int("entries", len(entries)))
}

// Load returns the stored offset for songID, clamped to the calibrator
// range, or zero when absent or unreadable. A hit refreshes the entry's
// recency.
func (s *Store) Load(ctx context.Context, songID string) int {
	songID = strings.TrimSpace(songID)
	if songID == "" {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err != nil {
		s.warn(ctx, "failed to load offset", "offset_read_failed", err,
			"song plays with zero offset")
		return 0
	}
	entry, ok := entries[songID]
	if !ok {
		return 0
	}
	entry.UpdatedAt = s.now().UnixMilli()
	entries[songID] = entry
	if err := s.write(ctx, entries); err != nil {
		s.warn(ctx, "failed to refresh offset recency", "offset_write_failed", err,
			"entry may be evicted earlier than expected")
	}
	return s.calibrator.Clamp(entry.Offset)
}

// List returns every stored offset, most recently updated first.
func (s *Store) List(ctx context.Context) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read(ctx)
	if err != nil {
		s.warn(ctx, "failed to list offsets", "offset_read_failed", err, "listing is empty")
		return nil
	}
	records := make([]Record, 0, len(entries))
	for songID, entry := range entries {
		records = append(records, Record{
			SongID:    songID,
			Offset:    entry.Offset,
			UpdatedAt: time.UnixMilli(entry.UpdatedAt),
		})
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].UpdatedAt.Equal(records[j].UpdatedAt) {
			return records[i].UpdatedAt.After(records[j].UpdatedAt)
		}
		return records[i].SongID < records[j].SongID
	})
	return records
}

// Clear removes every stored offset.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.backend == nil {
		return
	}
	if err := s.backend.Delete(ctx, StorageKey); err != nil {
		s.warn(ctx, "failed to clear offsets", "offset_clear_failed", err, "stored offsets remain")
	}
}

var errNoBackend = errors.New("no storage backend configured")

func (s *Store) read(ctx context.Context) (map[string]Entry, error) {
	if s.backend == nil {
		return nil, errNoBackend
	}
	raw, ok, err := s.backend.Get(ctx, StorageKey)
	if err != nil {
		return nil, err
	}
	entries := make(map[string]Entry)
	if !ok || strings.TrimSpace(raw) == "" {
		return entries, nil
	}
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("parse offsets: %w", err)
	}
	if entries == nil {
		// a stored JSON null
		entries = make(map[string]Entry)
	}
	return entries, nil
}

func (s *Store) write(ctx context.Context, entries map[string]Entry) error {
	if s.backend == nil {
		return errNoBackend
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshal offsets: %w", err)
	}
	return s.backend.Set(ctx, StorageKey, string(data))
}

func (s *Store) warn(ctx context.Context, msg, event string, err error, impact string) {
	logging.WarnWithContext(logging.WithContext(ctx, s.logger), msg, event,
		logging.Error(err),
		logging.String(logging.FieldErrorHint, "check the configured storage backend"),
		logging.String(logging.FieldImpact, impact))
}

// evictOldest drops entries by ascending UpdatedAt (ties broken by song id)
// until at most limit remain.
func evictOldest(entries map[string]Entry, limit int) {
	if len(entries) <= limit {
		return
	}
	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := entries[ids[i]], entries[ids[j]]
		if a.UpdatedAt != b.UpdatedAt {
			return a.UpdatedAt < b.UpdatedAt
		}
		return ids[i] < ids[j]
	})
	for _, id := range ids[:len(ids)-limit] {
		delete(entries, id)
	}
}
