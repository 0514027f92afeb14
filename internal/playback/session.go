package playback

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"lyricsync/internal/logging"
	"lyricsync/internal/lyrics"
	"lyricsync/internal/offset"
	"lyricsync/internal/perf"
	"lyricsync/internal/prefs"
	"lyricsync/internal/vtt"
)

const (
	defaultSeekThrottle    = 200 * time.Millisecond
	defaultLookupCacheSize = 256
	aggregateCacheSize     = 4
)

// Player is the audio element a session seeks.
type Player interface {
	Seek(seconds float64)
}

// PlayerFunc adapts a function to Player.
type PlayerFunc func(seconds float64)

func (f PlayerFunc) Seek(seconds float64) { f(seconds) }

// Options configures NewSession. Offsets, Prefs, and Player may be nil.
type Options struct {
	SongID          string
	Offsets         *offset.Store
	Prefs           *prefs.Store
	Calibrator      offset.Calibrator
	Player          Player
	SeekThrottle    time.Duration
	PersistDebounce time.Duration
	LookupCacheSize int
	IncludeMarkers  bool // in exports
	Logger          *slog.Logger

	// Mode and ShowMarkers override the stored preferences for this session
	// without persisting them.
	Mode        prefs.Mode
	ShowMarkers *bool
}

// Highlight is what the UI should show at one playback time.
//
// Word is the active word on the offset-shifted timeline. LineIndex indexes
// Lines() (-1 when playback sits between lines) and Line is that cue in the
// unshifted timeline.
type Highlight struct {
	Time      float64          `json:"time" yaml:"time"`
	Mode      prefs.Mode       `json:"mode" yaml:"mode"`
	Word      lyrics.WordMatch `json:"word" yaml:"word"`
	Progress  float64          `json:"progress" yaml:"progress"`
	LineIndex int              `json:"lineIndex" yaml:"lineIndex"`
	Line      *lyrics.LineCue  `json:"line,omitempty" yaml:"line,omitempty"`
}

type aggregateInput struct {
	key   aggregateKey
	words []lyrics.AlignedWord
}

type aggregateKey struct {
	version uint64
	text    string
}

type lookupKey struct {
	version     uint64
	offsetMs    int
	mode        prefs.Mode
	showMarkers bool
	t           float64
}

// Session tracks one song's playback state. It is safe for concurrent use.
type Session struct {
	songID     string
	offsets    *offset.Store
	prefs      *prefs.Store
	calibrator offset.Calibrator
	player     Player
	include    bool
	logger     *slog.Logger
	persistCtx context.Context

	mu          sync.Mutex
	version     uint64
	words       []lyrics.AlignedWord
	shifted     []lyrics.AlignedWord
	text        string
	offsetMs    int
	mode        prefs.Mode
	showMarkers bool

	aggregate *perf.Memo[aggregateInput, aggregateKey, []lyrics.LineCue]
	lookups   *perf.LRUCache[lookupKey, Highlight]
	seeker    *perf.Throttler[float64]
	persister *perf.Debouncer[int]
}

// NewSession restores the song's saved offset and the display preferences.
func NewSession(ctx context.Context, opts Options) *Session {
	calibrator := opts.Calibrator
	if calibrator == (offset.Calibrator{}) {
		calibrator = offset.Default()
	}
	throttle := opts.SeekThrottle
	if throttle <= 0 {
		throttle = defaultSeekThrottle
	}
	cacheSize := opts.LookupCacheSize
	if cacheSize <= 0 {
		cacheSize = defaultLookupCacheSize
	}
	ctx = logging.WithSongID(ctx, opts.SongID)
	logger := logging.WithContext(ctx, logging.NewComponentLogger(opts.Logger, "playback"))

	s := &Session{
		songID:      opts.SongID,
		offsets:     opts.Offsets,
		prefs:       opts.Prefs,
		calibrator:  calibrator,
		player:      opts.Player,
		include:     opts.IncludeMarkers,
		logger:      logger,
		persistCtx:  context.WithoutCancel(ctx),
		mode:        prefs.ModeWord,
		showMarkers: true,
		lookups:     perf.NewLRUCache[lookupKey, Highlight](cacheSize),
	}
	s.aggregate = perf.Memoize(func(in aggregateInput) []lyrics.LineCue {
		return lyrics.AggregateWordsToLines(in.words, in.key.text)
	}, func(in aggregateInput) aggregateKey {
		return in.key
	}, aggregateCacheSize)
	s.seeker = perf.Throttle(throttle, s.seek)
	if opts.PersistDebounce > 0 {
		s.persister = perf.Debounce(opts.PersistDebounce, s.persistOffset)
	}

	if s.offsets != nil && s.songID != "" {
		s.offsetMs = s.calibrator.Clamp(s.offsets.Load(ctx, s.songID))
	}
	if s.prefs != nil {
		s.mode = s.prefs.SyncMode(ctx)
		s.showMarkers = s.prefs.MarkerVisibility(ctx)
	}
	if mode, ok := prefs.ParseMode(string(opts.Mode)); ok {
		s.mode = mode
	}
	if opts.ShowMarkers != nil {
		s.showMarkers = *opts.ShowMarkers
	}
	logger.Debug("playback session ready",
		logging.Int("offset_ms", s.offsetMs),
		logging.String("mode", string(s.mode)),
		logging.Bool("show_markers", s.showMarkers))
	return s
}

// SetWords replaces the aligned words. The slice is copied.
func (s *Session) SetWords(words []lyrics.AlignedWord) {
	copied := append([]lyrics.AlignedWord(nil), words...)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = copied
	s.shifted = offset.Apply(copied, s.offsetMs)
	s.version++
}

// SetLyrics replaces the lyric text used for line aggregation.
func (s *Session) SetLyrics(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if text == s.text {
		return
	}
	s.text = text
	s.version++
}

// Lines returns the line cues for the current words and text.
func (s *Session) Lines() []lyrics.LineCue {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linesLocked()
}

func (s *Session) linesLocked() []lyrics.LineCue {
	return s.aggregate.Call(aggregateInput{
		key:   aggregateKey{version: s.version, text: s.text},
		words: s.words,
	})
}

// Tick resolves what to highlight at playback time t (seconds).
func (s *Session) Tick(t float64) Highlight {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := lookupKey{version: s.version, offsetMs: s.offsetMs, mode: s.mode, showMarkers: s.showMarkers, t: t}
	if !math.IsNaN(t) {
		if cached, ok := s.lookups.Get(key); ok {
			return cached
		}
	}

	h := Highlight{Time: t, Mode: s.mode, LineIndex: -1}
	h.Word = lyrics.FindActiveWord(s.shifted, t, !s.showMarkers)
	h.Progress = lyrics.CalculateWordProgress(h.Word.Word, t)

	lines := s.linesLocked()
	idx := perf.BinarySearchCurrentLine(lines, t-float64(s.offsetMs)/1000)
	if idx >= 0 && (s.showMarkers || !lines[idx].IsMarker) {
		h.LineIndex = idx
		h.Line = &lines[idx]
	}

	if !math.IsNaN(t) {
		s.lookups.Put(key, h)
	}
	return h
}

// Offset returns the current offset in milliseconds.
func (s *Session) Offset() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.offsetMs
}

// SetOffset clamps ms, applies it, and persists it for the song. It returns
// the applied value.
func (s *Session) SetOffset(ctx context.Context, ms int) int {
	s.mu.Lock()
	applied := s.applyOffsetLocked(s.calibrator.Clamp(ms))
	s.mu.Unlock()
	s.schedulePersist(ctx, applied)
	return applied
}

// NudgeOffset moves the offset by steps calibrator steps (negative steps move
// earlier) and returns the applied value.
func (s *Session) NudgeOffset(ctx context.Context, steps int) int {
	s.mu.Lock()
	value := s.offsetMs
	for ; steps > 0; steps-- {
		value = s.calibrator.Increment(value)
	}
	for ; steps < 0; steps++ {
		value = s.calibrator.Decrement(value)
	}
	applied := s.applyOffsetLocked(value)
	s.mu.Unlock()
	s.schedulePersist(ctx, applied)
	return applied
}

func (s *Session) applyOffsetLocked(ms int) int {
	if ms != s.offsetMs {
		s.offsetMs = ms
		s.shifted = offset.Apply(s.words, ms)
	}
	return ms
}

func (s *Session) schedulePersist(ctx context.Context, ms int) {
	if s.persister != nil {
		s.persister.Call(ms)
		return
	}
	if s.offsets != nil && s.songID != "" {
		s.offsets.Save(logging.WithSongID(ctx, s.songID), s.songID, ms)
	}
}

func (s *Session) persistOffset(ms int) {
	if s.offsets != nil && s.songID != "" {
		s.offsets.Save(s.persistCtx, s.songID, ms)
	}
}

// Mode returns the highlighting mode.
func (s *Session) Mode() prefs.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches highlighting granularity and persists the choice.
func (s *Session) SetMode(ctx context.Context, mode prefs.Mode) bool {
	parsed, ok := prefs.ParseMode(string(mode))
	if !ok {
		return false
	}
	s.mu.Lock()
	s.mode = parsed
	s.mu.Unlock()
	if s.prefs != nil {
		s.prefs.SetSyncMode(ctx, parsed)
	}
	return true
}

// MarkersVisible reports whether section markers are highlighted.
func (s *Session) MarkersVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showMarkers
}

// SetMarkerVisibility shows or hides section markers and persists the choice.
func (s *Session) SetMarkerVisibility(ctx context.Context, show bool) {
	s.mu.Lock()
	s.showMarkers = show
	s.mu.Unlock()
	if s.prefs != nil {
		s.prefs.SetMarkerVisibility(ctx, show)
	}
}

// SeekToLine asks the player to jump to the start of line i on the shifted
// timeline. Rapid requests are throttled; the latest one always lands.
func (s *Session) SeekToLine(i int) bool {
	s.mu.Lock()
	lines := s.linesLocked()
	if i < 0 || i >= len(lines) {
		s.mu.Unlock()
		return false
	}
	target := math.Max(0, lines[i].StartTime+float64(s.offsetMs)/1000)
	s.mu.Unlock()
	s.seeker.Call(target)
	return true
}

func (s *Session) seek(seconds float64) {
	if s.player == nil {
		s.logger.Debug("seek dropped; no player attached", logging.Float64("target_s", seconds))
		return
	}
	s.player.Seek(seconds)
}

// ExportVTT renders the current lines as WebVTT with the session offset and
// hands the file to d. It returns the generated filename and whether the
// download succeeded.
func (s *Session) ExportVTT(style string, createdAt time.Time, d vtt.Downloader) (string, bool) {
	s.mu.Lock()
	content := vtt.GenerateContentWithOptions(s.linesLocked(), vtt.Options{
		OffsetMs:       s.offsetMs,
		IncludeMarkers: s.include,
	})
	s.mu.Unlock()
	filename := vtt.Filename(style, createdAt)
	return filename, vtt.Deliver(s.logger, d, content, filename)
}

// Close fires any pending seek and offset save.
func (s *Session) Close() {
	s.seeker.Flush()
	s.seeker.Cancel()
	if s.persister != nil {
		s.persister.Flush()
	}
}
