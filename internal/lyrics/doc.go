// Package lyrics maps playback time onto lyric text.
//
// It owns the aligned-word model delivered by the upstream alignment service,
// the O(log n) word lookup used on every playback tick, section-marker
// detection for `**Verse**` style labels, and the aggregator that folds word
// timings into per-line cues for user-edited lyric text.
//
// Every function here is pure and tolerant of malformed input: empty slices,
// blank text, and non-finite times produce empty or default results rather
// than errors.
package lyrics
