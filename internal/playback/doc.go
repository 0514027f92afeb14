// Package playback drives highlighting for one song.
//
// A Session owns the aligned words, the editable lyric text, the current
// offset, and the display preferences. Each playback tick resolves the
// active word or line through memoized lookups; aggregation reruns only
// when the words or text change. Seeks back into the audio player are
// throttled and offset persistence is debounced so slider drags do not hammer
// storage.
package playback
