// Package perf holds the helpers that keep per-tick playback lookups cheap:
// a bounded LRU cache, memoization on top of it, debounce and throttle
// wrappers for user-driven events, and a binary search over line cues.
//
// Caches are explicit values owned by the caller; nothing here keeps
// package-level state.
package perf
