// Package offset shifts aligned word timings by a user-controlled millisecond
// offset and persists one offset per song.
//
// Calibrator clamps and steps offsets within a configured range. Store keeps
// a bounded map of song offsets in a kvstore backend, evicting the least
// recently used entry, and never surfaces storage failures to callers: they
// are logged and the caller sees the default.
package offset
