// Package main hosts the lyricsync CLI entrypoint and command graph.
//
// The Cobra-based command tree loads aligned word timings and lyric text from
// disk, aggregates them into line cues, resolves highlights at a playback
// time, exports WebVTT subtitles, and manages the persisted per-song offsets
// and display preferences. It centralizes configuration resolution, storage
// selection, and structured logging setup so subcommands can focus on output.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
