// Package textutil provides the text normalization shared by lyric alignment
// and export code.
//
// The primary use cases are:
//   - Folding lyric and aligned-word tokens into a comparable form
//   - Splitting a lyric line into normalized tokens
//   - Building filesystem-safe slugs for exported subtitle names
//
// Normalization applies Unicode case folding and keeps only letters and
// digits, so "We're," and "were" compare equal.
package textutil
