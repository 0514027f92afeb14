// Package vtt renders line cues as WebVTT subtitles and hands the result to
// a Downloader (a directory, a writer, or the system clipboard).
package vtt
