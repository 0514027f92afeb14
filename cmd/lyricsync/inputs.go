package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lyricsync/internal/lyrics"
)

type inputFlags struct {
	wordsPath  string
	lyricsPath string
}

func (f *inputFlags) register(cmd *cobra.Command, lyricsRequired bool) {
	cmd.Flags().StringVarP(&f.wordsPath, "words", "w", "", "Aligned words JSON file (- for stdin)")
	usage := "Lyric text file, one line per cue"
	if !lyricsRequired {
		usage += " (optional)"
	}
	cmd.Flags().StringVarP(&f.lyricsPath, "lyrics", "l", "", usage)
	_ = cmd.MarkFlagRequired("words")
	if lyricsRequired {
		_ = cmd.MarkFlagRequired("lyrics")
	}
}

func (f *inputFlags) load(cmd *cobra.Command) ([]lyrics.AlignedWord, string, error) {
	words, err := loadWords(cmd, f.wordsPath)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(f.lyricsPath) == "" {
		return words, "", nil
	}
	text, err := os.ReadFile(f.lyricsPath)
	if err != nil {
		return nil, "", fmt.Errorf("read lyrics: %w", err)
	}
	return words, string(text), nil
}

func loadWords(cmd *cobra.Command, path string) ([]lyrics.AlignedWord, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("--words is required")
	}
	if path != "-" {
		return lyrics.LoadAlignedWords(path)
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	return lyrics.ParseAlignedWords(data)
}
