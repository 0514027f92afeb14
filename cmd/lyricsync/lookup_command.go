package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lyricsync/internal/offset"
	"lyricsync/internal/playback"
	"lyricsync/internal/vtt"
)

func newLookupCommand(ctx *commandContext) *cobra.Command {
	var inputs inputFlags
	var session sessionFlags
	var at float64

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Show what is highlighted at a playback time",
		Long: `Show what is highlighted at a playback time.

The song's stored offset and the saved display preferences apply unless
overridden with --mode, --hide-markers, or --show-markers.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			words, text, err := inputs.load(cmd)
			if err != nil {
				return err
			}
			s, err := ctx.openSession(cmd.Context(), session, words, text, nil)
			if err != nil {
				return err
			}
			defer s.Close()

			h := s.Tick(at)
			if ctx.JSONMode() {
				return writeJSON(cmd, struct {
					playback.Highlight
					OffsetMs int `json:"offsetMs"`
				}{h, s.Offset()})
			}
			renderHighlight(cmd, h, s.Offset(), shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}

	inputs.register(cmd, false)
	session.register(cmd)
	cmd.Flags().Float64VarP(&at, "at", "t", 0, "Playback time in seconds")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func renderHighlight(cmd *cobra.Command, h playback.Highlight, offsetMs int, colorize bool) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderStatusLine("Time", statusInfo, fmt.Sprintf("%.3fs (offset %s)", h.Time, offset.FormatDisplay(offsetMs)), colorize))
	fmt.Fprintln(out, renderStatusLine("Mode", statusInfo, string(h.Mode), colorize))
	if h.Word.Found() {
		fmt.Fprintln(out, renderStatusLine("Word", statusOK, fmt.Sprintf("#%d %q %s %.0f%%",
			h.Word.Index+1, h.Word.Word.Word, h.Word.State, h.Progress*100), colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("Word", statusWarn, "none", colorize))
	}
	if h.Line != nil {
		fmt.Fprintln(out, renderStatusLine("Line", statusOK, fmt.Sprintf("#%d %s (%s --> %s)",
			h.Line.LineIndex+1, h.Line.Text, vtt.FormatTimestamp(h.Line.StartTime), vtt.FormatTimestamp(h.Line.EndTime)), colorize))
	} else {
		fmt.Fprintln(out, renderStatusLine("Line", statusWarn, "between lines", colorize))
	}
}
