package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lyricsync/internal/lyrics"
	"lyricsync/internal/vtt"
)

func newLinesCommand(ctx *commandContext) *cobra.Command {
	var inputs inputFlags
	var format string

	cmd := &cobra.Command{
		Use:   "lines",
		Short: "Aggregate aligned words into timed lyric lines",
		Long: `Aggregate aligned words into timed lyric lines.

Each non-blank lyric line is matched against the aligned word stream and
reported with the time range of its matched words. Lines that match no
words are omitted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			words, text, err := inputs.load(cmd)
			if err != nil {
				return err
			}
			cues := lyrics.AggregateWordsToLines(words, text)
			if cues == nil {
				cues = []lyrics.LineCue{}
			}

			switch {
			case ctx.JSONMode() || strings.EqualFold(format, "json"):
				return writeJSON(cmd, cues)
			case strings.EqualFold(format, "yaml"):
				return writeYAML(cmd, cues)
			case format == "" || strings.EqualFold(format, "table"):
			default:
				return fmt.Errorf("unsupported format %q (use table, json, or yaml)", format)
			}

			out := cmd.OutOrStdout()
			if len(cues) == 0 {
				fmt.Fprintln(out, "No lines matched the aligned words")
				return nil
			}
			rows := make([][]string, 0, len(cues))
			for _, cue := range cues {
				rows = append(rows, []string{
					strconv.Itoa(cue.LineIndex + 1),
					vtt.FormatTimestamp(cue.StartTime),
					vtt.FormatTimestamp(cue.EndTime),
					yesNo(cue.IsMarker),
					cue.Text,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Line", "Start", "End", "Marker", "Text"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}

	inputs.register(cmd, true)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, json, or yaml")
	return cmd
}
