package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lyricsync/internal/offset"
)

func newOffsetCommand(ctx *commandContext) *cobra.Command {
	offsetCmd := &cobra.Command{
		Use:   "offset",
		Short: "Inspect and adjust per-song timing offsets",
		Long: `Inspect and adjust per-song timing offsets.

Offsets shift every word and line of a song by a number of milliseconds and
are clamped to the configured range. Only the most recently used songs are
remembered; older entries are evicted.

Commands:
  get    - Show the stored offset for a song
  set    - Store an offset for a song
  inc    - Move a song's offset later by one or more steps
  dec    - Move a song's offset earlier by one or more steps
  list   - List stored offsets, most recent first
  clear  - Remove every stored offset`,
	}

	offsetCmd.AddCommand(newOffsetGetCommand(ctx))
	offsetCmd.AddCommand(newOffsetSetCommand(ctx))
	offsetCmd.AddCommand(newOffsetStepCommand(ctx, "inc", 1))
	offsetCmd.AddCommand(newOffsetStepCommand(ctx, "dec", -1))
	offsetCmd.AddCommand(newOffsetListCommand(ctx))
	offsetCmd.AddCommand(newOffsetClearCommand(ctx))

	return offsetCmd
}

func reportOffset(cmd *cobra.Command, ctx *commandContext, songID string, value int) error {
	if ctx.JSONMode() {
		return writeJSON(cmd, map[string]any{
			"song":     songID,
			"offsetMs": value,
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Offset for %s: %s\n", songID, offset.FormatDisplay(value))
	return nil
}

func songArg(args []string) (string, error) {
	songID := strings.TrimSpace(args[0])
	if songID == "" {
		return "", fmt.Errorf("song identifier must not be empty")
	}
	return songID, nil
}

func newOffsetGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <song>",
		Short: "Show the stored offset for a song",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songID, err := songArg(args)
			if err != nil {
				return err
			}
			runCtx := ctx.withSession(cmd.Context(), songID)
			store, err := ctx.offsetStore(runCtx)
			if err != nil {
				return err
			}
			return reportOffset(cmd, ctx, songID, store.Load(runCtx, songID))
		},
	}
}

func newOffsetSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set <song> <ms>",
		Short: "Store an offset for a song",
		Long: `Store an offset for a song.

Example:
  lyricsync offset set my-song 150     # words appear 150ms later
  lyricsync offset set my-song -- -80  # words appear 80ms earlier`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			songID, err := songArg(args)
			if err != nil {
				return err
			}
			value, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(args[1]), "ms"))
			if err != nil {
				return fmt.Errorf("invalid offset %q: must be an integer number of milliseconds", args[1])
			}
			runCtx := ctx.withSession(cmd.Context(), songID)
			store, err := ctx.offsetStore(runCtx)
			if err != nil {
				return err
			}
			value = calibratorFor(ctx.configValue()).Clamp(value)
			store.Save(runCtx, songID, value)
			return reportOffset(cmd, ctx, songID, value)
		},
	}
}

func newOffsetStepCommand(ctx *commandContext, use string, direction int) *cobra.Command {
	var steps int
	short := "Move a song's offset later by one step"
	if direction < 0 {
		short = "Move a song's offset earlier by one step"
	}
	cmd := &cobra.Command{
		Use:   use + " <song>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			songID, err := songArg(args)
			if err != nil {
				return err
			}
			if steps < 1 {
				return fmt.Errorf("--steps must be positive")
			}
			runCtx := ctx.withSession(cmd.Context(), songID)
			store, err := ctx.offsetStore(runCtx)
			if err != nil {
				return err
			}
			calibrator := calibratorFor(ctx.configValue())
			value := store.Load(runCtx, songID)
			for i := 0; i < steps; i++ {
				if direction > 0 {
					value = calibrator.Increment(value)
				} else {
					value = calibrator.Decrement(value)
				}
			}
			store.Save(runCtx, songID, value)
			return reportOffset(cmd, ctx, songID, value)
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "Number of steps to move")
	return cmd
}

func newOffsetListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored offsets, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx := ctx.withSession(cmd.Context(), "")
			store, err := ctx.offsetStore(runCtx)
			if err != nil {
				return err
			}
			records := store.List(runCtx)

			if ctx.JSONMode() {
				type jsonRecord struct {
					Song      string `json:"song"`
					OffsetMs  int    `json:"offsetMs"`
					UpdatedAt string `json:"updatedAt"`
				}
				payload := make([]jsonRecord, 0, len(records))
				for _, record := range records {
					payload = append(payload, jsonRecord{
						Song:      record.SongID,
						OffsetMs:  record.Offset,
						UpdatedAt: record.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
					})
				}
				return writeJSON(cmd, payload)
			}

			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "Stored offsets: none")
				return nil
			}
			fmt.Fprintf(out, "Stored offsets: %d\n", len(records))
			rows := make([][]string, 0, len(records))
			for i, record := range records {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					record.SongID,
					offset.FormatDisplay(record.Offset),
					record.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Song", "Offset", "Last Used"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}
}

func newOffsetClearCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every stored offset",
		RunE: func(cmd *cobra.Command, args []string) error {
			runCtx := ctx.withSession(cmd.Context(), "")
			store, err := ctx.offsetStore(runCtx)
			if err != nil {
				return err
			}
			store.Clear(runCtx)
			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{"cleared": true})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared stored offsets")
			return nil
		},
	}
}
