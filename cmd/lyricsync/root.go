package main

import (
	"github.com/spf13/cobra"
)

const (
	groupSync  = "sync"
	groupState = "state"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var jsonFlag bool

	ctx := newCommandContext(&configFlag, &jsonFlag)

	rootCmd := &cobra.Command{
		Use:   "lyricsync",
		Short: "Align lyric lines to word timings and export subtitles",
		Long: `lyricsync turns word-level lyric alignments into highlighted lines and
WebVTT subtitles, and remembers a timing offset per song.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "Emit machine-readable JSON output")

	rootCmd.AddGroup(
		&cobra.Group{ID: groupSync, Title: "Synchronization:"},
		&cobra.Group{ID: groupState, Title: "Saved state:"},
	)
	for _, cmd := range []*cobra.Command{
		newLinesCommand(ctx),
		newLookupCommand(ctx),
		newPlayCommand(ctx),
		newExportCommand(ctx),
	} {
		cmd.GroupID = groupSync
		rootCmd.AddCommand(cmd)
	}
	for _, cmd := range []*cobra.Command{
		newOffsetCommand(ctx),
		newPrefsCommand(ctx),
	} {
		cmd.GroupID = groupState
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}
