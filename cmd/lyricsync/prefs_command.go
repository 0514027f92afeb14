package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lyricsync/internal/prefs"
)

func newPrefsCommand(ctx *commandContext) *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show and change display preferences",
	}

	prefsCmd.AddCommand(newPrefsShowCommand(ctx))
	prefsCmd.AddCommand(newPrefsMarkersCommand(ctx))
	prefsCmd.AddCommand(newPrefsModeCommand(ctx))

	return prefsCmd
}

func showPrefs(cmd *cobra.Command, ctx *commandContext, store *prefs.Store) error {
	runCtx := cmd.Context()
	markers := store.MarkerVisibility(runCtx)
	mode := store.SyncMode(runCtx)
	if ctx.JSONMode() {
		return writeJSON(cmd, map[string]any{
			"showMarkers": markers,
			"syncMode":    mode,
		})
	}
	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	fmt.Fprintln(out, renderStatusLine("Section markers", statusInfo, shownHidden(markers), colorize))
	fmt.Fprintln(out, renderStatusLine("Sync mode", statusInfo, string(mode), colorize))
	return nil
}

func shownHidden(show bool) string {
	if show {
		return "shown"
	}
	return "hidden"
}

func newPrefsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.prefsStore(ctx.withSession(cmd.Context(), ""))
			if err != nil {
				return err
			}
			return showPrefs(cmd, ctx, store)
		},
	}
}

func newPrefsMarkersCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "markers <on|off>",
		Short:     "Show or hide section markers while highlighting",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var show bool
			switch strings.ToLower(strings.TrimSpace(args[0])) {
			case "on", "show", "true", "yes":
				show = true
			case "off", "hide", "false", "no":
				show = false
			default:
				return fmt.Errorf("invalid value %q (use on or off)", args[0])
			}
			runCtx := ctx.withSession(cmd.Context(), "")
			store, err := ctx.prefsStore(runCtx)
			if err != nil {
				return err
			}
			store.SetMarkerVisibility(runCtx, show)
			return showPrefs(cmd, ctx, store)
		},
	}
}

func newPrefsModeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:       "mode <word|line>",
		Short:     "Highlight word by word or line by line",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(prefs.ModeWord), string(prefs.ModeLine)},
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := prefs.ParseMode(args[0])
			if !ok {
				return errInvalidMode(args[0])
			}
			runCtx := ctx.withSession(cmd.Context(), "")
			store, err := ctx.prefsStore(runCtx)
			if err != nil {
				return err
			}
			store.SetSyncMode(runCtx, mode)
			return showPrefs(cmd, ctx, store)
		},
	}
}
