package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lyricsync/internal/vtt"
)

func newExportCommand(ctx *commandContext) *cobra.Command {
	var inputs inputFlags
	var session sessionFlags
	var style string
	var createdAt string
	var outDir string
	var toStdout bool
	var toClipboard bool
	var includeMarkers bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export lyric lines as WebVTT subtitles",
		Long: `Export lyric lines as WebVTT subtitles.

The song's stored offset is applied to every cue. Files are named
song-<style>-<date>.vtt and written to the configured export directory
unless --out, --stdout, or --clipboard is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			words, text, err := inputs.load(cmd)
			if err != nil {
				return err
			}
			cfg := ctx.configValue()
			if cmd.Flags().Changed("include-markers") {
				cfg.Export.IncludeMarkers = includeMarkers
			}
			s, err := ctx.openSession(cmd.Context(), session, words, text, nil)
			if err != nil {
				return err
			}
			defer s.Close()

			var downloader vtt.Downloader
			var target string
			switch {
			case toStdout:
				downloader = vtt.WriterDownloader{W: cmd.OutOrStdout()}
				target = "stdout"
			case toClipboard:
				downloader = vtt.ClipboardDownloader{}
				target = "clipboard"
			default:
				dir := strings.TrimSpace(outDir)
				if dir == "" {
					dir = cfg.Export.OutputDir
				}
				dl := vtt.DirDownloader{Dir: dir}
				downloader = dl
				target = dir
			}

			filename, ok := s.ExportVTT(style, vtt.ParseCreatedAt(createdAt), downloader)
			if !ok {
				return errors.New("export failed; see log for details")
			}
			if toStdout {
				return nil
			}
			if ctx.JSONMode() {
				return writeJSON(cmd, map[string]any{
					"filename": filename,
					"target":   target,
					"offsetMs": s.Offset(),
				})
			}
			if dl, isDir := downloader.(vtt.DirDownloader); isDir {
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", dl.Path(filename))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Copied %s to the clipboard\n", filename)
			return nil
		},
	}

	inputs.register(cmd, true)
	session.register(cmd)
	cmd.Flags().StringVar(&style, "style", "", "Song style used in the file name")
	cmd.Flags().StringVar(&createdAt, "created-at", "", "Song creation time (RFC3339, YYYY-MM-DD, or epoch ms)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory to write the subtitle file to")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Write the subtitles to stdout")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "Copy the subtitles to the clipboard")
	cmd.Flags().BoolVar(&includeMarkers, "include-markers", false, "Include section marker cues")
	cmd.MarkFlagsMutuallyExclusive("out", "stdout", "clipboard")
	return cmd
}
