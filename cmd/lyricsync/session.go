package main

import (
	"context"

	"github.com/spf13/cobra"

	"lyricsync/internal/lyrics"
	"lyricsync/internal/playback"
	"lyricsync/internal/prefs"
)

type sessionFlags struct {
	songID      string
	mode        string
	hideMarkers bool
	showMarkers bool
}

func (f *sessionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.songID, "song", "s", "", "Song identifier used for the stored offset")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Highlight mode for this run: word or line (defaults to the saved preference)")
	cmd.Flags().BoolVar(&f.hideMarkers, "hide-markers", false, "Hide section markers for this run")
	cmd.Flags().BoolVar(&f.showMarkers, "show-markers", false, "Show section markers for this run")
	cmd.MarkFlagsMutuallyExclusive("hide-markers", "show-markers")
}

// openSession builds a playback session over the configured stores with the
// provided inputs loaded.
func (c *commandContext) openSession(ctx context.Context, flags sessionFlags, words []lyrics.AlignedWord, text string, player playback.Player) (*playback.Session, error) {
	offsets, err := c.offsetStore(ctx)
	if err != nil {
		return nil, err
	}
	prefStore, err := c.prefsStore(ctx)
	if err != nil {
		return nil, err
	}
	cfg := c.configValue()

	opts := playback.Options{
		SongID:          flags.songID,
		Offsets:         offsets,
		Prefs:           prefStore,
		Calibrator:      calibratorFor(cfg),
		Player:          player,
		SeekThrottle:    cfg.SeekThrottle(),
		LookupCacheSize: cfg.Sync.LookupCacheSize,
		IncludeMarkers:  cfg.Export.IncludeMarkers,
		Logger:          c.loggerValue(),
	}
	if flags.mode != "" {
		mode, ok := prefs.ParseMode(flags.mode)
		if !ok {
			return nil, errInvalidMode(flags.mode)
		}
		opts.Mode = mode
	}
	switch {
	case flags.hideMarkers:
		show := false
		opts.ShowMarkers = &show
	case flags.showMarkers:
		show := true
		opts.ShowMarkers = &show
	}

	session := playback.NewSession(c.withSession(ctx, flags.songID), opts)
	session.SetWords(words)
	session.SetLyrics(text)
	return session, nil
}
