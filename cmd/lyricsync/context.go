package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"lyricsync/internal/config"
	"lyricsync/internal/kvstore"
	"lyricsync/internal/logging"
	"lyricsync/internal/offset"
	"lyricsync/internal/prefs"
)

type commandContext struct {
	configFlag *string
	jsonFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger

	storeMu sync.Mutex
	store   kvstore.Store

	sessionID string
}

func newCommandContext(configFlag *string, jsonFlag *bool) *commandContext {
	return &commandContext{
		configFlag: configFlag,
		jsonFlag:   jsonFlag,
		sessionID:  uuid.NewString(),
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// JSONMode reports whether --json was passed.
func (c *commandContext) JSONMode() bool {
	return c.jsonFlag != nil && *c.jsonFlag
}

func (c *commandContext) loggerValue() *slog.Logger {
	c.loggerOnce.Do(func() {
		logger, err := logging.NewFromConfig(c.configValue())
		if err != nil {
			logger = logging.NewNop()
		}
		c.logger = logger.With(logging.String(logging.FieldSessionID, c.sessionID))
	})
	return c.logger
}

// withSession tags ctx with the CLI session id and, when set, the song id.
func (c *commandContext) withSession(ctx context.Context, songID string) context.Context {
	ctx = logging.WithSessionID(ctx, c.sessionID)
	return logging.WithSongID(ctx, songID)
}

// kvStore lazily opens the configured storage backend.
func (c *commandContext) kvStore(ctx context.Context) (kvstore.Store, error) {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()
	if c.store != nil {
		return c.store, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	store, err := kvstore.Open(ctx, cfg.Storage, c.loggerValue())
	if err != nil {
		return nil, err
	}
	c.store = store
	return store, nil
}

func (c *commandContext) offsetStore(ctx context.Context) (*offset.Store, error) {
	backend, err := c.kvStore(ctx)
	if err != nil {
		return nil, err
	}
	cfg := c.configValue()
	return offset.NewStore(backend,
		offset.WithLogger(c.loggerValue()),
		offset.WithCalibrator(calibratorFor(cfg)),
		offset.WithMaxEntries(cfg.Sync.MaxOffsetEntries),
	), nil
}

func (c *commandContext) prefsStore(ctx context.Context) (*prefs.Store, error) {
	backend, err := c.kvStore(ctx)
	if err != nil {
		return nil, err
	}
	return prefs.NewStore(backend, c.loggerValue()), nil
}

func (c *commandContext) close() error {
	c.storeMu.Lock()
	defer c.storeMu.Unlock()
	if c.store == nil {
		return nil
	}
	err := c.store.Close()
	c.store = nil
	return err
}

func calibratorFor(cfg *config.Config) offset.Calibrator {
	if cfg == nil {
		return offset.Default()
	}
	return offset.Calibrator{Min: cfg.Sync.OffsetMinMs, Max: cfg.Sync.OffsetMaxMs, Step: cfg.Sync.OffsetStepMs}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
