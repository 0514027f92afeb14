package kvstore

import (
	"context"
	"fmt"
	"log/slog"

	"lyricsync/internal/config"
	"lyricsync/internal/logging"
)

// Open selects and opens the backend named by cfg.Backend.
func Open(ctx context.Context, cfg config.Storage, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	logger = logging.NewComponentLogger(logger, "kvstore")

	var (
		store Store
		err   error
	)
	switch cfg.Backend {
	case config.BackendMemory:
		store = NewMemory()
	case config.BackendFile:
		store, err = NewFile(cfg.FilePath)
	case config.BackendSQLite:
		store, err = OpenSQLite(ctx, cfg.SQLitePath)
	case config.BackendLibSQL:
		store, err = OpenLibSQL(ctx, cfg.LibSQLURL, cfg.LibSQLAuthToken)
	case config.BackendRedis:
		store, err = OpenRedis(ctx, RedisOptions{
			URL:      cfg.RedisURL,
			Password: cfg.RedisPassword,
			Prefix:   cfg.RedisKeyPrefix,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Backend, err)
	}

	logger.Debug("storage opened",
		logging.String(logging.FieldEventType, "storage_opened"),
		logging.String("backend", cfg.Backend),
		logging.String("location", location(cfg)))
	return store, nil
}

func location(cfg config.Storage) string {
	switch cfg.Backend {
	case config.BackendFile:
		return cfg.FilePath
	case config.BackendSQLite:
		return cfg.SQLitePath
	case config.BackendLibSQL:
		return cfg.LibSQLURL
	case config.BackendRedis:
		return cfg.RedisURL
	default:
		return "memory"
	}
}
