package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateStorage() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendFile, BackendSQLite:
		return nil
	case BackendLibSQL:
		if c.Storage.LibSQLURL == "" {
			return errors.New("storage.libsql_url must be set when storage.backend is libsql (or export LIBSQL_URL)")
		}
		return nil
	case BackendRedis:
		if c.Storage.RedisURL == "" {
			return errors.New("storage.redis_url must be set when storage.backend is redis (or export REDIS_URL)")
		}
		return nil
	default:
		return fmt.Errorf("storage.backend: unsupported value %q (use memory, file, sqlite, libsql, or redis)", c.Storage.Backend)
	}
}

func (c *Config) validateSync() error {
	if c.Sync.OffsetMinMs >= c.Sync.OffsetMaxMs {
		return errors.New("sync.offset_min_ms must be less than sync.offset_max_ms")
	}
	if err := ensurePositiveMap(map[string]int{
		"sync.offset_step_ms":     c.Sync.OffsetStepMs,
		"sync.max_offset_entries": c.Sync.MaxOffsetEntries,
		"sync.seek_throttle_ms":   c.Sync.SeekThrottleMs,
		"sync.tick_interval_ms":   c.Sync.TickIntervalMs,
		"sync.lookup_cache_size":  c.Sync.LookupCacheSize,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
