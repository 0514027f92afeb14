package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeStorage(); err != nil {
		return err
	}
	c.normalizeSync()
	if err := c.normalizeExport(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeStorage() error {
	if value, ok := os.LookupEnv("LYRICSYNC_STORAGE_BACKEND"); ok && strings.TrimSpace(value) != "" {
		c.Storage.Backend = value
	}
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaultStorageBackend
	}

	var err error
	c.Storage.FilePath = strings.TrimSpace(c.Storage.FilePath)
	if c.Storage.FilePath == "" {
		c.Storage.FilePath = filepath.Join(c.Paths.DataDir, defaultStateFileName)
	}
	if c.Storage.FilePath, err = expandPath(c.Storage.FilePath); err != nil {
		return fmt.Errorf("storage.file_path: %w", err)
	}
	c.Storage.SQLitePath = strings.TrimSpace(c.Storage.SQLitePath)
	if c.Storage.SQLitePath == "" {
		c.Storage.SQLitePath = filepath.Join(c.Paths.DataDir, defaultSQLiteFileName)
	}
	if c.Storage.SQLitePath, err = expandPath(c.Storage.SQLitePath); err != nil {
		return fmt.Errorf("storage.sqlite_path: %w", err)
	}

	c.Storage.LibSQLURL = strings.TrimSpace(c.Storage.LibSQLURL)
	if c.Storage.LibSQLURL == "" {
		if value, ok := os.LookupEnv("LIBSQL_URL"); ok {
			c.Storage.LibSQLURL = strings.TrimSpace(value)
		}
	}
	c.Storage.LibSQLAuthToken = strings.TrimSpace(c.Storage.LibSQLAuthToken)
	if c.Storage.LibSQLAuthToken == "" {
		if value, ok := os.LookupEnv("LIBSQL_AUTH_TOKEN"); ok {
			c.Storage.LibSQLAuthToken = strings.TrimSpace(value)
		}
	}
	c.Storage.RedisURL = strings.TrimSpace(c.Storage.RedisURL)
	if c.Storage.RedisURL == "" {
		if value, ok := os.LookupEnv("REDIS_URL"); ok {
			c.Storage.RedisURL = strings.TrimSpace(value)
		}
	}
	c.Storage.RedisPassword = strings.TrimSpace(c.Storage.RedisPassword)
	if c.Storage.RedisPassword == "" {
		if value, ok := os.LookupEnv("REDIS_PASSWORD"); ok {
			c.Storage.RedisPassword = strings.TrimSpace(value)
		}
	}
	c.Storage.RedisKeyPrefix = strings.TrimSpace(c.Storage.RedisKeyPrefix)
	return nil
}

func (c *Config) normalizeSync() {
	if c.Sync.OffsetStepMs == 0 {
		c.Sync.OffsetStepMs = defaultOffsetStepMs
	}
	if c.Sync.MaxOffsetEntries == 0 {
		c.Sync.MaxOffsetEntries = defaultMaxOffsetEntries
	}
	if c.Sync.SeekThrottleMs == 0 {
		c.Sync.SeekThrottleMs = defaultSeekThrottleMs
	}
	if c.Sync.TickIntervalMs == 0 {
		c.Sync.TickIntervalMs = defaultTickIntervalMs
	}
	if c.Sync.LookupCacheSize == 0 {
		c.Sync.LookupCacheSize = defaultLookupCacheSize
	}
}

func (c *Config) normalizeExport() error {
	if strings.TrimSpace(c.Export.OutputDir) == "" {
		c.Export.OutputDir = defaultExportDir
	}
	var err error
	if c.Export.OutputDir, err = expandPath(c.Export.OutputDir); err != nil {
		return fmt.Errorf("export.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
