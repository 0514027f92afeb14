package config

const (
	defaultDataDir          = "~/.local/share/lyricsync"
	defaultLogDir           = "~/.local/share/lyricsync/logs"
	defaultExportDir        = "~/Music/lyricsync"
	defaultStorageBackend   = BackendFile
	defaultStateFileName    = "state.json"
	defaultSQLiteFileName   = "lyricsync.db"
	defaultRedisKeyPrefix   = ""
	defaultOffsetMinMs      = -2000
	defaultOffsetMaxMs      = 2000
	defaultOffsetStepMs     = 50
	defaultMaxOffsetEntries = 50
	defaultSeekThrottleMs   = 200
	defaultTickIntervalMs   = 250
	defaultLookupCacheSize  = 256
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Storage: Storage{
			Backend:        defaultStorageBackend,
			RedisKeyPrefix: defaultRedisKeyPrefix,
		},
		Sync: Sync{
			OffsetMinMs:      defaultOffsetMinMs,
			OffsetMaxMs:      defaultOffsetMaxMs,
			OffsetStepMs:     defaultOffsetStepMs,
			MaxOffsetEntries: defaultMaxOffsetEntries,
			SeekThrottleMs:   defaultSeekThrottleMs,
			TickIntervalMs:   defaultTickIntervalMs,
			LookupCacheSize:  defaultLookupCacheSize,
		},
		Export: Export{
			OutputDir: defaultExportDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
