// Package config loads, normalizes, and validates lyricsync configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads optional .env files, and honours
// environment fallbacks such as REDIS_URL and LIBSQL_AUTH_TOKEN. The Config
// type centralizes every knob the engine and CLI need: where offsets and
// preferences are persisted, the offset calibration range, seek throttling,
// export defaults, and logging.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical backend names, and clear validation errors.
package config
