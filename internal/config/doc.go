// Package config loads, normalizes, and validates simradio configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts),
// reads TOML files, loads .env files and honours environment fallbacks such
// as FFMPEG_PATH. The Config type centralizes every knob the CLI needs so
// catalog, source and output locations are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// absolute paths, canonical log formats, and clear validation errors.
package config
