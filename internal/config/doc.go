// Package config loads, normalizes, and validates moviekit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MOVIEKIT_FFMPEG and OPENROUTER_API_KEY. Validation produces a per-key report
// so the CLI can show exactly which setting is wrong before exiting.
package config
