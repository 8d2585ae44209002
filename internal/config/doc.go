// Package config loads, normalizes, and validates oeplot configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OEPLOT_OUTPUT_DIR and OEPLOT_VIEWER. The Config type centralizes the CSV
// dialect, rendering geometry, viewer command, and logging knobs the CLIs need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical formats, and clear validation errors.
package config
