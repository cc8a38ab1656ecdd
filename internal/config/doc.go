// Package config loads, normalizes, and validates chartsmith configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the INPUT_DIR, OUTPUT_DIR and
// MIDI_CH_ROOT environment variables. Command-line values are layered on top
// through ApplyOverrides, giving the precedence flag > environment > file >
// default.
//
// Validation refuses layouts where wiping the output root would also remove
// the input tree or the state directory.
package config
