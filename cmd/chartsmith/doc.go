// Package main hosts the chartsmith CLI entrypoint and command graph.
//
// Running chartsmith with no subcommand, or "chartsmith run", performs one
// conversion batch. "doctor" checks the environment, "history" lists earlier
// conversions and "config" scaffolds or validates the TOML file. The
// persistent --input, --output and --midi-ch-root flags override the
// environment and the config file.
//
// Keep this package lean: behaviour lives in internal/pipeline and its
// collaborators; commands here only resolve configuration and render output.
package main
