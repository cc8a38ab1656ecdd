// Package logging assembles structured slog loggers used across chartsmith.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so pipeline code can tag log
// lines with the run ID, song group, stage, and input file. The console
// handler lifts the song group and component into a fixed prefix so a batch
// log reads one song at a time.
package logging
