package services

import "context"

type contextKey string

const (
	runIDKey     contextKey = "run_id"
	songGroupKey contextKey = "song_group"
	stageKey     contextKey = "stage"
	inputKey     contextKey = "input"
)

// WithRunID annotates context with the batch run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the batch run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(runIDKey).(string)
	return v, ok && v != ""
}

// WithSongGroup annotates context with the song group being produced.
func WithSongGroup(ctx context.Context, group string) context.Context {
	if group == "" {
		return ctx
	}
	return context.WithValue(ctx, songGroupKey, group)
}

// SongGroupFromContext returns the song group if present.
func SongGroupFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(songGroupKey).(string)
	return v, ok && v != ""
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(stageKey).(string)
	return v, ok && v != ""
}

// WithInput annotates context with the input file path.
func WithInput(ctx context.Context, path string) context.Context {
	if path == "" {
		return ctx
	}
	return context.WithValue(ctx, inputKey, path)
}

// InputFromContext returns the input file path if present.
func InputFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(inputKey).(string)
	return v, ok && v != ""
}
