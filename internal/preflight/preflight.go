package preflight

import (
	"path/filepath"

	"chartsmith/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every check a conversion run depends on.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{
		CheckReadableDirectory("Input directory", cfg.Paths.InputDir),
		CheckCreatableDirectory("Output directory", cfg.Paths.OutputDir),
		CheckCreatableDirectory("State directory", cfg.Paths.StateDir),
		CheckConverterEntry(cfg),
		CheckBrowser(cfg),
	}
	if cfg.History.Enabled {
		if dir := filepath.Dir(cfg.HistoryPath()); dir != cfg.Paths.StateDir {
			results = append(results, CheckCreatableDirectory("History directory", dir))
		}
	}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckCreatableDirectory("Log directory", cfg.Paths.LogDir))
	}
	return results
}

// Failed reports whether any check did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
