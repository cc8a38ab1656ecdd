package pipeline

import (
	"time"

	"chartsmith/internal/metadata"
	"chartsmith/internal/services"
)

// InputResult is the outcome for one discovered input.
type InputResult struct {
	Input     string
	SongGroup string
	OutputDir string
	Files     []string
	Metadata  metadata.Metadata
	Report    metadata.Report
	Err       error
	Started   time.Time
	Finished  time.Time
}

// Category classifies the input's failure, or "" on success.
func (r InputResult) Category() services.Category {
	return services.Classify(r.Err)
}

// Duration is the time spent on the input.
func (r InputResult) Duration() time.Duration {
	return r.Finished.Sub(r.Started)
}

// Summary describes a finished or aborted run.
type Summary struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Inputs   int
	Results  []InputResult
}

// Converted counts inputs that produced a chart package.
func (s Summary) Converted() int {
	n := 0
	for _, r := range s.Results {
		if r.Err == nil {
			n++
		}
	}
	return n
}

// Failed counts inputs that errored.
func (s Summary) Failed() int {
	return len(s.Results) - s.Converted()
}

// Skipped counts inputs never attempted because the run stopped early.
func (s Summary) Skipped() int {
	return s.Inputs - len(s.Results)
}

// MetadataWarnings counts inputs whose descriptor patching failed.
func (s Summary) MetadataWarnings() int {
	n := 0
	for _, r := range s.Results {
		if r.Report.Failed() {
			n++
		}
	}
	return n
}
