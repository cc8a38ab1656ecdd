package history

import "time"

// Status is the final state of one input in a run.
type Status string

const (
	StatusConverted Status = "converted"
	StatusFailed    Status = "failed"
)

// Record is one row of the conversion ledger.
type Record struct {
	ID           int64
	RunID        string
	SongGroup    string
	InputPath    string
	OutputDir    string
	Status       Status
	Category     string
	ErrorMessage string
	Artist       string
	Title        string
	FilesWritten int
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Duration is the wall time spent on the input.
func (r Record) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
