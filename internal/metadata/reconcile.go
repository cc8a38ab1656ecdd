package metadata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"chartsmith/internal/logging"
)

// Descriptor files patched inside each song directory.
const (
	INIFileName   = "song.ini"
	ChartFileName = "notes.chart"
)

// Outcome describes what happened to one descriptor file.
type Outcome string

const (
	OutcomeSkipped   Outcome = "skipped"
	OutcomeAbsent    Outcome = "absent"
	OutcomeUnchanged Outcome = "unchanged"
	OutcomeUpdated   Outcome = "updated"
	OutcomeFailed    Outcome = "failed"
)

// FileResult reports the outcome for one descriptor file.
type FileResult struct {
	Path    string
	Outcome Outcome
	Err     error
}

// Report collects both descriptor outcomes for a song directory.
type Report struct {
	INI   FileResult
	Chart FileResult
}

// Failed reports whether either descriptor could not be updated.
func (r Report) Failed() bool {
	return r.INI.Outcome == OutcomeFailed || r.Chart.Outcome == OutcomeFailed
}

// Apply writes meta into song.ini and notes.chart under dir. The two files
// are patched concurrently and independently. A missing file is not an
// error; any other failure is logged as a warning and reported, never
// returned.
func Apply(ctx context.Context, dir string, meta Metadata, logger *slog.Logger) Report {
	iniPath := filepath.Join(dir, INIFileName)
	chartPath := filepath.Join(dir, ChartFileName)
	if meta.Empty() {
		return Report{
			INI:   FileResult{Path: iniPath, Outcome: OutcomeSkipped},
			Chart: FileResult{Path: chartPath, Outcome: OutcomeSkipped},
		}
	}

	var report Report
	var g errgroup.Group
	g.Go(func() error {
		report.INI = patchFile(ctx, iniPath, func(content string) string {
			content = SetINIValue(content, INIKeyName, meta.Title)
			return SetINIValue(content, INIKeyArtist, meta.Artist)
		})
		return nil
	})
	g.Go(func() error {
		report.Chart = patchFile(ctx, chartPath, func(content string) string {
			return UpdateChartMetadata(content, meta.Artist, meta.Title)
		})
		return nil
	})
	_ = g.Wait()

	for _, res := range []FileResult{report.INI, report.Chart} {
		if res.Outcome != OutcomeFailed {
			continue
		}
		logging.WarnWithContext(logger, "descriptor metadata not updated", "metadata_update_failed",
			logging.String("path", res.Path),
			logging.Error(res.Err),
			logging.String(logging.FieldErrorHint, "check permissions on the song directory"),
			logging.String(logging.FieldImpact, "song keeps the converter's default title and artist"),
		)
	}
	return report
}

func patchFile(ctx context.Context, path string, patch func(string) string) FileResult {
	result := FileResult{Path: path}
	if err := ctx.Err(); err != nil {
		result.Outcome, result.Err = OutcomeFailed, err
		return result
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		result.Outcome = OutcomeAbsent
		return result
	}
	if err != nil {
		result.Outcome, result.Err = OutcomeFailed, fmt.Errorf("read %s: %w", filepath.Base(path), err)
		return result
	}

	original := string(data)
	updated := patch(original)
	if updated == original {
		result.Outcome = OutcomeUnchanged
		return result
	}
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		result.Outcome, result.Err = OutcomeFailed, fmt.Errorf("write %s: %w", filepath.Base(path), err)
		return result
	}
	result.Outcome = OutcomeUpdated
	return result
}
