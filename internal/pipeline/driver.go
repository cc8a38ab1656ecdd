package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"chartsmith/internal/config"
	"chartsmith/internal/discovery"
	"chartsmith/internal/fileutil"
	"chartsmith/internal/history"
	"chartsmith/internal/logging"
	"chartsmith/internal/materialize"
	"chartsmith/internal/metadata"
	"chartsmith/internal/services"
	"chartsmith/internal/services/midich"
)

// NotesFileName is the name the original input is copied to inside each
// song directory.
const NotesFileName = "notes.mid"

// Session is a converter whose browser is started once per run.
type Session interface {
	midich.Converter
	Start(ctx context.Context) error
	Close() error
}

// Recorder persists per-input outcomes.
type Recorder interface {
	Record(ctx context.Context, rec history.Record) (int64, error)
}

// Option configures a Driver.
type Option func(*Driver)

// WithRecorder stores every input outcome in r.
func WithRecorder(r Recorder) Option {
	return func(d *Driver) {
		d.recorder = r
	}
}

// WithClock replaces time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(d *Driver) {
		if now != nil {
			d.now = now
		}
	}
}

// Driver runs one conversion batch end to end.
type Driver struct {
	cfg      *config.Config
	session  Session
	recorder Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// New constructs a Driver.
func New(cfg *config.Config, session Session, logger *slog.Logger, opts ...Option) *Driver {
	d := &Driver{
		cfg:     cfg,
		session: session,
		logger:  logging.NewComponentLogger(logger, "pipeline"),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run wipes the output root, converts every discovered input in order and
// always closes the browser session before returning. The first failing
// input aborts the batch unless run.continue_on_error is set, in which case
// failures are only reported in the Summary.
func (d *Driver) Run(ctx context.Context) (summary Summary, err error) {
	summary = Summary{RunID: uuid.NewString(), Started: d.now()}
	defer func() { summary.Finished = d.now() }()

	ctx = services.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, d.logger)

	unlock, err := acquireLock(d.cfg)
	if err != nil {
		return summary, err
	}
	defer unlock()

	if err := fileutil.ResetDir(d.cfg.Paths.OutputDir); err != nil {
		return summary, services.Wrap(services.ErrFilesystem, "prepare", "reset output", "", err)
	}

	inputs, err := discovery.Find(d.cfg.Paths.InputDir)
	if err != nil {
		return summary, services.Wrap(services.ErrFilesystem, "discover", "walk input", d.cfg.Paths.InputDir, err)
	}
	summary.Inputs = len(inputs)
	if len(inputs) == 0 {
		return summary, services.Wrap(services.ErrNoInputs, "discover", "", fmt.Sprintf("no %s files found under %s", discovery.TargetName, d.cfg.Paths.InputDir), nil)
	}
	logger.Info("inputs discovered",
		logging.String(logging.FieldEventType, "inputs_discovered"),
		logging.Int("count", len(inputs)),
		logging.String("input_dir", d.cfg.Paths.InputDir),
	)

	if err := d.session.Start(ctx); err != nil {
		return summary, err
	}
	defer func() {
		if closeErr := d.session.Close(); closeErr != nil {
			logging.WarnWithContext(logger, "browser session did not close cleanly", "browser_close_failed",
				logging.Error(closeErr),
				logging.String(logging.FieldErrorHint, "check for leftover chrome processes"),
				logging.String(logging.FieldImpact, "a chrome process may outlive the run"),
			)
		}
	}()

	for i, input := range inputs {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return summary, ctxErr
		}
		result := d.processInput(ctx, input)
		summary.Results = append(summary.Results, result)
		d.record(ctx, summary.RunID, result)

		if result.Err == nil {
			continue
		}
		if errors.Is(result.Err, context.Canceled) {
			return summary, result.Err
		}
		if !d.cfg.Run.ContinueOnError {
			logging.ErrorWithContext(logging.WithContext(services.WithSongGroup(ctx, result.SongGroup), d.logger),
				"input failed; aborting batch", "batch_aborted",
				logging.Error(result.Err),
				logging.String("category", string(result.Category())),
				logging.Int("skipped", len(inputs)-i-1),
				logging.String(logging.FieldErrorHint, "set run.continue_on_error = true to keep going past failures"),
			)
			return summary, result.Err
		}
		logging.WarnWithContext(logging.WithContext(services.WithSongGroup(ctx, result.SongGroup), d.logger),
			"input failed; continuing with next", "input_failed",
			logging.Error(result.Err),
			logging.String("category", string(result.Category())),
			logging.Int("remaining", len(inputs)-i-1),
			logging.String(logging.FieldErrorHint, "inspect the error and rerun once fixed"),
			logging.String(logging.FieldImpact, "song group is missing from the output"),
		)
	}

	logger.Info("batch complete",
		logging.String(logging.FieldEventType, "batch_complete"),
		logging.Int("converted", summary.Converted()),
		logging.Int("failed", summary.Failed()),
	)
	return summary, nil
}

// processInput runs convert, materialize, copy and metadata for one input.
func (d *Driver) processInput(ctx context.Context, input string) (result InputResult) {
	group := discovery.GroupName(d.cfg.Paths.InputDir, input)
	dest := filepath.Join(d.cfg.Paths.OutputDir, group)
	result = InputResult{
		Input:     input,
		SongGroup: group,
		OutputDir: dest,
		Started:   d.now(),
	}
	defer func() { result.Finished = d.now() }()

	ctx = services.WithSongGroup(ctx, group)
	ctx = services.WithInput(ctx, input)
	logger := logging.WithContext(ctx, d.logger)
	logger.Info("processing input", logging.String("destination", dest))

	if err := os.MkdirAll(dest, 0o755); err != nil {
		result.Err = services.Wrap(services.ErrFilesystem, "materialize", "create destination", dest, err)
		return result
	}

	saved, err := d.session.Convert(services.WithStage(ctx, "convert"), input)
	if err != nil {
		result.Err = err
		return result
	}
	logger.Debug("converter saved payload",
		logging.String("file", saved.Filename),
		logging.Int("bytes", len(saved.Data)),
	)

	fallback := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	files, err := materialize.Materialize(saved.Filename, saved.Data, dest, fallback)
	result.Files = files
	if err != nil {
		result.Err = services.Wrap(services.ErrFilesystem, "materialize", "write payload", saved.Filename, err)
		return result
	}

	notes := filepath.Join(dest, NotesFileName)
	if err := fileutil.CopyFileVerified(input, notes); err != nil {
		result.Err = services.Wrap(services.ErrFilesystem, "materialize", "copy input", notes, err)
		return result
	}
	result.Files = append(result.Files, notes)

	result.Metadata = metadata.Derive(group, d.cfg.Metadata.Separator)
	result.Report = metadata.Apply(services.WithStage(ctx, "metadata"), dest, result.Metadata, logger)

	logger.Info("converted",
		logging.String(logging.FieldEventType, "input_converted"),
		logging.Int("files", len(result.Files)),
		logging.String("artist", result.Metadata.Artist),
		logging.String("title", result.Metadata.Title),
	)
	return result
}

func (d *Driver) record(ctx context.Context, runID string, result InputResult) {
	if d.recorder == nil {
		return
	}
	rec := history.Record{
		RunID:        runID,
		SongGroup:    result.SongGroup,
		InputPath:    result.Input,
		OutputDir:    result.OutputDir,
		Status:       history.StatusConverted,
		Artist:       result.Metadata.Artist,
		Title:        result.Metadata.Title,
		FilesWritten: len(result.Files),
		StartedAt:    result.Started,
		FinishedAt:   result.Finished,
	}
	if result.Err != nil {
		rec.Status = history.StatusFailed
		rec.Category = string(result.Category())
		rec.ErrorMessage = result.Err.Error()
	}
	if _, err := d.recorder.Record(context.WithoutCancel(ctx), rec); err != nil {
		logging.WarnWithContext(d.logger, "history record not saved", "history_write_failed",
			logging.Error(err),
			logging.String(logging.FieldSongGroup, result.SongGroup),
			logging.String(logging.FieldImpact, "chartsmith history will not list this input"),
		)
	}
}
