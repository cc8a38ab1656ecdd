package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"

	"chartsmith/internal/config"
	"chartsmith/internal/history"
	"chartsmith/internal/logging"
	"chartsmith/internal/pipeline"
	"chartsmith/internal/services"
	"chartsmith/internal/services/midich"
	"chartsmith/internal/testsupport"
)

const chartBody = "[Song]\n{\n  Name = \"merged\"\n  Charter = \"midi-ch\"\n}\n"

type fakeSession struct {
	mu      sync.Mutex
	started int
	closed  int
	calls   []string
	convert func(path string) (midich.Result, error)
}

func (f *fakeSession) Start(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.started++
	return nil
}

func (f *fakeSession) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed++
	return nil
}

func (f *fakeSession) Convert(_ context.Context, path string) (midich.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	f.mu.Unlock()
	return f.convert(path)
}

type memoryRecorder struct {
	records []history.Record
}

func (m *memoryRecorder) Record(_ context.Context, rec history.Record) (int64, error) {
	m.records = append(m.records, rec)
	return int64(len(m.records)), nil
}

func zipResult(t *testing.T) midich.Result {
	t.Helper()
	return midich.Result{
		Filename: "merged.zip",
		Data: testsupport.BuildZip(t, []testsupport.ZipEntry{
			{Name: "notes.chart", Body: chartBody},
			{Name: "song.ini", Body: "[song]\nname = merged\ncharter = midi-ch\n"},
		}),
	}
}

func writeInput(t *testing.T, cfg *config.Config, rel string) string {
	t.Helper()
	path := filepath.Join(cfg.Paths.InputDir, filepath.FromSlash(rel))
	testsupport.WriteText(t, path, "MThd\x00\x00\x00\x06"+rel)
	return path
}

func TestRunConvertsSongGroup(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	input := writeInput(t, cfg, "bandA/merged.mid")
	testsupport.WriteText(t, filepath.Join(cfg.Paths.OutputDir, "stale", "old.chart"), "old")

	session := &fakeSession{convert: func(string) (midich.Result, error) { return zipResult(t), nil }}
	recorder := &memoryRecorder{}
	driver := pipeline.New(cfg, session, logging.NewNop(), pipeline.WithRecorder(recorder))

	summary, err := driver.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Converted() != 1 || summary.Failed() != 0 || summary.RunID == "" {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if session.started != 1 || session.closed != 1 {
		t.Fatalf("session started %d closed %d", session.started, session.closed)
	}

	dest := filepath.Join(cfg.Paths.OutputDir, "bandA")
	if got := testsupport.ReadText(t, filepath.Join(dest, "song.ini")); got != "[song]\nname = bandA\ncharter = midi-ch\n" {
		t.Fatalf("song.ini = %q", got)
	}
	if got := testsupport.ReadText(t, filepath.Join(dest, "notes.chart")); got != "[Song]\n{\n  Name = \"bandA\"\n  Charter = \"midi-ch\"\n}\n" {
		t.Fatalf("notes.chart = %q", got)
	}
	original, _ := os.ReadFile(input)
	copied, err := os.ReadFile(filepath.Join(dest, pipeline.NotesFileName))
	if err != nil || !bytes.Equal(original, copied) {
		t.Fatalf("notes.mid should equal input bytes (err %v)", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "stale")); !os.IsNotExist(err) {
		t.Fatalf("stale output should be wiped, stat err %v", err)
	}

	if len(recorder.records) != 1 {
		t.Fatalf("expected one history record, got %d", len(recorder.records))
	}
	rec := recorder.records[0]
	if rec.Status != history.StatusConverted || rec.SongGroup != "bandA" || rec.FilesWritten != 3 || rec.RunID != summary.RunID {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestRunSplitsArtistAndTitle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeInput(t, cfg, "Band - Song/stems/merged.mid")
	session := &fakeSession{convert: func(string) (midich.Result, error) { return zipResult(t), nil }}

	if _, err := pipeline.New(cfg, session, logging.NewNop()).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	ini := testsupport.ReadText(t, filepath.Join(cfg.Paths.OutputDir, "Band - Song", "song.ini"))
	if ini != "[song]\nartist = Band\nname = Song\ncharter = midi-ch\n" {
		t.Fatalf("song.ini = %q", ini)
	}
}

func TestRunSingleFilePayloadUsesFallbackName(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeInput(t, cfg, "solo/merged.mid")
	session := &fakeSession{convert: func(string) (midich.Result, error) {
		return midich.Result{Data: []byte(chartBody)}, nil
	}}

	summary, err := pipeline.New(cfg, session, logging.NewNop()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	dest := filepath.Join(cfg.Paths.OutputDir, "solo")
	want := []string{filepath.Join(dest, "merged.chart"), filepath.Join(dest, pipeline.NotesFileName)}
	if diff := cmp.Diff(want, summary.Results[0].Files); diff != "" {
		t.Fatalf("files mismatch (-want +got):\n%s", diff)
	}
}

func TestRunWithoutInputsFails(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	testsupport.WriteText(t, filepath.Join(cfg.Paths.OutputDir, "leftover.txt"), "x")
	session := &fakeSession{}

	_, err := pipeline.New(cfg, session, logging.NewNop()).Run(context.Background())
	if !errors.Is(err, services.ErrNoInputs) {
		t.Fatalf("expected ErrNoInputs, got %v", err)
	}
	if session.started != 0 {
		t.Fatal("browser must not start without inputs")
	}
	entries, err := os.ReadDir(cfg.Paths.OutputDir)
	if err != nil {
		t.Fatalf("output root should exist: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("output root should be empty, got %d entries", len(entries))
	}
}

func failingFirst(t *testing.T) func(string) (midich.Result, error) {
	return func(path string) (midich.Result, error) {
		if filepath.Base(filepath.Dir(path)) == "bandA" {
			return midich.Result{}, services.Wrap(services.ErrTimeout, "convert", "await save", "", nil)
		}
		return zipResult(t), nil
	}
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeInput(t, cfg, "bandA/merged.mid")
	writeInput(t, cfg, "bandB/merged.mid")
	session := &fakeSession{convert: failingFirst(t)}
	recorder := &memoryRecorder{}

	summary, err := pipeline.New(cfg, session, logging.NewNop(), pipeline.WithRecorder(recorder)).Run(context.Background())
	if !errors.Is(err, services.ErrTimeout) {
		t.Fatalf("expected timeout, got %v", err)
	}
	if len(session.calls) != 1 || summary.Skipped() != 1 || summary.Failed() != 1 {
		t.Fatalf("batch should stop after first failure: calls %v summary %+v", session.calls, summary)
	}
	if session.closed != 1 {
		t.Fatal("session must be closed after a failure")
	}
	if len(recorder.records) != 1 || recorder.records[0].Category != string(services.CategoryTimeout) {
		t.Fatalf("unexpected records %+v", recorder.records)
	}
}

func TestRunContinueOnError(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithContinueOnError(true))
	writeInput(t, cfg, "bandA/merged.mid")
	writeInput(t, cfg, "bandB/merged.mid")
	session := &fakeSession{convert: failingFirst(t)}

	summary, err := pipeline.New(cfg, session, logging.NewNop()).Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Converted() != 1 || summary.Failed() != 1 || summary.Skipped() != 0 {
		t.Fatalf("unexpected summary converted=%d failed=%d skipped=%d", summary.Converted(), summary.Failed(), summary.Skipped())
	}
	if summary.Results[0].Category() != services.CategoryTimeout {
		t.Fatalf("unexpected category %q", summary.Results[0].Category())
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "bandB", "notes.chart")); err != nil {
		t.Fatalf("second input should convert: %v", err)
	}
}

func TestRunStopsWhenCanceled(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeInput(t, cfg, "bandA/merged.mid")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	session := &fakeSession{convert: func(string) (midich.Result, error) { return zipResult(t), nil }}

	_, err := pipeline.New(cfg, session, logging.NewNop()).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if len(session.calls) != 0 || session.closed != 1 {
		t.Fatalf("calls %v closed %d", session.calls, session.closed)
	}
}

func TestRunRefusesConcurrentRun(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	writeInput(t, cfg, "bandA/merged.mid")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	held := flock.New(cfg.LockPath())
	if ok, err := held.TryLock(); err != nil || !ok {
		t.Fatalf("TryLock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock()

	_, err := pipeline.New(cfg, &fakeSession{}, logging.NewNop()).Run(context.Background())
	if !errors.Is(err, pipeline.ErrRunInProgress) {
		t.Fatalf("expected ErrRunInProgress, got %v", err)
	}
}
