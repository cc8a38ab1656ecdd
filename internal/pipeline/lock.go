package pipeline

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"

	"chartsmith/internal/config"
	"chartsmith/internal/services"
)

// ErrRunInProgress reports that another run holds the output root.
var ErrRunInProgress = errors.New("another chartsmith run is in progress")

// acquireLock takes the run lock so two batches never wipe the same output
// root concurrently. The returned func releases it.
func acquireLock(cfg *config.Config) (func(), error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, services.Wrap(services.ErrFilesystem, "prepare", "state directory", "", err)
	}
	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrRunInProgress, cfg.LockPath())
	}
	return func() { _ = lock.Unlock() }, nil
}
