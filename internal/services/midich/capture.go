package midich

import (
	"context"
	"sync"
	"time"

	"chartsmith/internal/services"
)

type saved struct {
	res Result
	err error
}

// capture holds the first save a converter page delivers. Later saves from
// the same page are dropped.
type capture struct {
	once   sync.Once
	result chan saved
}

func newCapture() *capture {
	return &capture{result: make(chan saved, 1)}
}

// offer records the save outcome if nothing was captured yet and reports
// whether it was accepted.
func (c *capture) offer(res Result, err error) bool {
	accepted := false
	c.once.Do(func() {
		c.result <- saved{res: res, err: err}
		accepted = true
	})
	return accepted
}

// wait blocks until a save arrives, the deadline passes or ctx ends.
func (c *capture) wait(ctx context.Context, deadline time.Time) (Result, error) {
	timer := time.NewTimer(time.Until(deadline))
	defer timer.Stop()
	select {
	case s := <-c.result:
		if s.err != nil {
			return Result{}, services.Wrap(services.ErrExternalTool, "convert", "capture save", "", s.err)
		}
		return s.res, nil
	case <-timer.C:
		return Result{}, services.Wrap(services.ErrTimeout, "convert", "await save", "converter did not produce a chart before the deadline", nil)
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}
