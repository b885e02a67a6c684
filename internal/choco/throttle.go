package choco

import (
	"context"
	"math/rand/v2"
	"time"

	"rahmet_export/internal/config"
)

// Throttle holds the fixed pauses inserted between upstream calls. They only
// keep the run under the upstream rate limiter.
type Throttle struct {
	ListPause     time.Duration
	CustomerPause time.Duration
	PagePause     time.Duration
	BranchPause   time.Duration
	JitterMin     time.Duration
	JitterMax     time.Duration
	JitterEvery   int

	sleep func(context.Context, time.Duration) error
}

func NewThrottle(cfg config.Config) Throttle {
	return Throttle{
		ListPause:     cfg.ListPause,
		CustomerPause: cfg.CustomerPause,
		PagePause:     cfg.PagePause,
		BranchPause:   cfg.BranchPause,
		JitterMin:     cfg.BranchJitterMin,
		JitterMax:     cfg.BranchJitterMax,
		JitterEvery:   cfg.BranchJitterEvery,
	}
}

// BranchDelay is the pause after the done-th branch record: the fixed
// BranchPause, except every JitterEvery-th record gets a random pause in
// [JitterMin, JitterMax].
func (t Throttle) BranchDelay(done int) time.Duration {
	if t.JitterEvery > 0 && done > 0 && done%t.JitterEvery == 0 {
		return t.jitter()
	}
	return t.BranchPause
}

func (t Throttle) jitter() time.Duration {
	if t.JitterMax <= t.JitterMin {
		return t.JitterMin
	}
	return t.JitterMin + rand.N(t.JitterMax-t.JitterMin+1)
}

func (t Throttle) wait(ctx context.Context, d time.Duration) error {
	if t.sleep != nil {
		return t.sleep(ctx, d)
	}
	return sleepContext(ctx, d)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
