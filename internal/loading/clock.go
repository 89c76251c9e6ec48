package loading

import (
	"context"
	"time"
)

// Clock suspends the exhaust loop between scrolls.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock sleeps on a timer and wakes early if ctx ends.
type RealClock struct{}

// Sleep implements Clock.
func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
