package throttle

import (
	"context"
	"time"
)

// Delayer enforces a minimum spacing between consecutive outbound requests.
// The clock and sleeper are injectable so tests run without wall-clock waits.
type Delayer struct {
	interval time.Duration
	last     time.Time
	now      func() time.Time
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewDelayer(interval time.Duration) *Delayer {
	if interval < 0 {
		interval = 0
	}
	return &Delayer{
		interval: interval,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Wait blocks until at least the configured interval has passed since the
// previous Wait returned. The first call never blocks.
func (d *Delayer) Wait(ctx context.Context) error {
	if d == nil {
		return nil
	}

	now := d.now()
	if !d.last.IsZero() && d.interval > 0 {
		remaining := d.interval - now.Sub(d.last)
		if remaining > 0 {
			if err := d.sleep(ctx, remaining); err != nil {
				return err
			}
		}
	}

	d.last = d.now()
	return nil
}

func (d *Delayer) Interval() time.Duration {
	if d == nil {
		return 0
	}
	return d.interval
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
