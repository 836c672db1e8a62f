package throttle

import (
	"context"
	"testing"
	"time"
)

func TestDelayer_FirstCallDoesNotBlock(t *testing.T) {
	t.Parallel()

	d := NewDelayer(5 * time.Second)
	slept := time.Duration(0)
	d.sleep = func(_ context.Context, dur time.Duration) error {
		slept += dur
		return nil
	}

	if err := d.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slept != 0 {
		t.Fatalf("expected no sleep on first call, slept %s", slept)
	}
}

func TestDelayer_EnforcesRemainingInterval(t *testing.T) {
	t.Parallel()

	d := NewDelayer(5 * time.Second)

	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	slept := time.Duration(0)
	d.sleep = func(_ context.Context, dur time.Duration) error {
		slept += dur
		now = now.Add(dur)
		return nil
	}

	if err := d.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Two seconds of work happened between fetches.
	now = now.Add(2 * time.Second)

	if err := d.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if slept != 3*time.Second {
		t.Fatalf("expected 3s sleep, got %s", slept)
	}
}

func TestDelayer_NoSleepWhenIntervalElapsed(t *testing.T) {
	t.Parallel()

	d := NewDelayer(time.Second)

	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }
	d.sleep = func(_ context.Context, dur time.Duration) error {
		t.Fatalf("unexpected sleep of %s", dur)
		return nil
	}

	if err := d.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	now = now.Add(2 * time.Second)

	if err := d.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDelayer_PropagatesCancellation(t *testing.T) {
	t.Parallel()

	d := NewDelayer(time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := d.Wait(ctx); err != nil {
		t.Fatalf("first call should not block: %v", err)
	}
	if err := d.Wait(ctx); err == nil {
		t.Fatal("expected context error on throttled call")
	}
}
