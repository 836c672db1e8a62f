package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/voetbalpool/voetbalpool/internal/platform/logging"
	"github.com/voetbalpool/voetbalpool/internal/usecase"
)

// Runner is the unit of scheduled work, one full pipeline pass.
type Runner interface {
	Run(ctx context.Context) error
}

// Scheduler triggers pipeline runs at a fixed interval. An integrity
// rejection leaves the previous snapshot in place, so the next tick simply
// tries again.
type Scheduler struct {
	s        gocron.Scheduler
	runner   Runner
	interval time.Duration
	logger   *logging.Logger
}

func New(runner Runner, interval time.Duration, logger *logging.Logger) (*Scheduler, error) {
	if runner == nil {
		return nil, fmt.Errorf("scheduler: runner is required")
	}
	if interval <= 0 {
		return nil, fmt.Errorf("scheduler: interval must be > 0")
	}
	if logger == nil {
		logger = logging.Default()
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:        s,
		runner:   runner,
		interval: interval,
		logger:   logger,
	}, nil
}

func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.s.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() { s.runOnce(ctx) }),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create update job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if err := s.runner.Run(ctx); err != nil {
		if errors.Is(err, usecase.ErrIntegrity) {
			s.logger.ErrorContext(ctx, "run rejected, previous snapshot kept", "error", err)
			return
		}
		s.logger.ErrorContext(ctx, "scheduled run failed", "error", err)
		return
	}
	s.logger.InfoContext(ctx, "scheduled run succeeded")
}
