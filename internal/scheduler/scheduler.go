package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"temperature-dashboard/internal/repositories"
	"temperature-dashboard/pkg/logger"
)

const (
	defaultInterval = 5 * time.Minute
	sweepTimeout    = 30 * time.Second
)

// Sweeper periodically removes expired dashboard sessions.
type Sweeper struct {
	scheduler *gocron.Scheduler
	sessions  repositories.SessionRepository
	interval  time.Duration
	l         *logger.Logger
}

func NewSweeper(sessions repositories.SessionRepository, interval time.Duration, l *logger.Logger) *Sweeper {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Sweeper{
		scheduler: gocron.NewScheduler(time.UTC),
		sessions:  sessions,
		interval:  interval,
		l:         l,
	}
}

// Start schedules the sweep job and starts the scheduler in the background.
func (s *Sweeper) Start() error {
	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.Sweep)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Sweep runs one pass over the session store.
func (s *Sweeper) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	removed, err := s.sessions.Sweep(ctx)
	if err != nil {
		s.l.Error(err, map[string]any{"job": "session-sweep"})
		return
	}
	if removed > 0 {
		s.l.Info("expired sessions removed", map[string]any{"removed": removed})
	}
}

func (s *Sweeper) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
