package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/voxlate/voxlate/internal/domain/user"
	"github.com/voxlate/voxlate/internal/pkg/logger"
)

// SessionSweeper periodically clears voice sessions whose window elapsed
// without a read touching them. Reads already collapse expired sessions
// lazily, so the sweep is storage hygiene, not a correctness mechanism.
type SessionSweeper struct {
	repo     user.Repository
	schedule string
	logger   *logger.Logger
	cron     *cron.Cron
}

// NewSessionSweeper creates a new session sweeper worker
func NewSessionSweeper(repo user.Repository, schedule string, log *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		repo:     repo,
		schedule: schedule,
		logger:   log,
		cron:     cron.New(),
	}
}

// Start schedules the sweep and begins running it
func (s *SessionSweeper) Start(ctx context.Context) error {
	s.logger.WithFields(map[string]interface{}{
		"schedule": s.schedule,
	}).Info("Starting session sweeper worker")

	if _, err := s.cron.AddFunc(s.schedule, func() { s.sweep(ctx) }); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish
func (s *SessionSweeper) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("Session sweeper worker stopped")
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	n, err := s.repo.ClearExpiredSessions(ctx, time.Now())
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to sweep expired voice sessions")
		return
	}
	if n > 0 {
		s.logger.WithFields(map[string]interface{}{
			"cleared": n,
		}).Info("Swept expired voice sessions")
	}
}
