package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// maxSessionAge is how long a trial session may run before the reaper
// cancels it.
const maxSessionAge = 2 * time.Hour

// SessionReaper drops finished sessions and cancels stale ones
type SessionReaper interface {
	Reap(maxAge time.Duration) int
}

// Scheduler handles periodic background jobs for the simulation service
type Scheduler struct {
	cron   *cron.Cron
	reaper SessionReaper
}

// New creates a new scheduler instance
func New(reaper SessionReaper) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		reaper: reaper,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	_, err := s.cron.AddFunc("@every 1m", s.reapSessions)
	if err != nil {
		zap.S().With(err).Error("failed to register session reaper job")
		return
	}
	s.cron.Start()
	zap.S().Info("session reaper scheduler started")
}

// Stop halts the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) reapSessions() {
	if n := s.reaper.Reap(maxSessionAge); n > 0 {
		zap.S().Infow("reaped trial sessions", "count", n)
	}
}
