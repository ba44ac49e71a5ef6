package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// SessionPurger deletes expired sessions from the session store.
type SessionPurger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron          *cron.Cron
	sessions      SessionPurger
	purgeSchedule string
	log           zerolog.Logger
}

// NewScheduler expects six-field cron expressions (with seconds).
func NewScheduler(sessions SessionPurger, purgeSchedule string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithSeconds()),
		sessions:      sessions,
		purgeSchedule: purgeSchedule,
		log:           log,
	}
}

func (s *Scheduler) Start() error {
	if s.purgeSchedule == "" {
		return nil
	}

	if _, err := s.cron.AddFunc(s.purgeSchedule, s.PurgeSessions); err != nil {
		return err
	}

	s.cron.Start()
	s.log.Info().Str("schedule", s.purgeSchedule).Msg("session purge scheduled")
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) PurgeSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := s.sessions.PurgeExpired(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("purge expired sessions failed")
		return
	}
	if purged > 0 {
		s.log.Info().Int64("purged", purged).Msg("expired sessions purged")
	}
}
