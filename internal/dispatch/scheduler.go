package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const runTimeout = 10 * time.Minute

type Scheduler struct {
	cron *cron.Cron
	loc  *time.Location
	d    *Dispatcher
	log  *slog.Logger
	base context.Context
}

// NewScheduler runs d on a standard five field cron expression evaluated in
// the named time zone.
func NewScheduler(d *Dispatcher, spec, timezone string, log *slog.Logger) (*Scheduler, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", timezone, err)
	}
	s := &Scheduler{cron: cron.New(cron.WithLocation(loc)), loc: loc, d: d, log: log, base: context.Background()}
	if _, err := s.cron.AddFunc(spec, s.tick); err != nil {
		return nil, fmt.Errorf("schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) tick() {
	ctx, cancel := context.WithTimeout(s.base, runTimeout)
	defer cancel()
	if _, err := s.d.Run(ctx); err != nil {
		s.log.Error("reminder run failed", "err", err)
	}
}

// Next is the next scheduled run after now, in the scheduler's zone.
func (s *Scheduler) Next() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Schedule.Next(time.Now().In(s.loc))
}

// Run blocks until ctx is done, then waits for a running tick to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.base = ctx
	s.cron.Start()
	s.log.Info("reminder scheduler started", "next", s.Next())
	<-ctx.Done()
	<-s.cron.Stop().Done()
	s.log.Info("reminder scheduler stopped")
}
