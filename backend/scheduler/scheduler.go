// Package scheduler runs periodic housekeeping jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"readquest/backend/utils"

	"github.com/robfig/cron/v3"
)

// DefaultSweepSpec matches the CHALLENGE_SWEEP_SPEC default.
const DefaultSweepSpec = "@hourly"

// ChallengeSweeper switches off challenges whose window has passed.
type ChallengeSweeper interface {
	DeactivateExpired(ctx context.Context) (daily int64, weekly int64, err error)
}

type Scheduler struct {
	cron    *cron.Cron
	sweeper ChallengeSweeper
	log     *utils.Logger
	timeout time.Duration
}

// New registers the challenge sweep on spec, evaluated in loc.
func New(spec string, loc *time.Location, sweeper ChallengeSweeper, log *utils.Logger) (*Scheduler, error) {
	if spec == "" {
		spec = DefaultSweepSpec
	}
	if loc == nil {
		loc = time.UTC
	}
	s := &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		sweeper: sweeper,
		log:     log.With("component", "Scheduler"),
		timeout: time.Minute,
	}
	if _, err := s.cron.AddFunc(spec, s.SweepChallenges); err != nil {
		return nil, fmt.Errorf("invalid sweep schedule %q: %w", spec, err)
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info("scheduler started", "jobs", len(s.cron.Entries()))
}

// Stop waits for running jobs to finish, or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("scheduler stop timed out")
	}
}

func (s *Scheduler) SweepChallenges() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	daily, weekly, err := s.sweeper.DeactivateExpired(ctx)
	if err != nil {
		s.log.Error("challenge sweep failed", "error", err)
		return
	}
	s.log.Info("challenge sweep finished", "daily_deactivated", daily, "weekly_deactivated", weekly)
}
