// SPDX-License-Identifier: GPL-3.0-only

package recalls

import (
	"context"
	"recallguard-server/commons"
	"strconv"
	"time"
)

// Scheduler fires the ingestion job once per day at a fixed wall-clock
// time in the configured timezone. Ticks are not reentrant; the daily
// period is assumed to exceed worst-case run time.
type Scheduler struct {
	Job      *Job
	Hour     int
	Minute   int
	Location *time.Location
}

func NewScheduler(job *Job) *Scheduler {
	hour := envInt("RECALL_HOUR", 3)
	minute := envInt("RECALL_MINUTE", 51)
	return &Scheduler{
		Job:      job,
		Hour:     hour,
		Minute:   minute,
		Location: job.Location,
	}
}

func envInt(key string, fallback int) int {
	if v := commons.GetEnv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			return i
		}
	}
	return fallback
}

// NextRun returns the next scheduled fire time strictly after the
// given instant.
func (s *Scheduler) NextRun(after time.Time) time.Time {
	t := after.In(s.Location)
	next := time.Date(t.Year(), t.Month(), t.Day(), s.Hour, s.Minute, 0, 0, s.Location)
	if !next.After(t) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// Start blocks until the context is cancelled, running one ingestion
// tick per scheduled fire time.
func (s *Scheduler) Start(ctx context.Context) {
	commons.Logger.Infof("Recall scheduler started, firing daily at %02d:%02d %s",
		s.Hour, s.Minute, s.Location.String())

	for {
		next := s.NextRun(time.Now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-ctx.Done():
			timer.Stop()
			commons.Logger.Info("Recall scheduler stopped")
			return
		case now := <-timer.C:
			if err := s.Job.RunTick(ctx, now); err != nil {
				commons.Logger.Errorf("Recall ingestion tick failed: %v", err)
			}
		}
	}
}
