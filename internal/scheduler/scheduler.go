// Package scheduler is the companion poll loop: it asks Silhouette for
// recent events on a fixed interval, dispatches pending work (dry-run
// by default), and keeps simple attempt counters in a local file. It
// runs single-threaded and shares nothing with the chat path beyond
// the Silhouette client.
package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/shroudhq/shroud/internal/silhouette"
)

const pollWindow = 50

// eventScheduled marks jobs still waiting on the Silhouette side.
const eventScheduled = "post.scheduled"

type Scheduler struct {
	Silhouette silhouette.Client
	Store      *CounterStore
	Metrics    *Metrics
	Logger     zerolog.Logger

	Interval time.Duration
	Once     bool
	DryRun   bool
}

// Run executes cycles until ctx is cancelled (or after one cycle in
// Once mode). A failing cycle is recorded and logged, never fatal.
func (s *Scheduler) Run(ctx context.Context) error {
	counters, err := s.Store.Load()
	if err != nil {
		s.Logger.Warn().Err(err).Msg("could not load counters, starting from zero")
		counters = Counters{}
	}

	s.Logger.Info().
		Dur("interval", s.Interval).
		Bool("dry_run", s.DryRun).
		Bool("once", s.Once).
		Msg("scheduler starting")

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		s.cycle(ctx, &counters)
		if s.Once {
			return nil
		}
		select {
		case <-ctx.Done():
			s.Logger.Info().Msg("scheduler stopping")
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Ping probes Silhouette once without touching the counters.
func (s *Scheduler) Ping(ctx context.Context) error {
	_, err := s.Silhouette.Events(ctx, 0, 1)
	return err
}

func (s *Scheduler) cycle(ctx context.Context, counters *Counters) {
	var sw Stopwatch
	sw.Start()

	page, err := s.Silhouette.Events(ctx, 0, pollWindow)
	took := sw.Stop()

	if err != nil {
		counters.Observe(false, took)
		s.Metrics.Attempts.WithLabelValues("failure").Inc()
		s.Logger.Error().Err(err).Msg("queue poll failed")
	} else {
		pending := 0
		for _, ev := range page.Events {
			if ev.Type != eventScheduled {
				continue
			}
			pending++
			if s.DryRun {
				s.Logger.Info().Str("job_id", ev.ID).Msg("[dry run] would dispatch job")
			} else {
				s.Logger.Info().Str("job_id", ev.ID).Msg("dispatching job")
			}
		}
		counters.Observe(true, took)
		s.Metrics.Attempts.WithLabelValues("success").Inc()
		s.Logger.Info().
			Int("pending", pending).
			Dur("took", took).
			Msg("cycle complete")
	}

	s.Metrics.CycleDuration.Observe(took.Seconds())
	if err := s.Store.Save(*counters); err != nil {
		s.Logger.Warn().Err(err).Msg("failed to save counters")
	}
}
