// Interval shell around the cycle runner. The runner exposes a single entry
// point; this wraps it in a cron schedule where an overrunning cycle causes
// the next tick to be skipped rather than stacked.

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Cycle is the pipeline's single externally-invoked entry point.
type Cycle interface {
	RunOneCycle(ctx context.Context) error
}

type Scheduler struct {
	cron     *cron.Cron
	interval time.Duration
	cycle    Cycle
	log      *zap.SugaredLogger
}

func New(intervalMinutes int, cycle Cycle, log *zap.SugaredLogger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		interval: time.Duration(intervalMinutes) * time.Minute,
		cycle:    cycle,
		log:      log,
	}
}

// Run executes one cycle immediately, then on every interval tick until ctx
// is cancelled. A failed cycle is logged and retried on the next tick, never
// immediately.
func (s *Scheduler) Run(ctx context.Context) error {
	s.runCycle(ctx)

	spec := fmt.Sprintf("@every %s", s.interval)
	if _, err := s.cron.AddFunc(spec, func() { s.runCycle(ctx) }); err != nil {
		return fmt.Errorf("could not schedule cycle: %w", err)
	}

	s.log.Infow("scheduler started", "interval", s.interval)
	s.cron.Start()

	<-ctx.Done()
	stopCtx := s.cron.Stop()
	// Let an in-flight cycle observe the cancellation and finish its posting.
	<-stopCtx.Done()
	s.log.Info("scheduler stopped")
	return nil
}

func (s *Scheduler) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	s.log.Info("cycle starting")
	if err := s.cycle.RunOneCycle(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.log.Errorw("cycle failed, retrying on next tick", "error", err)
	}
}
