package reconciler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hostfission/dnset/pkg/log"
	"github.com/hostfission/dnset/pkg/metrics"
	"github.com/hostfission/dnset/pkg/types"
	"github.com/hostfission/dnset/pkg/walker"
)

// Runner executes full reconciliation passes, either once or on a
// fixed interval. Passes are strictly sequential; one finishes before
// the next starts.
type Runner struct {
	walker     *walker.Walker
	reconciler *Reconciler
	interval   time.Duration
	stopCh     chan struct{}
}

// NewRunner creates a runner over the given walker and reconciler
func NewRunner(w *walker.Walker, r *Reconciler, interval time.Duration) *Runner {
	return &Runner{
		walker:     w,
		reconciler: r,
		interval:   interval,
		stopCh:     make(chan struct{}),
	}
}

// RunOnce performs one full pass over every scope and returns the
// aggregate report. Per-set problems are already handled inside the
// reconciler, so the pass itself cannot fail.
func (r *Runner) RunOnce(ctx context.Context) types.RunReport {
	runID := uuid.New().String()
	logger := log.WithRunID(runID)

	timer := metrics.NewTimer()
	defer func() {
		timer.ObserveDuration(metrics.RunDuration)
		metrics.RunsTotal.Inc()
		metrics.MarkRun()
	}()

	logger.Info().Msg("reconciliation pass started")

	var report types.RunReport
	r.walker.Walk(ctx, func(ref types.ScopeRef, set types.IPSet) {
		report.Add(r.reconciler.ReconcileSet(ctx, ref, set))
	})

	logger.Info().
		Int("sets", report.Sets).
		Int("skipped", report.Skipped).
		Int("applied", report.Applied).
		Int("failures", report.Failures).
		Dur("duration", timer.Duration()).
		Msg("reconciliation pass finished")

	return report
}

// Start begins the periodic loop. The first pass runs immediately.
func (r *Runner) Start(ctx context.Context) {
	go r.run(ctx)
}

// Stop stops the periodic loop
func (r *Runner) Stop() {
	close(r.stopCh)
}

func (r *Runner) run(ctx context.Context) {
	r.RunOnce(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.RunOnce(ctx)
		case <-r.stopCh:
			return
		case <-ctx.Done():
			return
		}
	}
}
