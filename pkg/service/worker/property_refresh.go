package worker

import (
	"context"
	"time"

	"github.com/secmon-lab/fieldswitch/pkg/utils/errutil"
	"github.com/secmon-lab/fieldswitch/pkg/utils/logging"
)

// Refresher reloads some cached state
type Refresher interface {
	Refresh(ctx context.Context) error
}

// PropertyRefreshWorker periodically reloads property definitions into the
// cache used by the search page.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
type PropertyRefreshWorker struct {
	target   Refresher
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewPropertyRefreshWorker creates a new worker for refreshing property definitions
func NewPropertyRefreshWorker(target Refresher, interval time.Duration) *PropertyRefreshWorker {
	return &PropertyRefreshWorker{
		target:   target,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the background refresh loop. It does not block.
func (w *PropertyRefreshWorker) Start(ctx context.Context) {
	logging.Default().Info("Property refresh worker starting",
		"interval", w.interval.String())

	go w.run(ctx)
}

// Stop signals the worker to stop and waits for completion
func (w *PropertyRefreshWorker) Stop() {
	logging.Default().Info("Property refresh worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Property refresh worker stopped")
}

// Done is closed when the worker loop has exited
func (w *PropertyRefreshWorker) Done() <-chan struct{} {
	return w.doneCh
}

func (w *PropertyRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.target.Refresh(ctx); err != nil {
		_ = errutil.Handle(ctx, err, "Initial property refresh failed (will retry next interval)")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.target.Refresh(ctx); err != nil {
				// Keep serving the previous snapshot
				_ = errutil.Handle(ctx, err, "Property refresh failed (will retry next interval)")
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Property refresh worker context cancelled")
			return
		}
	}
}
