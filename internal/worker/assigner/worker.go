package assigner

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// assignService retries courier matching for unassigned orders.
type assignService interface {
	ReassignPending(ctx context.Context, batchSize int) (int, error)
}

// Worker periodically retries delivery assignment for WAITING orders that
// still have no courier, so an order created while no courier was available
// is picked up as soon as one frees up.
type Worker struct {
	assignSvc    assignService
	pollInterval time.Duration
	batchSize    int
	stopCh       chan struct{}
}

// NewWorker creates a new assigner worker.
func NewWorker(assignSvc assignService) *Worker {
	pollIntervalSeconds := viper.GetInt("assigner.poll_interval_seconds")
	if pollIntervalSeconds == 0 {
		pollIntervalSeconds = 15
	}

	batchSize := viper.GetInt("assigner.batch_size")
	if batchSize == 0 {
		batchSize = 50
	}

	return &Worker{
		assignSvc:    assignSvc,
		pollInterval: time.Duration(pollIntervalSeconds) * time.Second,
		batchSize:    batchSize,
		stopCh:       make(chan struct{}),
	}
}

// Start begins retrying assignment for unassigned orders.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	slog.Info("Assigner worker started", "poll_interval", w.pollInterval, "batch_size", w.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.Info("Assigner worker shutting down")

			return
		case <-w.stopCh:
			slog.Info("Assigner worker stopped")

			return
		case <-ticker.C:
			matched, err := w.assignSvc.ReassignPending(ctx, w.batchSize)
			if err != nil {
				slog.Error("Failed to reassign pending orders", "error", err)

				continue
			}
			if matched > 0 {
				slog.Info("Assigned couriers to pending orders", "count", matched)
			}
		}
	}
}

// Stop stops the worker.
func (w *Worker) Stop() {
	close(w.stopCh)
}
