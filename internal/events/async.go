package events

import (
	"context"
	"sync"
	"time"

	"investwise/internal/logger"
	"investwise/internal/metrics"
	"investwise/internal/services"
)

// AsyncRecomputer runs each valuation on its own goroutine, bounded by a timeout.
type AsyncRecomputer struct {
	valuator Valuator
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewAsyncRecomputer creates an in-process recomputer. A non-positive timeout means one minute.
func NewAsyncRecomputer(valuator Valuator, timeout time.Duration) *AsyncRecomputer {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &AsyncRecomputer{valuator: valuator, timeout: timeout}
}

var _ services.Recomputer = (*AsyncRecomputer)(nil)

// Trigger schedules a valuation and returns immediately.
func (r *AsyncRecomputer) Trigger(userID string) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if _, err := r.valuator.ComputeAndSnapshot(ctx, userID, services.TriggerSale); err != nil {
			metrics.RecordRecompute("async", "error")
			logger.With("user_id", userID).Errorw("background recompute failed", "error", err)
			return
		}
		metrics.RecordRecompute("async", "ok")
	}()
}

// Wait blocks until every scheduled valuation has finished.
func (r *AsyncRecomputer) Wait() {
	r.wg.Wait()
}
