package worker

import (
	"context"
	"sync"
	"time"

	"github.com/fmhgames/reward-service/internal/logger"
)

// DailyUsageResetter zeroes the daily pool usage counter
type DailyUsageResetter interface {
	ResetDailyUsage(ctx context.Context) error
}

// SnapshotInvalidator drops the cached economic snapshot so the reset
// counter is visible to the next reward computation
type SnapshotInvalidator interface {
	Invalidate()
}

// DailyResetWorker zeroes the pool usage counter at 00:00 UTC so each
// day starts with the full reward budget
type DailyResetWorker struct {
	economy  DailyUsageResetter
	cache    SnapshotInvalidator
	timer    *time.Timer
	shutdown chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	now      func() time.Time
}

// NewDailyResetWorker creates a new DailyResetWorker
func NewDailyResetWorker(economy DailyUsageResetter, cache SnapshotInvalidator) *DailyResetWorker {
	return &DailyResetWorker{
		economy:  economy,
		cache:    cache,
		shutdown: make(chan struct{}),
		now:      time.Now,
	}
}

// Start schedules the first reset
func (w *DailyResetWorker) Start() {
	w.scheduleNext()
}

// scheduleNext calculates the time until the next midnight UTC and arms
// the timer
func (w *DailyResetWorker) scheduleNext() {
	duration := w.timeUntilNextReset()
	log := logger.FromContext(context.Background())

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}

	// Two-stage scheduling to prevent tight-loop rescheduling caused by
	// early timer triggers
	if duration > 1*time.Hour {
		// Stage 1: standby. Wake up 45 minutes before the reset.
		waitDuration := duration - 45*time.Minute
		w.timer = time.AfterFunc(waitDuration, func() {
			w.scheduleNext()
		})
		w.mu.Unlock()

		log.Info(LogMsgDailyResetStandby, "next_check_at", w.now().UTC().Add(waitDuration))
		return
	}

	// Stage 2: final approach. Schedule the actual reset.
	w.timer = time.AfterFunc(duration, func() {
		select {
		case <-w.shutdown:
			return
		default:
		}

		// If the timer fired early (jitter > 10s), reschedule for the
		// remaining time instead of resetting too soon
		rem := w.timeUntilNextReset()
		if rem > 10*time.Second && rem < 23*time.Hour {
			w.scheduleNext()
			return
		}

		w.executeReset()
		w.scheduleNext()
	})
	w.mu.Unlock()

	log.Info(LogMsgDailyResetApproach, "next_reset_at", w.now().UTC().Add(duration))
}

// executeReset performs the reset in a tracked goroutine
func (w *DailyResetWorker) executeReset() {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ctx := context.Background()
		log := logger.FromContext(ctx)
		log.Info(LogMsgDailyResetStarting)

		if err := w.economy.ResetDailyUsage(ctx); err != nil {
			log.Error(LogMsgDailyResetFailed, "error", err)
			return
		}

		if w.cache != nil {
			w.cache.Invalidate()
		}

		log.Info(LogMsgDailyResetCompleted)
	}()
}

// timeUntilNextReset returns the duration until the next 00:00 UTC
func (w *DailyResetWorker) timeUntilNextReset() time.Duration {
	now := w.now().UTC()
	next := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).Add(24 * time.Hour)
	return next.Sub(now)
}

// Shutdown cancels the pending timer and waits for any in-flight reset
func (w *DailyResetWorker) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down daily reset worker")

	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
