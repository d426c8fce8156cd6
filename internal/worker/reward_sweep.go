package worker

import (
	"context"
	"time"

	"github.com/fmhgames/reward-service/internal/logger"
)

// ExpiredRewardDeleter reclaims storage for pending rewards whose claim
// window has closed. Expiry is enforced at redeem time; the sweep only
// frees space.
type ExpiredRewardDeleter interface {
	DeleteExpired(ctx context.Context, cutoffUnix int64) (int64, error)
}

// RewardSweepJob deletes expired pending reward entries. Scheduled on
// the shared worker pool.
type RewardSweepJob struct {
	rewards ExpiredRewardDeleter
	now     func() time.Time
}

// NewRewardSweepJob creates a sweep job over the pending reward store
func NewRewardSweepJob(rewards ExpiredRewardDeleter) *RewardSweepJob {
	return &RewardSweepJob{rewards: rewards, now: time.Now}
}

func (j *RewardSweepJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)

	deleted, err := j.rewards.DeleteExpired(ctx, j.now().Unix())
	if err != nil {
		log.Error(LogMsgRewardSweepFailed, "error", err)
		return err
	}

	if deleted > 0 {
		log.Info(LogMsgRewardSweepCompleted, "deleted", deleted)
	}
	return nil
}
