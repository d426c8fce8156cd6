package repository

import (
	"context"

	"github.com/fmhgames/reward-service/internal/domain"
)

// PendingRewards defines storage for settled-but-unredeemed rewards.
// Create must be backed by a uniqueness constraint on (playerAddress,
// gameID): retries within the expiry window observe the first entry
// instead of minting a second promise.
type PendingRewards interface {
	// Create persists the entry. When an entry already exists for the
	// same (player, gameID), the existing entry is returned and created
	// is false; no second write happens.
	Create(ctx context.Context, entry domain.PendingReward) (stored *domain.PendingReward, created bool, err error)

	// Get returns the entry for (player, gameID), or domain.ErrRewardNotFound.
	Get(ctx context.Context, playerAddress, gameID string) (*domain.PendingReward, error)

	// DeleteExpired reclaims storage for entries expired before cutoff.
	// Expiry is enforced at redeem time; this only frees space.
	DeleteExpired(ctx context.Context, cutoffUnix int64) (int64, error)
}
