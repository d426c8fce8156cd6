package repository

import (
	"context"
	"time"

	"github.com/fmhgames/reward-service/internal/domain"
)

// Economy defines storage for the global economic counters and flags
// that reward computation reads and balance actions mutate. Counter
// mutations use atomic SQL increments so concurrent actions against the
// same pool serialize at the database.
type Economy interface {
	// FetchSnapshot reads the current economic figures from the source of truth.
	FetchSnapshot(ctx context.Context) (*domain.EconomicState, error)

	// IncrementPoolUsed adds amount to today's pool usage counter.
	IncrementPoolUsed(ctx context.Context, amount float64) error

	// AdjustPoolBalance adds amount to the named pool's balance (MINT).
	AdjustPoolBalance(ctx context.Context, pool string, amount float64) (newBalance float64, err error)

	// SetRewardMultiplier replaces the global reward multiplier.
	SetRewardMultiplier(ctx context.Context, multiplier float64) error

	// GetRewardMultiplier reads the current global reward multiplier.
	GetRewardMultiplier(ctx context.Context) (float64, error)

	// SetStopFlag raises an emergency-stop flag for the scope ("" = global).
	SetStopFlag(ctx context.Context, flag domain.StopFlag) error

	// ClearStopFlag removes the stop flag for the scope.
	ClearStopFlag(ctx context.Context, scope string) error

	// GetStopFlags lists stop flags that have not expired as of now.
	GetStopFlags(ctx context.Context, now time.Time) ([]domain.StopFlag, error)
}

// Seasonal defines read access to seasonal reward events
type Seasonal interface {
	// ActiveEvents returns events whose window covers now, ordered by ID
	// so multiplier application is deterministic.
	ActiveEvents(ctx context.Context, now time.Time) ([]domain.SeasonalEvent, error)
}

// PlayerStats defines read access to rolling per-player aggregates
type PlayerStats interface {
	// Load returns the stats for the player, or domain.ErrStatsNotFound.
	Load(ctx context.Context, playerAddress string) (*domain.PlayerStats, error)
}
