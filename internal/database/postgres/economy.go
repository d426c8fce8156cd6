package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fmhgames/reward-service/internal/domain"
)

// EconomyRepository implements the economy repository for PostgreSQL.
// The economic_state table holds a single row; counter mutations are
// atomic SQL increments so concurrent writers serialize at the row.
type EconomyRepository struct {
	db *pgxpool.Pool
}

// NewEconomyRepository creates a new EconomyRepository
func NewEconomyRepository(db *pgxpool.Pool) *EconomyRepository {
	return &EconomyRepository{db: db}
}

// FetchSnapshot reads the current economic figures
func (r *EconomyRepository) FetchSnapshot(ctx context.Context) (*domain.EconomicState, error) {
	const query = `
		SELECT today_pool_used, daily_active_users, global_win_rate,
		       total_supply, reward_multiplier
		FROM economic_state
		WHERE id = 1`

	state := domain.EconomicState{FetchedAt: time.Now()}
	err := r.db.QueryRow(ctx, query).Scan(
		&state.TodayPoolUsed,
		&state.DailyActiveUsers,
		&state.GlobalWinRate,
		&state.TotalSupply,
		&state.RewardMultiplier,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEconomicUnavailable
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToFetchSnapshot, err)
	}

	return &state, nil
}

// IncrementPoolUsed adds amount to today's pool usage counter
func (r *EconomyRepository) IncrementPoolUsed(ctx context.Context, amount float64) error {
	const query = `
		UPDATE economic_state
		SET today_pool_used = today_pool_used + $1, updated_at = NOW()
		WHERE id = 1`

	if _, err := r.db.Exec(ctx, query, amount); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToIncrementPool, err)
	}
	return nil
}

// ResetDailyUsage zeroes today's pool usage counter at the day boundary
func (r *EconomyRepository) ResetDailyUsage(ctx context.Context) error {
	const query = `
		UPDATE economic_state
		SET today_pool_used = 0, updated_at = NOW()
		WHERE id = 1`

	if _, err := r.db.Exec(ctx, query); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToResetDailyUsage, err)
	}
	return nil
}

// AdjustPoolBalance adds amount to the named pool and returns the new balance
func (r *EconomyRepository) AdjustPoolBalance(ctx context.Context, pool string, amount float64) (float64, error) {
	const query = `
		INSERT INTO pool_balances (pool, balance, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (pool)
		DO UPDATE SET balance = pool_balances.balance + $2, updated_at = NOW()
		RETURNING balance`

	var newBalance float64
	if err := r.db.QueryRow(ctx, query, pool, amount).Scan(&newBalance); err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToAdjustPool, err)
	}
	return newBalance, nil
}

// SetRewardMultiplier replaces the global reward multiplier
func (r *EconomyRepository) SetRewardMultiplier(ctx context.Context, multiplier float64) error {
	const query = `
		UPDATE economic_state
		SET reward_multiplier = $1, updated_at = NOW()
		WHERE id = 1`

	if _, err := r.db.Exec(ctx, query, multiplier); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetMultiplier, err)
	}
	return nil
}

// GetRewardMultiplier reads the current global reward multiplier
func (r *EconomyRepository) GetRewardMultiplier(ctx context.Context) (float64, error) {
	const query = `SELECT reward_multiplier FROM economic_state WHERE id = 1`

	var multiplier float64
	if err := r.db.QueryRow(ctx, query).Scan(&multiplier); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrEconomicUnavailable
		}
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToGetMultiplier, err)
	}
	return multiplier, nil
}

// SetStopFlag raises or refreshes an emergency-stop flag for the scope
func (r *EconomyRepository) SetStopFlag(ctx context.Context, flag domain.StopFlag) error {
	const query = `
		INSERT INTO stop_flags (scope, reason, created_by, expires_at, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (scope)
		DO UPDATE SET reason = $2, created_by = $3, expires_at = $4, created_at = NOW()`

	if _, err := r.db.Exec(ctx, query, flag.Scope, flag.Reason, flag.CreatedBy, flag.ExpiresAt); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetStopFlag, err)
	}
	return nil
}

// ClearStopFlag removes the stop flag for the scope
func (r *EconomyRepository) ClearStopFlag(ctx context.Context, scope string) error {
	const query = `DELETE FROM stop_flags WHERE scope = $1`

	if _, err := r.db.Exec(ctx, query, scope); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToClearStopFlag, err)
	}
	return nil
}

// GetStopFlags lists stop flags that have not expired as of now
func (r *EconomyRepository) GetStopFlags(ctx context.Context, now time.Time) ([]domain.StopFlag, error) {
	const query = `
		SELECT scope, reason, created_by, expires_at
		FROM stop_flags
		WHERE expires_at IS NULL OR expires_at > $1
		ORDER BY scope`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStopFlags, err)
	}
	defer rows.Close()

	var flags []domain.StopFlag
	for rows.Next() {
		var flag domain.StopFlag
		if err := rows.Scan(&flag.Scope, &flag.Reason, &flag.CreatedBy, &flag.ExpiresAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStopFlags, err)
		}
		flags = append(flags, flag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetStopFlags, err)
	}
	return flags, nil
}
