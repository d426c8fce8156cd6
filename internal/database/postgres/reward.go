package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fmhgames/reward-service/internal/domain"
)

// PendingRewardRepository implements pending reward storage for
// PostgreSQL. UNIQUE(player_address, game_id) backs the idempotent
// create: a retry observes the first entry instead of minting a second.
type PendingRewardRepository struct {
	db *pgxpool.Pool
}

// NewPendingRewardRepository creates a new PendingRewardRepository
func NewPendingRewardRepository(db *pgxpool.Pool) *PendingRewardRepository {
	return &PendingRewardRepository{db: db}
}

// Create persists the entry, or returns the existing one for the same
// (player, gameID) without writing.
func (r *PendingRewardRepository) Create(ctx context.Context, entry domain.PendingReward) (*domain.PendingReward, bool, error) {
	const query = `
		INSERT INTO pending_rewards
			(player_address, game_id, reward_amount, claim_signature, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (player_address, game_id) DO NOTHING`

	tag, err := r.db.Exec(ctx, query,
		entry.PlayerAddress, entry.GameID, entry.RewardAmount,
		entry.ClaimSignature, entry.ExpiresAt, entry.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", ErrMsgFailedToCreatePendingReward, err)
	}

	if tag.RowsAffected() == 1 {
		return &entry, true, nil
	}

	stored, err := r.Get(ctx, entry.PlayerAddress, entry.GameID)
	if err != nil {
		return nil, false, err
	}
	return stored, false, nil
}

// Get returns the entry for (player, gameID)
func (r *PendingRewardRepository) Get(ctx context.Context, playerAddress, gameID string) (*domain.PendingReward, error) {
	const query = `
		SELECT player_address, game_id, reward_amount, claim_signature, expires_at, created_at
		FROM pending_rewards
		WHERE player_address = $1 AND game_id = $2`

	var entry domain.PendingReward
	err := r.db.QueryRow(ctx, query, playerAddress, gameID).Scan(
		&entry.PlayerAddress, &entry.GameID, &entry.RewardAmount,
		&entry.ClaimSignature, &entry.ExpiresAt, &entry.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRewardNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPendingReward, err)
	}
	return &entry, nil
}

// DeleteExpired reclaims storage for entries expired before cutoff
func (r *PendingRewardRepository) DeleteExpired(ctx context.Context, cutoffUnix int64) (int64, error) {
	const query = `DELETE FROM pending_rewards WHERE expires_at < to_timestamp($1)`

	tag, err := r.db.Exec(ctx, query, cutoffUnix)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToDeleteExpired, err)
	}
	return tag.RowsAffected(), nil
}
