package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NonceRepository implements replay-protection storage for PostgreSQL.
// The UNIQUE(player_address, nonce) constraint makes Consume atomic:
// concurrent submissions of the same nonce race at the index and exactly
// one insert lands.
type NonceRepository struct {
	db *pgxpool.Pool
}

// NewNonceRepository creates a new NonceRepository
func NewNonceRepository(db *pgxpool.Pool) *NonceRepository {
	return &NonceRepository{db: db}
}

// IsUsed reports whether the nonce has already been consumed for the player
func (r *NonceRepository) IsUsed(ctx context.Context, playerAddress, nonce string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM game_nonces
			WHERE player_address = $1 AND nonce = $2
		)`

	var used bool
	if err := r.db.QueryRow(ctx, query, playerAddress, nonce).Scan(&used); err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToCheckNonce, err)
	}
	return used, nil
}

// Consume atomically marks the nonce used for the player. ON CONFLICT
// DO NOTHING turns a replay into a zero-row insert instead of an error.
func (r *NonceRepository) Consume(ctx context.Context, playerAddress, nonce, gameID string) (bool, error) {
	const query = `
		INSERT INTO game_nonces (player_address, nonce, game_id, used_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (player_address, nonce) DO NOTHING`

	tag, err := r.db.Exec(ctx, query, playerAddress, nonce, gameID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToConsumeNonce, err)
	}
	return tag.RowsAffected() == 1, nil
}
