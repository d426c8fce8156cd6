package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fmhgames/reward-service/internal/domain"
)

// PlayerStatsRepository implements read access to rolling per-player
// aggregates. The aggregates are written by an out-of-band ingestion
// job; this service only reads them.
type PlayerStatsRepository struct {
	db *pgxpool.Pool
}

// NewPlayerStatsRepository creates a new PlayerStatsRepository
func NewPlayerStatsRepository(db *pgxpool.Pool) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

// Load returns the stats for the player
func (r *PlayerStatsRepository) Load(ctx context.Context, playerAddress string) (*domain.PlayerStats, error) {
	const query = `
		SELECT player_address, win_streak, lifetime_games, recent_win_rate, avg_efficiency
		FROM player_stats
		WHERE player_address = $1`

	var stats domain.PlayerStats
	err := r.db.QueryRow(ctx, query, playerAddress).Scan(
		&stats.PlayerAddress, &stats.WinStreak, &stats.LifetimeGames,
		&stats.RecentWinRate, &stats.AvgEfficiency)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStatsNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetPlayerStats, err)
	}
	return &stats, nil
}
