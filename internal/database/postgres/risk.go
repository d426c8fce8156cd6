package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fmhgames/reward-service/internal/domain"
)

// RiskProfileRepository implements risk profile storage for PostgreSQL.
// Activity history is a JSONB column; the profile row is small and
// always read and written whole.
type RiskProfileRepository struct {
	db *pgxpool.Pool
}

// NewRiskProfileRepository creates a new RiskProfileRepository
func NewRiskProfileRepository(db *pgxpool.Pool) *RiskProfileRepository {
	return &RiskProfileRepository{db: db}
}

// Load returns the profile for the player
func (r *RiskProfileRepository) Load(ctx context.Context, playerAddress string) (*domain.RiskProfile, error) {
	const query = `
		SELECT player_address, score, flagged_sessions, activities, last_updated
		FROM risk_profiles
		WHERE player_address = $1`

	var profile domain.RiskProfile
	var activities []byte
	err := r.db.QueryRow(ctx, query, playerAddress).Scan(
		&profile.PlayerAddress, &profile.Score, &profile.FlaggedSessions,
		&activities, &profile.LastUpdated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadProfile, err)
	}

	if len(activities) > 0 {
		if err := json.Unmarshal(activities, &profile.Activities); err != nil {
			return nil, fmt.Errorf("failed to unmarshal risk activities: %w", err)
		}
	}
	return &profile, nil
}

// Save upserts the profile
func (r *RiskProfileRepository) Save(ctx context.Context, profile domain.RiskProfile) error {
	activities, err := json.Marshal(profile.Activities)
	if err != nil {
		return fmt.Errorf("failed to marshal risk activities: %w", err)
	}

	const query = `
		INSERT INTO risk_profiles (player_address, score, flagged_sessions, activities, last_updated)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_address)
		DO UPDATE SET score = $2, flagged_sessions = $3, activities = $4, last_updated = $5`

	_, err = r.db.Exec(ctx, query,
		profile.PlayerAddress, profile.Score, profile.FlaggedSessions,
		activities, profile.LastUpdated)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSaveProfile, err)
	}
	return nil
}

// Reset zeroes the profile. The row survives with zeroed counters so
// the reset itself stays visible in the data.
func (r *RiskProfileRepository) Reset(ctx context.Context, playerAddress string) error {
	const query = `
		UPDATE risk_profiles
		SET score = 0, flagged_sessions = 0, activities = '[]'::jsonb, last_updated = NOW()
		WHERE player_address = $1`

	if _, err := r.db.Exec(ctx, query, playerAddress); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToResetProfile, err)
	}
	return nil
}
