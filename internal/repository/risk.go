package repository

import (
	"context"

	"github.com/fmhgames/reward-service/internal/domain"
)

// RiskProfiles defines storage for persistent per-player risk profiles.
// Each player's profile is exclusively owned by that player's update
// path, so implementations need no cross-player coordination.
type RiskProfiles interface {
	// Load returns the profile for the player, or domain.ErrProfileNotFound
	// when the player has never been flagged.
	Load(ctx context.Context, playerAddress string) (*domain.RiskProfile, error)

	// Save upserts the profile.
	Save(ctx context.Context, profile domain.RiskProfile) error

	// Reset zeroes the profile. Only reachable through the RISK_RESET
	// balance action; nothing else may lower a risk score.
	Reset(ctx context.Context, playerAddress string) error
}
