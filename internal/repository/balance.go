package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/fmhgames/reward-service/internal/domain"
)

// BalanceActions defines storage for the two-phase admin action record.
// ClaimExecution must be guarded so the created -> executing transition
// happens at most once even under concurrent execute calls; the row
// reads as executed only after the claimant's effect has landed.
type BalanceActions interface {
	// Create persists a new action in the created state.
	Create(ctx context.Context, action domain.BalanceAction) error

	// Get returns the action, or domain.ErrActionNotFound.
	Get(ctx context.Context, id uuid.UUID) (*domain.BalanceAction, error)

	// ClaimExecution atomically transitions created -> executing.
	// Returns false when the action was not in the created state;
	// exactly one of any set of concurrent callers claims it, and only
	// the claimant performs the economic effect.
	ClaimExecution(ctx context.Context, id uuid.UUID) (bool, error)

	// MarkExecuted moves the claimed action to executed with its result.
	// Only the execution claimant calls this, after the effect succeeds.
	MarkExecuted(ctx context.Context, id uuid.UUID, result map[string]interface{}) error

	// MarkFailed moves the action to failed with the failure message.
	// Only the execution claimant calls this.
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
}
