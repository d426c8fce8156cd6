package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fmhgames/reward-service/internal/domain"
)

// BalanceActionRepository implements balance action storage for
// PostgreSQL. The status column guards the created -> executing
// transition: ClaimExecution is a conditional update, so exactly one
// concurrent caller sees a row change. The row only reads executed
// once MarkExecuted lands the effect's result.
type BalanceActionRepository struct {
	db *pgxpool.Pool
}

// NewBalanceActionRepository creates a new BalanceActionRepository
func NewBalanceActionRepository(db *pgxpool.Pool) *BalanceActionRepository {
	return &BalanceActionRepository{db: db}
}

// Create persists a new action in the created state
func (r *BalanceActionRepository) Create(ctx context.Context, action domain.BalanceAction) error {
	params, err := json.Marshal(action.Parameters)
	if err != nil {
		return fmt.Errorf("failed to marshal action parameters: %w", err)
	}

	const query = `
		INSERT INTO balance_actions
			(id, type, reason, parameters, impact, status, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.Exec(ctx, query,
		action.ID, action.Type, action.Reason, params,
		action.Impact, action.Status, action.CreatedBy, action.CreatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateAction, err)
	}
	return nil
}

// Get returns the action by ID
func (r *BalanceActionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.BalanceAction, error) {
	const query = `
		SELECT id, type, reason, parameters, impact, status, created_by,
		       result, error, created_at, executed_at
		FROM balance_actions
		WHERE id = $1`

	var action domain.BalanceAction
	var params, result []byte
	var errMsg *string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&action.ID, &action.Type, &action.Reason, &params,
		&action.Impact, &action.Status, &action.CreatedBy,
		&result, &errMsg, &action.CreatedAt, &action.ExecutedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrActionNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetAction, err)
	}

	if len(params) > 0 {
		if err := json.Unmarshal(params, &action.Parameters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal action parameters: %w", err)
		}
	}
	if len(result) > 0 {
		if err := json.Unmarshal(result, &action.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal action result: %w", err)
		}
	}
	if errMsg != nil {
		action.Error = *errMsg
	}
	return &action, nil
}

// ClaimExecution atomically transitions created -> executing. The WHERE
// clause makes it a compare-and-set; a zero-row update means another
// caller already claimed it or the action is in a terminal state.
func (r *BalanceActionRepository) ClaimExecution(ctx context.Context, id uuid.UUID) (bool, error) {
	const query = `
		UPDATE balance_actions
		SET status = $1
		WHERE id = $2 AND status = $3`

	tag, err := r.db.Exec(ctx, query, domain.ActionStatusExecuting, id, domain.ActionStatusCreated)
	if err != nil {
		return false, fmt.Errorf("%s: %w", ErrMsgFailedToClaimAction, err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkExecuted moves the claimed action to executed with its result.
// The status guard keeps a crashed or duplicate claimant from
// resurrecting a row that already reached a terminal state.
func (r *BalanceActionRepository) MarkExecuted(ctx context.Context, id uuid.UUID, result map[string]interface{}) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal action result: %w", err)
	}

	const query = `
		UPDATE balance_actions
		SET status = $1, result = $2, executed_at = NOW()
		WHERE id = $3 AND status = $4`

	if _, err := r.db.Exec(ctx, query, domain.ActionStatusExecuted, data, id, domain.ActionStatusExecuting); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarkExecuted, err)
	}
	return nil
}

// MarkFailed moves the claimed action to failed with the failure message
func (r *BalanceActionRepository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	const query = `
		UPDATE balance_actions
		SET status = $1, error = $2
		WHERE id = $3 AND status = $4`

	if _, err := r.db.Exec(ctx, query, domain.ActionStatusFailed, errMsg, id, domain.ActionStatusExecuting); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToMarkFailed, err)
	}
	return nil
}
