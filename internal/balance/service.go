package balance

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fmhgames/reward-service/internal/domain"
	"github.com/fmhgames/reward-service/internal/logger"
	"github.com/fmhgames/reward-service/internal/metrics"
	"github.com/fmhgames/reward-service/internal/repository"
)

// SnapshotInvalidator drops the cached economic snapshot so an executed
// action is visible to the next reward computation.
type SnapshotInvalidator interface {
	Invalidate()
}

// Service is the balance action state machine. Actions are created
// first (audited, no effect) and executed separately, exactly once.
type Service interface {
	Create(ctx context.Context, actor domain.AdminUser, actionType domain.BalanceActionType, reason string, params map[string]interface{}) (*domain.BalanceAction, error)
	Execute(ctx context.Context, actor domain.AdminUser, actionID uuid.UUID) (*domain.BalanceAction, error)
	Get(ctx context.Context, actionID uuid.UUID) (*domain.BalanceAction, error)
}

type service struct {
	actions  repository.BalanceActions
	registry map[domain.BalanceActionType]actionHandler
	d        deps
	cache    SnapshotInvalidator
}

// NewService creates the balance action machine
func NewService(actions repository.BalanceActions, economy repository.Economy, risk repository.RiskProfiles, cache SnapshotInvalidator) Service {
	return &service{
		actions:  actions,
		registry: newRegistry(),
		d: deps{
			economy: economy,
			risk:    risk,
			now:     time.Now,
		},
		cache: cache,
	}
}

func (s *service) Create(ctx context.Context, actor domain.AdminUser, actionType domain.BalanceActionType, reason string, params map[string]interface{}) (*domain.BalanceAction, error) {
	log := logger.FromContext(ctx)

	handler, ok := s.registry[actionType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedAction, actionType)
	}

	// Permission checking precedes any state mutation
	if !actor.HasPermission(handler.Scope()) {
		log.Warn("Balance action denied",
			"actor", actor.Name,
			"type", actionType,
			"required_scope", handler.Scope())
		return nil, fmt.Errorf("%w: %s requires %s", domain.ErrPermissionDenied, actionType, handler.Scope())
	}

	impact, err := handler.Validate(params)
	if err != nil {
		return nil, err
	}

	action := domain.BalanceAction{
		ID:         uuid.New(),
		Type:       actionType,
		Reason:     reason,
		Parameters: params,
		Impact:     impact,
		Status:     domain.ActionStatusCreated,
		CreatedBy:  actor.Name,
		CreatedAt:  s.d.now(),
	}

	if err := s.actions.Create(ctx, action); err != nil {
		return nil, fmt.Errorf("failed to persist balance action: %w", err)
	}

	log.Info(LogMsgActionCreated,
		"action_id", action.ID,
		"type", actionType,
		"actor", actor.Name,
		"reason", reason,
		"impact", impact)

	return &action, nil
}

func (s *service) Execute(ctx context.Context, actor domain.AdminUser, actionID uuid.UUID) (*domain.BalanceAction, error) {
	log := logger.FromContext(ctx)

	action, err := s.actions.Get(ctx, actionID)
	if err != nil {
		return nil, err
	}

	handler, ok := s.registry[action.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedAction, action.Type)
	}

	if !actor.HasPermission(handler.Scope()) {
		log.Warn("Balance action execution denied",
			"actor", actor.Name,
			"action_id", actionID,
			"required_scope", handler.Scope())
		return nil, fmt.Errorf("%w: %s requires %s", domain.ErrPermissionDenied, action.Type, handler.Scope())
	}

	switch action.Status {
	case domain.ActionStatusExecuted:
		// Idempotent: the effect already happened exactly once
		log.Info(LogMsgActionReplayed, "action_id", actionID, "actor", actor.Name)
		metrics.BalanceActionsExecuted.WithLabelValues(string(action.Type), OutcomeReplayed).Inc()
		return action, nil
	case domain.ActionStatusExecuting:
		// Another caller holds the claim and its effect has not landed;
		// the action must not read as executed yet.
		return nil, fmt.Errorf("%w: action %s is being executed", domain.ErrActionNotExecutable, actionID)
	case domain.ActionStatusFailed:
		return nil, fmt.Errorf("%w: action %s already failed", domain.ErrActionNotExecutable, actionID)
	}

	// Claim the created -> executing transition before touching any
	// counter: exactly one caller wins, so the effect runs exactly once
	// even when two operators execute the same action concurrently. The
	// row reads executed only after the effect lands.
	claimed, err := s.actions.ClaimExecution(ctx, actionID)
	if err != nil {
		return nil, fmt.Errorf("failed to claim balance action execution: %w", err)
	}
	if !claimed {
		prior, err := s.actions.Get(ctx, actionID)
		if err != nil {
			return nil, err
		}
		switch prior.Status {
		case domain.ActionStatusExecuting:
			return nil, fmt.Errorf("%w: action %s is being executed", domain.ErrActionNotExecutable, actionID)
		case domain.ActionStatusFailed:
			return nil, fmt.Errorf("%w: action %s already failed", domain.ErrActionNotExecutable, actionID)
		}
		log.Info(LogMsgActionReplayed, "action_id", actionID, "actor", actor.Name)
		metrics.BalanceActionsExecuted.WithLabelValues(string(action.Type), OutcomeReplayed).Inc()
		return prior, nil
	}

	result, execErr := handler.Execute(ctx, s.d, actor, action.Reason, action.Parameters)
	if execErr != nil {
		if err := s.actions.MarkFailed(ctx, actionID, execErr.Error()); err != nil {
			log.Error("Failed to record balance action failure", "action_id", actionID, "error", err)
		}
		metrics.BalanceActionsExecuted.WithLabelValues(string(action.Type), OutcomeFailed).Inc()
		log.Error(LogMsgActionFailed,
			"action_id", actionID,
			"type", action.Type,
			"actor", actor.Name,
			"error", execErr)
		return nil, execErr
	}

	if err := s.actions.MarkExecuted(ctx, actionID, result); err != nil {
		log.Error("Failed to mark balance action executed", "action_id", actionID, "error", err)
	}

	if s.cache != nil {
		s.cache.Invalidate()
	}

	metrics.BalanceActionsExecuted.WithLabelValues(string(action.Type), OutcomeExecuted).Inc()
	log.Info(LogMsgActionExecuted,
		"action_id", actionID,
		"type", action.Type,
		"actor", actor.Name,
		"reason", action.Reason,
		"result", result)

	executedAt := s.d.now()
	action.Status = domain.ActionStatusExecuted
	action.Result = result
	action.ExecutedAt = &executedAt
	return action, nil
}

func (s *service) Get(ctx context.Context, actionID uuid.UUID) (*domain.BalanceAction, error) {
	return s.actions.Get(ctx, actionID)
}
