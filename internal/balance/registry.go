package balance

import (
	"context"
	"fmt"
	"time"

	"github.com/fmhgames/reward-service/internal/domain"
	"github.com/fmhgames/reward-service/internal/repository"
)

// deps are the collaborators handlers mutate
type deps struct {
	economy repository.Economy
	risk    repository.RiskProfiles
	now     func() time.Time
}

// actionHandler is a typed handler for one balance action type. Each
// handler owns its parameter schema, so adding an action type means
// adding a handler here rather than growing a string switch.
type actionHandler interface {
	// Scope is the permission required to create and execute the action
	Scope() string

	// Validate checks parameter shape and returns the impact summary
	// recorded on the created action. No mutation.
	Validate(params map[string]interface{}) (impact string, err error)

	// Execute performs the type-specific economic effect
	Execute(ctx context.Context, d deps, actor domain.AdminUser, reason string, params map[string]interface{}) (map[string]interface{}, error)
}

// newRegistry wires every supported action type to its handler
func newRegistry() map[domain.BalanceActionType]actionHandler {
	return map[domain.BalanceActionType]actionHandler{
		domain.ActionMint:          mintHandler{},
		domain.ActionEmergencyStop: emergencyStopHandler{},
		domain.ActionResume:        resumeHandler{},
		domain.ActionRewardAdjust:  rewardAdjustHandler{},
		domain.ActionRiskReset:     riskResetHandler{},
	}
}

// ---- parameter helpers ----

func floatParam(params map[string]interface{}, key string) (float64, bool) {
	v, ok := params[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func stringParam(params map[string]interface{}, key string) (string, bool) {
	v, ok := params[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// ---- MINT ----

type mintHandler struct{}

func (mintHandler) Scope() string { return ScopeMint }

func (mintHandler) Validate(params map[string]interface{}) (string, error) {
	amount, ok := floatParam(params, ParamAmount)
	if !ok || amount <= 0 {
		return "", fmt.Errorf("%w: %s must be a positive number", domain.ErrInvalidActionParams, ParamAmount)
	}
	pool, _ := stringParam(params, ParamPool)
	if pool == "" {
		pool = DefaultPool
	}
	return fmt.Sprintf("increase pool %q balance by %.2f FMH", pool, amount), nil
}

func (mintHandler) Execute(ctx context.Context, d deps, _ domain.AdminUser, _ string, params map[string]interface{}) (map[string]interface{}, error) {
	amount, _ := floatParam(params, ParamAmount)
	pool, _ := stringParam(params, ParamPool)
	if pool == "" {
		pool = DefaultPool
	}
	newBalance, err := d.economy.AdjustPoolBalance(ctx, pool, amount)
	if err != nil {
		return nil, fmt.Errorf("mint failed: %w", err)
	}
	return map[string]interface{}{
		"pool":        pool,
		"minted":      amount,
		"new_balance": newBalance,
	}, nil
}

// ---- EMERGENCY_STOP ----

type emergencyStopHandler struct{}

func (emergencyStopHandler) Scope() string { return ScopeStop }

func (emergencyStopHandler) Validate(params map[string]interface{}) (string, error) {
	scope, _ := stringParam(params, ParamScope)
	if ttl, ok := stringParam(params, ParamTTL); ok {
		if _, err := time.ParseDuration(ttl); err != nil {
			return "", fmt.Errorf("%w: %s must be a duration: %v", domain.ErrInvalidActionParams, ParamTTL, err)
		}
	}
	if scope == "" {
		return "halt all reward payouts", nil
	}
	return fmt.Sprintf("halt reward payouts for scope %q", scope), nil
}

func (emergencyStopHandler) Execute(ctx context.Context, d deps, actor domain.AdminUser, reason string, params map[string]interface{}) (map[string]interface{}, error) {
	scope, _ := stringParam(params, ParamScope)
	flag := domain.StopFlag{
		Scope:     scope,
		Reason:    reason,
		CreatedBy: actor.Name,
	}
	if ttl, ok := stringParam(params, ParamTTL); ok {
		dur, _ := time.ParseDuration(ttl)
		expires := d.now().Add(dur)
		flag.ExpiresAt = &expires
	}
	if err := d.economy.SetStopFlag(ctx, flag); err != nil {
		return nil, fmt.Errorf("emergency stop failed: %w", err)
	}
	return map[string]interface{}{"scope": scope, "stopped": true}, nil
}

// ---- RESUME ----

type resumeHandler struct{}

func (resumeHandler) Scope() string { return ScopeStop }

func (resumeHandler) Validate(params map[string]interface{}) (string, error) {
	scope, _ := stringParam(params, ParamScope)
	if scope == "" {
		return "clear the global emergency stop", nil
	}
	return fmt.Sprintf("clear the emergency stop for scope %q", scope), nil
}

func (resumeHandler) Execute(ctx context.Context, d deps, _ domain.AdminUser, _ string, params map[string]interface{}) (map[string]interface{}, error) {
	scope, _ := stringParam(params, ParamScope)
	if err := d.economy.ClearStopFlag(ctx, scope); err != nil {
		return nil, fmt.Errorf("resume failed: %w", err)
	}
	return map[string]interface{}{"scope": scope, "stopped": false}, nil
}

// ---- REWARD_ADJUST ----

type rewardAdjustHandler struct{}

func (rewardAdjustHandler) Scope() string { return ScopeRewardAdjust }

func (rewardAdjustHandler) Validate(params map[string]interface{}) (string, error) {
	multiplier, hasMultiplier := floatParam(params, ParamMultiplier)
	scale, hasScale := floatParam(params, ParamScale)
	switch {
	case hasMultiplier == hasScale:
		return "", fmt.Errorf("%w: exactly one of %s or %s is required", domain.ErrInvalidActionParams, ParamMultiplier, ParamScale)
	case hasMultiplier && multiplier <= 0:
		return "", fmt.Errorf("%w: %s must be positive", domain.ErrInvalidActionParams, ParamMultiplier)
	case hasScale && scale <= 0:
		return "", fmt.Errorf("%w: %s must be positive", domain.ErrInvalidActionParams, ParamScale)
	}
	if hasMultiplier {
		return fmt.Sprintf("set global reward multiplier to %.3f", multiplier), nil
	}
	return fmt.Sprintf("scale global reward multiplier by %.3f", scale), nil
}

func (rewardAdjustHandler) Execute(ctx context.Context, d deps, _ domain.AdminUser, _ string, params map[string]interface{}) (map[string]interface{}, error) {
	target, hasMultiplier := floatParam(params, ParamMultiplier)
	if !hasMultiplier {
		scale, _ := floatParam(params, ParamScale)
		current, err := d.economy.GetRewardMultiplier(ctx)
		if err != nil {
			return nil, fmt.Errorf("reward adjust failed: %w", err)
		}
		target = current * scale
	}
	if err := d.economy.SetRewardMultiplier(ctx, target); err != nil {
		return nil, fmt.Errorf("reward adjust failed: %w", err)
	}
	return map[string]interface{}{"reward_multiplier": target}, nil
}

// ---- RISK_RESET ----

type riskResetHandler struct{}

func (riskResetHandler) Scope() string { return ScopeRiskReset }

func (riskResetHandler) Validate(params map[string]interface{}) (string, error) {
	player, ok := stringParam(params, ParamPlayer)
	if !ok || player == "" {
		return "", fmt.Errorf("%w: %s is required", domain.ErrInvalidActionParams, ParamPlayer)
	}
	return fmt.Sprintf("reset the risk profile for player %s", player), nil
}

func (riskResetHandler) Execute(ctx context.Context, d deps, _ domain.AdminUser, _ string, params map[string]interface{}) (map[string]interface{}, error) {
	player, _ := stringParam(params, ParamPlayer)
	if err := d.risk.Reset(ctx, player); err != nil {
		return nil, fmt.Errorf("risk reset failed: %w", err)
	}
	return map[string]interface{}{"player": player, "reset": true}, nil
}
