package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// BalanceActionType identifies an administrative economic mutation
type BalanceActionType string

const (
	ActionMint          BalanceActionType = "MINT"
	ActionEmergencyStop BalanceActionType = "EMERGENCY_STOP"
	ActionResume        BalanceActionType = "RESUME"
	ActionRewardAdjust  BalanceActionType = "REWARD_ADJUST"
	ActionRiskReset     BalanceActionType = "RISK_RESET"
)

// BalanceActionStatus is the state of a balance action.
// Transitions: created -> executing -> executed, or
// created -> executing -> failed. An action reads as executed only
// after its effect has landed; executed and failed are terminal.
type BalanceActionStatus string

const (
	ActionStatusCreated   BalanceActionStatus = "created"
	ActionStatusExecuting BalanceActionStatus = "executing"
	ActionStatusExecuted  BalanceActionStatus = "executed"
	ActionStatusFailed    BalanceActionStatus = "failed"
)

// BalanceAction is an audited two-phase economic mutation: created
// first with no effect, then separately executed exactly once.
type BalanceAction struct {
	ID         uuid.UUID              `json:"id"`
	Type       BalanceActionType      `json:"type"`
	Reason     string                 `json:"reason"`
	Parameters map[string]interface{} `json:"parameters"`
	Impact     string                 `json:"impact"`
	Status     BalanceActionStatus    `json:"status"`
	CreatedBy  string                 `json:"created_by"`
	Result     map[string]interface{} `json:"result,omitempty"`
	Error      string                 `json:"error,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	ExecutedAt *time.Time             `json:"executed_at,omitempty"`
}

// AdminLevel is the privilege tier of an admin identity
type AdminLevel string

const (
	AdminLevelViewer     AdminLevel = "viewer"
	AdminLevelOperator   AdminLevel = "operator"
	AdminLevelAdmin      AdminLevel = "admin"
	AdminLevelSuperadmin AdminLevel = "superadmin"
)

// AdminUser is an operator identity authorized by bearer token.
// Permissions are dotted scope strings ("economic.adjust"), a scope
// wildcard ("economic.*"), or the full wildcard ("*").
type AdminUser struct {
	Token       string     `json:"-"`
	Name        string     `json:"name"`
	Level       AdminLevel `json:"level"`
	Permissions []string   `json:"permissions"`
}

// HasPermission reports whether the identity holds the given scope,
// either exactly, via a trailing ".*" wildcard, or via "*".
func (a AdminUser) HasPermission(scope string) bool {
	for _, p := range a.Permissions {
		if p == "*" || p == scope {
			return true
		}
		if strings.HasSuffix(p, ".*") && strings.HasPrefix(scope, strings.TrimSuffix(p, "*")) {
			return true
		}
	}
	return false
}
