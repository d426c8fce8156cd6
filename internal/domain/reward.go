package domain

import "time"

// EconomicState is the cached snapshot of global economic figures that
// reward computation reads. Refreshed on a bounded TTL.
type EconomicState struct {
	TodayPoolUsed    float64    `json:"today_pool_used"`
	DailyActiveUsers int        `json:"daily_active_users"`
	GlobalWinRate    float64    `json:"global_win_rate"`
	TotalSupply      float64    `json:"total_supply"`
	RewardMultiplier float64    `json:"reward_multiplier"`
	StopFlags        []StopFlag `json:"stop_flags,omitempty"`
	FetchedAt        time.Time  `json:"fetched_at"`
	Fallback         bool       `json:"fallback"` // true when upstream fetch failed
}

// StopFlag is an active emergency-stop marker. An empty scope halts all
// reward payouts; a named scope halts one difficulty.
type StopFlag struct {
	Scope     string     `json:"scope"`
	Reason    string     `json:"reason"`
	CreatedBy string     `json:"created_by"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Stopped reports whether payouts are halted for the given scope at the
// given instant. A global flag (empty scope) halts every scope.
func (e EconomicState) Stopped(scope string, now time.Time) bool {
	for _, f := range e.StopFlags {
		if f.ExpiresAt != nil && !f.ExpiresAt.After(now) {
			continue
		}
		if f.Scope == "" || f.Scope == scope {
			return true
		}
	}
	return false
}

// RewardCalculationResult is the deterministic output of reward
// computation for a single claim. It is authoritative only once a
// PendingReward has been persisted from it.
type RewardCalculationResult struct {
	BaseReward  float64            `json:"base_reward"`
	TotalFMH    float64            `json:"total_fmh"`
	CanClaim    bool               `json:"can_claim"`
	Reason      string             `json:"reason,omitempty"`
	Multipliers map[string]float64 `json:"multipliers"`
}

// PendingReward is a time-bound signed promise to pay a computed reward,
// awaiting external settlement. One per (player, gameID).
type PendingReward struct {
	PlayerAddress  string    `json:"player_address"`
	GameID         string    `json:"game_id"`
	RewardAmount   float64   `json:"reward_amount"`
	ClaimSignature string    `json:"claim_signature"`
	ExpiresAt      time.Time `json:"expires_at"`
	CreatedAt      time.Time `json:"created_at"`
}

// Operator is a comparison operator in a seasonal event condition
type Operator string

const (
	OpEq  Operator = "eq"
	OpNe  Operator = "ne"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
)

// EventCondition is a structured predicate over a numeric or boolean
// GameResult field. Free-text expressions are deliberately not supported.
type EventCondition struct {
	Field string   `json:"field"`
	Op    Operator `json:"op"`
	Value float64  `json:"value"`
}

// SeasonalEvent is a time-bounded modifier that conditionally boosts
// reward computation. Multiple simultaneously active events compose
// multiplicatively.
type SeasonalEvent struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	StartTime       time.Time        `json:"start_time"`
	EndTime         time.Time        `json:"end_time"` // exclusive
	BonusMultiplier float64          `json:"bonus_multiplier"`
	Conditions      []EventCondition `json:"conditions"`
	IsActive        bool             `json:"is_active"`
}

// ActiveAt reports whether the event window covers the given instant
func (s SeasonalEvent) ActiveAt(now time.Time) bool {
	return s.IsActive && !now.Before(s.StartTime) && now.Before(s.EndTime)
}
