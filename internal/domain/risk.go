package domain

import "time"

// ActivityKind identifies a category of suspicious activity
type ActivityKind string

const (
	ActivityTimingImpossible     ActivityKind = "timing_impossible"
	ActivityMoveRateAnomaly      ActivityKind = "move_rate_anomaly"
	ActivityEfficiencyOutlier    ActivityKind = "efficiency_outlier"
	ActivityFingerprintCollision ActivityKind = "fingerprint_collision"
	ActivityLatencyInconsistency ActivityKind = "latency_inconsistency"
	ActivityPauseAbuse           ActivityKind = "pause_abuse"
)

// SuspiciousActivity is a single piece of fraud-signal evidence derived
// from one session's telemetry. Ephemeral until folded into a profile.
type SuspiciousActivity struct {
	Kind       ActivityKind           `json:"kind"`
	Confidence float64                `json:"confidence"` // 0-1
	Evidence   map[string]interface{} `json:"evidence,omitempty"`
	DetectedAt time.Time              `json:"detected_at"`
}

// RiskProfile is the persistent per-player accumulation of fraud-signal
// evidence. The score decays over time but is never silently reset;
// only an explicit admin action may zero it.
type RiskProfile struct {
	PlayerAddress   string               `json:"player_address"`
	Score           float64              `json:"score"`
	FlaggedSessions int                  `json:"flagged_sessions"`
	Activities      []SuspiciousActivity `json:"activities"`
	LastUpdated     time.Time            `json:"last_updated"`
}

// RiskDecision is the block/allow verdict for a single claim
type RiskDecision struct {
	ShouldBlock bool    `json:"should_block"`
	Confidence  float64 `json:"confidence"`
}
