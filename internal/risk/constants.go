package risk

import "time"

// Detector plausibility bounds. These describe physical/human limits and
// are constants; the decision thresholds in Config are tunable instead.
const (
	// MinHumanMoveInterval is the fastest sustained interval between
	// moves a human can plausibly hold over a whole game, in seconds
	MinHumanMoveInterval = 0.12

	// MaxPlausibleMoveRate is the sustained moves-per-second ceiling
	MaxPlausibleMoveRate = 8.0

	// EfficiencyOutlierFactor flags sessions whose efficiency exceeds
	// the player's own historical average by this factor
	EfficiencyOutlierFactor = 3.0

	// MinGamesForBaseline is how much history a player needs before
	// their average efficiency is a usable baseline
	MinGamesForBaseline = 10

	// FingerprintWindow bounds how long a device fingerprint sighting
	// counts toward cross-address collision detection
	FingerprintWindow = 24 * time.Hour
)

// Detector confidence levels
const (
	ConfidenceTimingBase      = 0.6
	ConfidenceTimingMax       = 0.95
	ConfidenceClickSpan       = 0.9
	ConfidencePauseAbuse      = 0.7
	ConfidenceMoveRate        = 0.9
	ConfidenceEfficiency      = 0.6
	ConfidenceFingerprint     = 0.75
	ConfidenceLatency         = 0.65
)

// Log messages
const (
	LogMsgActivitiesDetected = "Suspicious activities detected"
	LogMsgProfileUpdated     = "Risk profile updated"
	LogMsgPayoutBlocked      = "Payout blocked by risk decision"
)
