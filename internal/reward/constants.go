package reward

import "github.com/fmhgames/reward-service/internal/domain"

// Base reward in FMH per difficulty preset
var difficultyBase = map[domain.Difficulty]float64{
	domain.DifficultyEasy:   10,
	domain.DifficultyMedium: 25,
	domain.DifficultyHard:   50,
	domain.DifficultyExpert: 100,
}

const (
	// ScoreNormalizer converts the raw score into the score factor:
	// factor = 1 + score/ScoreNormalizer
	ScoreNormalizer = 1000.0

	// ParDurationSeconds anchors the speed factor; a game finished in
	// par time earns a 1.5x speed factor, instant wins approach 2x
	ParDurationSeconds = 120.0

	// StreakGrace is the number of consecutive wins before diminishing
	// returns start compounding
	StreakGrace = 3

	// StreakPenalty is the per-win slope of the streak divisor
	StreakPenalty = 0.15

	// WinRateSoftCap is the recent win rate above which rewards scale down
	WinRateSoftCap = 0.6

	// DiminishingFloor bounds the combined diminishing factor from below
	DiminishingFloor = 0.1
)

// Multiplier breakdown keys
const (
	MultiplierGlobal      = "global"
	MultiplierDiminishing = "diminishing"
	MultiplierThrottle    = "throttle"
	MultiplierEventPrefix = "event:"
)

// Disqualification reasons surfaced in RewardCalculationResult.Reason
const (
	ReasonLoss            = "loss does not qualify for a reward"
	ReasonZeroScore       = "zero score does not qualify for a reward"
	ReasonMalformedConfig = "malformed game configuration"
	ReasonInvalidTotal    = "reward computation produced an invalid total"
	ReasonZeroTotal       = "reward pool is exhausted"
	ReasonEmergencyStop   = "rewards are temporarily halted"
)
