package reward

import (
	"math"
	"sort"

	"github.com/fmhgames/reward-service/internal/domain"
)

// Policy holds the economic throttling configuration
type Policy struct {
	DailyPoolBudget   float64
	ThrottleThreshold float64 // pool usage fraction where scaling begins
}

// Compute derives the reward for a game result. It is a pure function:
// identical inputs (including the economic snapshot) always produce an
// identical result, which is what makes payouts auditable. Events are
// applied in ID order regardless of input order.
//
// Plausibility of the telemetry is deliberately not judged here; that
// is the risk engine's job. Disqualifiers in this stage are strictly
// structural: loss, zero score, malformed config.
func Compute(result domain.GameResult, stats *domain.PlayerStats, econ domain.EconomicState, events []domain.SeasonalEvent, policy Policy) domain.RewardCalculationResult {
	calc := domain.RewardCalculationResult{
		Multipliers: make(map[string]float64),
	}

	if reason, ok := structuralDisqualifier(result); !ok {
		calc.Reason = reason
		return calc
	}

	calc.BaseReward = baseReward(result)

	total := calc.BaseReward

	global := econ.RewardMultiplier
	if global <= 0 {
		global = 1
	}
	calc.Multipliers[MultiplierGlobal] = global
	total *= global

	dim := diminishingFactor(stats)
	calc.Multipliers[MultiplierDiminishing] = dim
	total *= dim

	for _, event := range sortedByID(events) {
		if !eventQualifies(result, event) {
			continue
		}
		calc.Multipliers[MultiplierEventPrefix+event.ID] = event.BonusMultiplier
		total *= event.BonusMultiplier
	}

	throttle := throttleScale(econ.TodayPoolUsed, policy)
	calc.Multipliers[MultiplierThrottle] = throttle
	total *= throttle

	if math.IsNaN(total) || math.IsInf(total, 0) || total < 0 {
		calc.TotalFMH = 0
		calc.Reason = ReasonInvalidTotal
		return calc
	}
	calc.TotalFMH = total

	if econ.Stopped(string(result.GameConfig.Difficulty), econ.FetchedAt) {
		calc.Reason = ReasonEmergencyStop
		return calc
	}

	if total <= 0 {
		calc.Reason = ReasonZeroTotal
		return calc
	}

	calc.CanClaim = true
	return calc
}

// structuralDisqualifier returns (reason, false) when the result cannot
// qualify regardless of economics
func structuralDisqualifier(result domain.GameResult) (string, bool) {
	if !result.IsWon {
		return ReasonLoss, false
	}
	if result.FinalScore <= 0 {
		return ReasonZeroScore, false
	}
	cfg := result.GameConfig
	if !cfg.Difficulty.IsValid() || cfg.Width <= 0 || cfg.Height <= 0 ||
		cfg.Mines <= 0 || cfg.Mines >= cfg.Width*cfg.Height {
		return ReasonMalformedConfig, false
	}
	return "", true
}

// baseReward combines difficulty, score, and duration. Higher score and
// lower duration both raise the base, monotonically.
func baseReward(result domain.GameResult) float64 {
	base := difficultyBase[result.GameConfig.Difficulty]
	scoreFactor := 1 + float64(result.FinalScore)/ScoreNormalizer
	speedFactor := 1 + ParDurationSeconds/(result.GameDuration+ParDurationSeconds)
	return base * scoreFactor * speedFactor
}

// diminishingFactor scales rewards down for players on long win streaks
// or with an unusually high recent win rate, discouraging rapid
// repeated low-effort wins. Unknown players pay out in full.
func diminishingFactor(stats *domain.PlayerStats) float64 {
	if stats == nil {
		return 1
	}

	streakFactor := 1.0
	if over := stats.WinStreak - StreakGrace; over > 0 {
		streakFactor = 1 / (1 + StreakPenalty*float64(over))
	}

	winRateFactor := 1.0
	if stats.RecentWinRate > WinRateSoftCap {
		winRateFactor = 1 - (stats.RecentWinRate - WinRateSoftCap)
	}

	factor := streakFactor * winRateFactor
	if factor < DiminishingFloor {
		factor = DiminishingFloor
	}
	return factor
}

// throttleScale degrades payouts proportionally once pool usage crosses
// the threshold, reaching zero at full budget. Never negative.
func throttleScale(poolUsed float64, policy Policy) float64 {
	if policy.DailyPoolBudget <= 0 {
		return 1
	}
	usage := poolUsed / policy.DailyPoolBudget
	switch {
	case usage >= 1:
		return 0
	case usage > policy.ThrottleThreshold:
		return (1 - usage) / (1 - policy.ThrottleThreshold)
	default:
		return 1
	}
}

func sortedByID(events []domain.SeasonalEvent) []domain.SeasonalEvent {
	out := make([]domain.SeasonalEvent, len(events))
	copy(out, events)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
