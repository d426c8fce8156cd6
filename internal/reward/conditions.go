package reward

import "github.com/fmhgames/reward-service/internal/domain"

// resultField resolves a condition field name against the game result.
// Boolean fields map to 1/0. Unknown fields resolve false so an event
// with a typo'd condition never grants its bonus.
func resultField(result domain.GameResult, field string) (float64, bool) {
	switch field {
	case "finalScore":
		return float64(result.FinalScore), true
	case "gameDuration":
		return result.GameDuration, true
	case "cellsRevealed":
		return float64(result.CellsRevealed), true
	case "flagsUsed":
		return float64(result.FlagsUsed), true
	case "moveCount":
		return float64(result.MoveCount), true
	case "hintsUsed":
		return float64(result.HintsUsed), true
	case "efficiency":
		return result.Efficiency, true
	case "pauseCount":
		return float64(result.PauseCount), true
	case "pauseTime":
		return result.PauseTime, true
	case "isWon":
		if result.IsWon {
			return 1, true
		}
		return 0, true
	case "width":
		return float64(result.GameConfig.Width), true
	case "height":
		return float64(result.GameConfig.Height), true
	case "mines":
		return float64(result.GameConfig.Mines), true
	}
	return 0, false
}

// EvaluateCondition applies one structured predicate to the result
func EvaluateCondition(result domain.GameResult, cond domain.EventCondition) bool {
	value, ok := resultField(result, cond.Field)
	if !ok {
		return false
	}

	switch cond.Op {
	case domain.OpEq:
		return value == cond.Value
	case domain.OpNe:
		return value != cond.Value
	case domain.OpGt:
		return value > cond.Value
	case domain.OpGte:
		return value >= cond.Value
	case domain.OpLt:
		return value < cond.Value
	case domain.OpLte:
		return value <= cond.Value
	}
	return false
}

// eventQualifies reports whether every condition of the event holds.
// An event with no conditions always qualifies.
func eventQualifies(result domain.GameResult, event domain.SeasonalEvent) bool {
	for _, cond := range event.Conditions {
		if !EvaluateCondition(result, cond) {
			return false
		}
	}
	return true
}
