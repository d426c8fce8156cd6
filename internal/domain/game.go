package domain

// Difficulty identifies a board difficulty preset
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// ValidDifficulties lists every accepted difficulty preset
var ValidDifficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExpert}

// IsValid reports whether the difficulty is a known preset
func (d Difficulty) IsValid() bool {
	for _, v := range ValidDifficulties {
		if d == v {
			return true
		}
	}
	return false
}

// GameConfig describes the board the session was played on
type GameConfig struct {
	Width      int        `json:"width" validate:"required,min=1,max=100"`
	Height     int        `json:"height" validate:"required,min=1,max=100"`
	Mines      int        `json:"mines" validate:"required,min=1"`
	Difficulty Difficulty `json:"difficulty" validate:"required"`
}

// GameResult is the client-submitted outcome of a completed session.
// It is immutable once submitted and never trusted without signature
// verification plus plausibility checks.
type GameResult struct {
	PlayerAddress  string     `json:"playerAddress" validate:"required,min=8,max=128"`
	GameID         string     `json:"gameId" validate:"required,min=8,max=128"`
	IsWon          bool       `json:"isWon"`
	FinalScore     int64      `json:"finalScore" validate:"min=0"`
	GameDuration   float64    `json:"gameDuration" validate:"min=0"` // seconds
	CellsRevealed  int        `json:"cellsRevealed" validate:"min=0"`
	FlagsUsed      int        `json:"flagsUsed" validate:"min=0"`
	MoveCount      int        `json:"moveCount" validate:"min=0"`
	FirstClickTime int64      `json:"firstClickTime"` // unix millis
	LastClickTime  int64      `json:"lastClickTime"`  // unix millis
	PauseCount     int        `json:"pauseCount" validate:"min=0"`
	PauseTime      float64    `json:"pauseTime" validate:"min=0"` // seconds
	HintsUsed      int        `json:"hintsUsed" validate:"min=0"`
	Efficiency     float64    `json:"efficiency" validate:"min=0"`
	GameConfig     GameConfig `json:"gameConfig" validate:"required"`
}

// SessionTelemetry carries the client-side measurements that ride along
// with a claim but are not part of the scored result itself.
type SessionTelemetry struct {
	DeviceFingerprint string  `json:"deviceFingerprint,omitempty" validate:"omitempty,max=128"`
	AvgLatencyMs      float64 `json:"avgLatencyMs,omitempty" validate:"omitempty,min=0"`
}

// PlayerStats holds rolling per-player aggregates. Owned by the
// persistence layer; the reward and risk engines only read it.
type PlayerStats struct {
	PlayerAddress string  `json:"playerAddress"`
	WinStreak     int     `json:"winStreak"`
	LifetimeGames int     `json:"lifetimeGames"`
	RecentWinRate float64 `json:"recentWinRate"` // 0-1 over the recent window
	AvgEfficiency float64 `json:"avgEfficiency"`
}
