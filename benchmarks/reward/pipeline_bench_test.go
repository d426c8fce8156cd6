package reward_bench

import (
	"testing"
	"time"

	"github.com/fmhgames/reward-service/internal/domain"
	"github.com/fmhgames/reward-service/internal/reward"
	"github.com/fmhgames/reward-service/internal/risk"
)

// --- Fixtures (representative inputs, no I/O) ---

func benchResult() domain.GameResult {
	return domain.GameResult{
		PlayerAddress: "0xbenchplayer",
		GameID:        "bench-game",
		IsWon:         true,
		FinalScore:    1500,
		GameDuration:  45,
		CellsRevealed: 220,
		MoveCount:     230,
		Efficiency:    0.92,
		GameConfig: domain.GameConfig{
			Width: 16, Height: 16, Mines: 40,
			Difficulty: domain.DifficultyHard,
		},
	}
}

func benchEconomy() domain.EconomicState {
	return domain.EconomicState{
		TodayPoolUsed:    45000,
		DailyActiveUsers: 3000,
		GlobalWinRate:    0.4,
		RewardMultiplier: 1.0,
	}
}

func benchStats() *domain.PlayerStats {
	return &domain.PlayerStats{
		PlayerAddress: "0xbenchplayer",
		WinStreak:     4,
		LifetimeGames: 800,
		RecentWinRate: 0.55,
		AvgEfficiency: 0.6,
	}
}

func benchEvents() []domain.SeasonalEvent {
	now := time.Now()
	return []domain.SeasonalEvent{
		{
			ID: "evt-high-score", IsActive: true, BonusMultiplier: 1.5,
			StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour),
			Conditions: []domain.EventCondition{
				{Field: "finalScore", Op: domain.OpGt, Value: 1000},
			},
		},
		{
			ID: "evt-speed-run", IsActive: true, BonusMultiplier: 2.0,
			StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour),
			Conditions: []domain.EventCondition{
				{Field: "gameDuration", Op: domain.OpLt, Value: 60},
			},
		},
	}
}

var benchPolicy = reward.Policy{DailyPoolBudget: 100000, ThrottleThreshold: 0.8}

func BenchmarkCompute(b *testing.B) {
	result := benchResult()
	econ := benchEconomy()
	stats := benchStats()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reward.Compute(result, stats, econ, nil, benchPolicy)
	}
}

func BenchmarkCompute_WithSeasonalEvents(b *testing.B) {
	result := benchResult()
	econ := benchEconomy()
	stats := benchStats()
	events := benchEvents()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		reward.Compute(result, stats, econ, events, benchPolicy)
	}
}

func BenchmarkDetect(b *testing.B) {
	svc := risk.NewService(nil, risk.Config{
		HighConfidence: 0.85,
		ScoreThreshold: 1.5,
		MinSessions:    3,
		DecayHalfLife:  24 * time.Hour,
		HistoryLimit:   20,
	})
	result := benchResult()
	stats := benchStats()
	telemetry := domain.SessionTelemetry{
		DeviceFingerprint: "bench-device",
		AvgLatencyMs:      80,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		svc.Detect(result, stats, telemetry)
	}
}
