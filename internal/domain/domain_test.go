package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdminUserHasPermission(t *testing.T) {
	tests := []struct {
		name  string
		perms []string
		scope string
		want  bool
	}{
		{"exact match", []string{"economic.mint"}, "economic.mint", true},
		{"no match", []string{"economic.mint"}, "economic.stop", false},
		{"family wildcard", []string{"economic.*"}, "economic.stop", true},
		{"family wildcard other family", []string{"economic.*"}, "risk.reset", false},
		{"global wildcard", []string{"*"}, "risk.reset", true},
		{"empty permissions", nil, "economic.mint", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user := AdminUser{Permissions: tt.perms}
			assert.Equal(t, tt.want, user.HasPermission(tt.scope))
		})
	}
}

func TestEconomicStateStopped(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	expired := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	t.Run("global flag halts every scope", func(t *testing.T) {
		state := EconomicState{StopFlags: []StopFlag{{Scope: ""}}}
		assert.True(t, state.Stopped("hard", now))
		assert.True(t, state.Stopped("", now))
	})

	t.Run("scoped flag halts only its scope", func(t *testing.T) {
		state := EconomicState{StopFlags: []StopFlag{{Scope: "easy"}}}
		assert.True(t, state.Stopped("easy", now))
		assert.False(t, state.Stopped("hard", now))
	})

	t.Run("expired flag is inert", func(t *testing.T) {
		state := EconomicState{StopFlags: []StopFlag{{Scope: "", ExpiresAt: &expired}}}
		assert.False(t, state.Stopped("hard", now))
	})

	t.Run("unexpired flag still holds", func(t *testing.T) {
		state := EconomicState{StopFlags: []StopFlag{{Scope: "", ExpiresAt: &future}}}
		assert.True(t, state.Stopped("hard", now))
	})
}

func TestSeasonalEventActiveAt(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	event := SeasonalEvent{IsActive: true, StartTime: start, EndTime: end}

	assert.True(t, event.ActiveAt(start))
	assert.True(t, event.ActiveAt(start.Add(time.Hour)))
	assert.False(t, event.ActiveAt(end))
	assert.False(t, event.ActiveAt(start.Add(-time.Second)))

	event.IsActive = false
	assert.False(t, event.ActiveAt(start.Add(time.Hour)))
}

func TestDifficultyIsValid(t *testing.T) {
	for _, d := range ValidDifficulties {
		assert.True(t, d.IsValid())
	}
	assert.False(t, Difficulty("nightmare").IsValid())
	assert.False(t, Difficulty("").IsValid())
}
