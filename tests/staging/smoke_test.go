//go:build staging

package staging

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestEconomyState(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/api/v1/economy/state", nil)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}

	var state struct {
		DailyPoolBudget float64 `json:"daily_pool_budget"`
		PoolUsedPercent float64 `json:"pool_used_percent"`
	}
	if err := json.Unmarshal(body, &state); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if state.DailyPoolBudget <= 0 {
		t.Error("Expected a positive daily pool budget")
	}
	if state.PoolUsedPercent < 0 || state.PoolUsedPercent > 1 {
		t.Errorf("Expected pool usage in [0,1], got %f", state.PoolUsedPercent)
	}
}

func TestClaimRejectsUnsignedSubmission(t *testing.T) {
	// A claim without a valid signature must never pay out
	claim := map[string]interface{}{
		"gameResult": map[string]interface{}{
			"playerAddress": "0xstaging",
			"gameId":        "staging-game",
			"isWon":         true,
			"finalScore":    100,
			"gameDuration":  60,
			"gameConfig": map[string]interface{}{
				"width": 9, "height": 9, "mines": 10, "difficulty": "easy",
			},
		},
		"timestamp": 1,
		"nonce":     "staging-nonce",
		"signature": "0000000000000000000000000000000000000000000000000000000000000000",
	}

	resp, _ := makeRequest(t, "POST", "/api/v1/rewards/claim", claim)

	if resp.StatusCode != http.StatusBadRequest && resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 400 or 401 for an unsigned claim, got %d", resp.StatusCode)
	}
}

func TestMetricsExposed(t *testing.T) {
	resp, body := makeRequest(t, "GET", "/metrics", nil)

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", resp.StatusCode)
	}
	if len(body) == 0 {
		t.Error("Expected metrics output")
	}
}
