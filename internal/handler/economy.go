package handler

import (
	"net/http"

	"github.com/fmhgames/reward-service/internal/domain"
	"github.com/fmhgames/reward-service/internal/economic"
)

// EconomyStateResponse exposes the cached economic snapshot along with
// the pool budget so clients can show remaining capacity.
type EconomyStateResponse struct {
	State           domain.EconomicState `json:"state"`
	DailyPoolBudget float64              `json:"daily_pool_budget"`
	PoolUsedPercent float64              `json:"pool_used_percent"`
}

// HandleGetEconomyState returns the current economic snapshot
// @Summary Get economic state
// @Description Returns the cached economic snapshot used for reward computation
// @Tags economy
// @Produce json
// @Success 200 {object} EconomyStateResponse
// @Router /economy/state [get]
func HandleGetEconomyState(provider economic.Provider, dailyPoolBudget float64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := provider.Get(r.Context())

		usedPercent := 0.0
		if dailyPoolBudget > 0 {
			usedPercent = state.TodayPoolUsed / dailyPoolBudget
		}

		respondJSON(w, http.StatusOK, EconomyStateResponse{
			State:           state,
			DailyPoolBudget: dailyPoolBudget,
			PoolUsedPercent: usedPercent,
		})
	}
}
