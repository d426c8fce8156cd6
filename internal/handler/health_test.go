package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmhgames/reward-service/internal/domain"
)

// stubPool satisfies database.Pool for readiness tests
type stubPool struct {
	pingErr error
}

func (s *stubPool) Ping(ctx context.Context) error { return s.pingErr }
func (s *stubPool) Close()                         {}

func TestHandleHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleHealthz()(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestHandleReadyz(t *testing.T) {
	t.Run("ready when the database answers", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleReadyz(&stubPool{})(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unavailable when the database is down", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleReadyz(&stubPool{pingErr: errors.New("dial tcp: refused")})(rec,
			httptest.NewRequest(http.MethodGet, "/readyz", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var resp HealthResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "unavailable", resp.Status)
		// The dial error itself stays out of the response
		assert.NotContains(t, resp.Message, "dial tcp")
	})
}

func TestHandleVersion(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleVersion()(rec, httptest.NewRequest(http.MethodGet, "/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp VersionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Version)
	assert.NotEmpty(t, resp.GoVersion)
}

// economyStub serves a fixed snapshot
type economyStub struct {
	state domain.EconomicState
}

func (s *economyStub) Get(ctx context.Context) domain.EconomicState { return s.state }
func (s *economyStub) Invalidate()                                  {}

func TestHandleGetEconomyState(t *testing.T) {
	provider := &economyStub{state: domain.EconomicState{
		TodayPoolUsed:    25000,
		DailyActiveUsers: 1200,
		RewardMultiplier: 1.0,
	}}

	rec := httptest.NewRecorder()
	HandleGetEconomyState(provider, 100000)(rec, httptest.NewRequest(http.MethodGet, "/api/v1/economy/state", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp EconomyStateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 25000.0, resp.State.TodayPoolUsed)
	assert.Equal(t, 100000.0, resp.DailyPoolBudget)
	assert.InDelta(t, 0.25, resp.PoolUsedPercent, 0.0001)
}
