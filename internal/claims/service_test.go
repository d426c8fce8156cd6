package claims

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fmhgames/reward-service/internal/auth"
	"github.com/fmhgames/reward-service/internal/domain"
	"github.com/fmhgames/reward-service/internal/reward"
)

// MockAuthenticator
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) VerifyClaim(ctx context.Context, claim auth.Claim) error {
	args := m.Called(ctx, claim)
	return args.Error(0)
}

// MockRiskService
type MockRiskService struct {
	mock.Mock
}

func (m *MockRiskService) Detect(result domain.GameResult, stats *domain.PlayerStats, telemetry domain.SessionTelemetry) []domain.SuspiciousActivity {
	args := m.Called(result, stats, telemetry)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.SuspiciousActivity)
}

func (m *MockRiskService) UpdateProfile(ctx context.Context, playerAddress string, activities []domain.SuspiciousActivity) (*domain.RiskProfile, error) {
	args := m.Called(ctx, playerAddress, activities)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RiskProfile), args.Error(1)
}

func (m *MockRiskService) ShouldBlock(activities []domain.SuspiciousActivity, profile *domain.RiskProfile) domain.RiskDecision {
	args := m.Called(activities, profile)
	return args.Get(0).(domain.RiskDecision)
}

// MockGate
type MockGate struct {
	mock.Mock
}

func (m *MockGate) Settle(ctx context.Context, playerAddress, gameID string, amount float64) (*domain.PendingReward, bool, error) {
	args := m.Called(ctx, playerAddress, gameID, amount)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.PendingReward), args.Bool(1), args.Error(2)
}

func (m *MockGate) VerifyPayoutSignature(entry domain.PendingReward) bool {
	args := m.Called(entry)
	return args.Bool(0)
}

// MockSeasonalRepository
type MockSeasonalRepository struct {
	mock.Mock
}

func (m *MockSeasonalRepository) ActiveEvents(ctx context.Context, now time.Time) ([]domain.SeasonalEvent, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeasonalEvent), args.Error(1)
}

// MockStatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) Load(ctx context.Context, playerAddress string) (*domain.PlayerStats, error) {
	args := m.Called(ctx, playerAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlayerStats), args.Error(1)
}

// MockEconomyRepository covers the one method the pipeline calls
type MockEconomyRepository struct {
	mock.Mock
}

func (m *MockEconomyRepository) FetchSnapshot(ctx context.Context) (*domain.EconomicState, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EconomicState), args.Error(1)
}

func (m *MockEconomyRepository) IncrementPoolUsed(ctx context.Context, amount float64) error {
	args := m.Called(ctx, amount)
	return args.Error(0)
}

func (m *MockEconomyRepository) AdjustPoolBalance(ctx context.Context, pool string, amount float64) (float64, error) {
	args := m.Called(ctx, pool, amount)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockEconomyRepository) SetRewardMultiplier(ctx context.Context, multiplier float64) error {
	args := m.Called(ctx, multiplier)
	return args.Error(0)
}

func (m *MockEconomyRepository) GetRewardMultiplier(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockEconomyRepository) SetStopFlag(ctx context.Context, flag domain.StopFlag) error {
	args := m.Called(ctx, flag)
	return args.Error(0)
}

func (m *MockEconomyRepository) ClearStopFlag(ctx context.Context, scope string) error {
	args := m.Called(ctx, scope)
	return args.Error(0)
}

func (m *MockEconomyRepository) GetStopFlags(ctx context.Context, now time.Time) ([]domain.StopFlag, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StopFlag), args.Error(1)
}

// stubProvider serves a fixed snapshot without caching
type stubProvider struct {
	state domain.EconomicState
}

func (s *stubProvider) Get(ctx context.Context) domain.EconomicState { return s.state }
func (s *stubProvider) Invalidate()                                  {}

type pipeline struct {
	authenticator *MockAuthenticator
	riskEngine    *MockRiskService
	gate          *MockGate
	seasonal      *MockSeasonalRepository
	stats         *MockStatsRepository
	economy       *MockEconomyRepository
	svc           Service
}

func newPipeline() *pipeline {
	p := &pipeline{
		authenticator: new(MockAuthenticator),
		riskEngine:    new(MockRiskService),
		gate:          new(MockGate),
		seasonal:      new(MockSeasonalRepository),
		stats:         new(MockStatsRepository),
		economy:       new(MockEconomyRepository),
	}
	provider := &stubProvider{state: domain.EconomicState{
		TodayPoolUsed:    10000,
		DailyActiveUsers: 500,
		GlobalWinRate:    0.4,
		RewardMultiplier: 1.0,
	}}
	p.svc = NewService(p.authenticator, provider, p.riskEngine, p.gate, p.seasonal, p.stats, p.economy,
		reward.Policy{DailyPoolBudget: 100000, ThrottleThreshold: 0.8})
	return p
}

func winningSubmission() Submission {
	return Submission{
		GameResult: domain.GameResult{
			PlayerAddress: "0xplayer1",
			GameID:        "game-1",
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
		},
		Timestamp: time.Now().Unix(),
		Nonce:     "nonce-0001",
		Signature: "aabbccdd",
	}
}

func (p *pipeline) expectCleanRisk() {
	p.riskEngine.On("Detect", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	p.riskEngine.On("UpdateProfile", mock.Anything, "0xplayer1", mock.Anything).
		Return(&domain.RiskProfile{PlayerAddress: "0xplayer1"}, nil)
	p.riskEngine.On("ShouldBlock", mock.Anything, mock.Anything).Return(domain.RiskDecision{})
}

func TestSubmitClaim_PayableClaimSettles(t *testing.T) {
	// ARRANGE
	p := newPipeline()
	sub := winningSubmission()
	expiresAt := time.Now().Add(time.Hour)

	p.authenticator.On("VerifyClaim", mock.Anything, mock.Anything).Return(nil)
	p.seasonal.On("ActiveEvents", mock.Anything, mock.Anything).Return([]domain.SeasonalEvent{}, nil)
	p.stats.On("Load", mock.Anything, "0xplayer1").Return(nil, domain.ErrStatsNotFound)
	p.expectCleanRisk()
	p.gate.On("Settle", mock.Anything, "0xplayer1", "game-1", mock.Anything).
		Return(&domain.PendingReward{
			PlayerAddress:  "0xplayer1",
			GameID:         "game-1",
			RewardAmount:   215.9,
			ClaimSignature: "deadbeef",
			ExpiresAt:      expiresAt,
		}, true, nil)
	p.economy.On("IncrementPoolUsed", mock.Anything, 215.9).Return(nil)

	// ACT
	outcome, err := p.svc.SubmitClaim(context.Background(), sub)

	// ASSERT
	require.NoError(t, err)
	assert.True(t, outcome.CanClaim)
	assert.Equal(t, "deadbeef", outcome.ClaimSignature)
	require.NotNil(t, outcome.ExpiresAt)
	assert.Equal(t, expiresAt, *outcome.ExpiresAt)
	assert.Greater(t, outcome.Reward.TotalFMH, 0.0)
	p.economy.AssertCalled(t, "IncrementPoolUsed", mock.Anything, 215.9)
}

func TestSubmitClaim_RetryChargesPoolOnce(t *testing.T) {
	// ARRANGE
	p := newPipeline()
	expiresAt := time.Now().Add(time.Hour)
	prior := &domain.PendingReward{
		PlayerAddress:  "0xplayer1",
		GameID:         "game-1",
		RewardAmount:   215.9,
		ClaimSignature: "deadbeef",
		ExpiresAt:      expiresAt,
	}

	p.authenticator.On("VerifyClaim", mock.Anything, mock.Anything).Return(nil)
	p.seasonal.On("ActiveEvents", mock.Anything, mock.Anything).Return([]domain.SeasonalEvent{}, nil)
	p.stats.On("Load", mock.Anything, "0xplayer1").Return(nil, domain.ErrStatsNotFound)
	p.expectCleanRisk()
	// The first submission mints the promise; the retry hands it back
	p.gate.On("Settle", mock.Anything, "0xplayer1", "game-1", mock.Anything).Return(prior, true, nil).Once()
	p.gate.On("Settle", mock.Anything, "0xplayer1", "game-1", mock.Anything).Return(prior, false, nil).Once()
	p.economy.On("IncrementPoolUsed", mock.Anything, 215.9).Return(nil).Once()

	first := winningSubmission()
	retry := winningSubmission()
	retry.Nonce = "nonce-0002"

	// ACT
	firstOutcome, err := p.svc.SubmitClaim(context.Background(), first)
	require.NoError(t, err)
	retryOutcome, err := p.svc.SubmitClaim(context.Background(), retry)
	require.NoError(t, err)

	// ASSERT: both carry the same signed promise, the pool is charged
	// exactly once for it
	assert.Equal(t, firstOutcome.ClaimSignature, retryOutcome.ClaimSignature)
	p.economy.AssertNumberOfCalls(t, "IncrementPoolUsed", 1)
}

func TestSubmitClaim_AuthFailureShortCircuits(t *testing.T) {
	p := newPipeline()
	p.authenticator.On("VerifyClaim", mock.Anything, mock.Anything).Return(domain.ErrInvalidSignature)

	_, err := p.svc.SubmitClaim(context.Background(), winningSubmission())

	assert.ErrorIs(t, err, domain.ErrInvalidSignature)
	p.seasonal.AssertNotCalled(t, "ActiveEvents", mock.Anything, mock.Anything)
	p.gate.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitClaim_LossSkipsRiskAndSettlement(t *testing.T) {
	p := newPipeline()
	sub := winningSubmission()
	sub.GameResult.IsWon = false

	p.authenticator.On("VerifyClaim", mock.Anything, mock.Anything).Return(nil)
	p.seasonal.On("ActiveEvents", mock.Anything, mock.Anything).Return([]domain.SeasonalEvent{}, nil)
	p.stats.On("Load", mock.Anything, "0xplayer1").Return(nil, domain.ErrStatsNotFound)

	outcome, err := p.svc.SubmitClaim(context.Background(), sub)

	require.NoError(t, err)
	assert.False(t, outcome.CanClaim)
	p.riskEngine.AssertNotCalled(t, "Detect", mock.Anything, mock.Anything, mock.Anything)
	p.gate.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitClaim_RiskBlockWithholdsPayout(t *testing.T) {
	p := newPipeline()
	activities := []domain.SuspiciousActivity{{
		Kind:       domain.ActivityTimingImpossible,
		Confidence: 0.95,
	}}

	p.authenticator.On("VerifyClaim", mock.Anything, mock.Anything).Return(nil)
	p.seasonal.On("ActiveEvents", mock.Anything, mock.Anything).Return([]domain.SeasonalEvent{}, nil)
	p.stats.On("Load", mock.Anything, "0xplayer1").Return(nil, domain.ErrStatsNotFound)
	p.riskEngine.On("Detect", mock.Anything, mock.Anything, mock.Anything).Return(activities)
	p.riskEngine.On("UpdateProfile", mock.Anything, "0xplayer1", activities).
		Return(&domain.RiskProfile{Score: 0.95, FlaggedSessions: 1}, nil)
	p.riskEngine.On("ShouldBlock", mock.Anything, mock.Anything).
		Return(domain.RiskDecision{ShouldBlock: true, Confidence: 0.95})

	outcome, err := p.svc.SubmitClaim(context.Background(), winningSubmission())

	require.NoError(t, err)
	assert.False(t, outcome.CanClaim)
	assert.True(t, outcome.RiskBlocked)
	assert.Equal(t, SecurityBlockReason, outcome.Reward.Reason)
	// The computed amount stays on record for audit
	assert.Greater(t, outcome.Reward.TotalFMH, 0.0)
	p.gate.AssertNotCalled(t, "Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitClaim_SeasonalFailureDegrades(t *testing.T) {
	p := newPipeline()
	expiresAt := time.Now().Add(time.Hour)

	p.authenticator.On("VerifyClaim", mock.Anything, mock.Anything).Return(nil)
	p.seasonal.On("ActiveEvents", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	p.stats.On("Load", mock.Anything, "0xplayer1").Return(nil, domain.ErrStatsNotFound)
	p.expectCleanRisk()
	p.gate.On("Settle", mock.Anything, "0xplayer1", "game-1", mock.Anything).
		Return(&domain.PendingReward{RewardAmount: 100, ClaimSignature: "sig", ExpiresAt: expiresAt}, true, nil)
	p.economy.On("IncrementPoolUsed", mock.Anything, 100.0).Return(nil)

	outcome, err := p.svc.SubmitClaim(context.Background(), winningSubmission())

	// Losing the bonuses never fails the claim
	require.NoError(t, err)
	assert.True(t, outcome.CanClaim)
}

func TestSubmitClaim_PersistedStatsPreferred(t *testing.T) {
	p := newPipeline()
	sub := winningSubmission()
	sub.PlayerStats = &domain.PlayerStats{LifetimeGames: 5}
	persisted := &domain.PlayerStats{PlayerAddress: "0xplayer1", LifetimeGames: 300}
	expiresAt := time.Now().Add(time.Hour)

	p.authenticator.On("VerifyClaim", mock.Anything, mock.Anything).Return(nil)
	p.seasonal.On("ActiveEvents", mock.Anything, mock.Anything).Return([]domain.SeasonalEvent{}, nil)
	p.stats.On("Load", mock.Anything, "0xplayer1").Return(persisted, nil)
	p.expectCleanRisk()
	p.gate.On("Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.PendingReward{RewardAmount: 100, ExpiresAt: expiresAt}, true, nil)
	p.economy.On("IncrementPoolUsed", mock.Anything, mock.Anything).Return(nil)

	_, err := p.svc.SubmitClaim(context.Background(), sub)

	require.NoError(t, err)
	// The risk engine sees the server-side aggregates, not the client's
	p.riskEngine.AssertCalled(t, "Detect", mock.Anything, persisted, mock.Anything)
}

func TestSubmitClaim_SettleFailurePropagates(t *testing.T) {
	p := newPipeline()

	p.authenticator.On("VerifyClaim", mock.Anything, mock.Anything).Return(nil)
	p.seasonal.On("ActiveEvents", mock.Anything, mock.Anything).Return([]domain.SeasonalEvent{}, nil)
	p.stats.On("Load", mock.Anything, "0xplayer1").Return(nil, domain.ErrStatsNotFound)
	p.expectCleanRisk()
	p.gate.On("Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, false, errors.New("insert failed"))

	_, err := p.svc.SubmitClaim(context.Background(), winningSubmission())

	require.Error(t, err)
	p.economy.AssertNotCalled(t, "IncrementPoolUsed", mock.Anything, mock.Anything)
}

func TestSubmitClaim_PoolAccountingFailureIsNotFatal(t *testing.T) {
	p := newPipeline()
	expiresAt := time.Now().Add(time.Hour)

	p.authenticator.On("VerifyClaim", mock.Anything, mock.Anything).Return(nil)
	p.seasonal.On("ActiveEvents", mock.Anything, mock.Anything).Return([]domain.SeasonalEvent{}, nil)
	p.stats.On("Load", mock.Anything, "0xplayer1").Return(nil, domain.ErrStatsNotFound)
	p.expectCleanRisk()
	p.gate.On("Settle", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.PendingReward{RewardAmount: 100, ClaimSignature: "sig", ExpiresAt: expiresAt}, true, nil)
	p.economy.On("IncrementPoolUsed", mock.Anything, mock.Anything).Return(errors.New("deadlock"))

	outcome, err := p.svc.SubmitClaim(context.Background(), winningSubmission())

	// The promise is already signed; accounting catches up later
	require.NoError(t, err)
	assert.True(t, outcome.CanClaim)
	assert.Equal(t, "sig", outcome.ClaimSignature)
}
