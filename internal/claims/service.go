package claims

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fmhgames/reward-service/internal/auth"
	"github.com/fmhgames/reward-service/internal/domain"
	"github.com/fmhgames/reward-service/internal/economic"
	"github.com/fmhgames/reward-service/internal/logger"
	"github.com/fmhgames/reward-service/internal/metrics"
	"github.com/fmhgames/reward-service/internal/repository"
	"github.com/fmhgames/reward-service/internal/reward"
	"github.com/fmhgames/reward-service/internal/risk"
	"github.com/fmhgames/reward-service/internal/settlement"
)

// Submission is a full reward claim as received from a client
type Submission struct {
	GameResult  domain.GameResult
	PlayerStats *domain.PlayerStats // client-supplied baseline, used only when no persisted stats exist
	Telemetry   domain.SessionTelemetry
	Timestamp   int64
	Nonce       string
	Signature   string
}

// Outcome is the settled result of a claim submission
type Outcome struct {
	Reward         domain.RewardCalculationResult
	CanClaim       bool
	ClaimSignature string
	ExpiresAt      *time.Time
	RiskBlocked    bool
}

// Service runs the verification and settlement pipeline:
// authenticate -> economic snapshot -> compute -> risk -> settle
type Service interface {
	SubmitClaim(ctx context.Context, sub Submission) (*Outcome, error)
}

type service struct {
	authenticator auth.Authenticator
	economic      economic.Provider
	riskEngine    risk.Service
	gate          settlement.Gate
	seasonal      repository.Seasonal
	stats         repository.PlayerStats
	economy       repository.Economy
	policy        reward.Policy
	now           func() time.Time
}

// NewService wires the claim pipeline
func NewService(authenticator auth.Authenticator, provider economic.Provider, riskEngine risk.Service, gate settlement.Gate, seasonal repository.Seasonal, stats repository.PlayerStats, economy repository.Economy, policy reward.Policy) Service {
	return &service{
		authenticator: authenticator,
		economic:      provider,
		riskEngine:    riskEngine,
		gate:          gate,
		seasonal:      seasonal,
		stats:         stats,
		economy:       economy,
		policy:        policy,
		now:           time.Now,
	}
}

func (s *service) SubmitClaim(ctx context.Context, sub Submission) (*Outcome, error) {
	log := logger.FromContext(ctx)
	result := sub.GameResult

	claim := auth.Claim{
		PlayerAddress: result.PlayerAddress,
		GameID:        result.GameID,
		FinalScore:    result.FinalScore,
		Timestamp:     sub.Timestamp,
		Nonce:         sub.Nonce,
		Signature:     sub.Signature,
	}
	if err := s.authenticator.VerifyClaim(ctx, claim); err != nil {
		metrics.ClaimsRejected.WithLabelValues(rejectionReason(err)).Inc()
		return nil, err
	}

	econ := s.economic.Get(ctx)

	now := s.now()
	events, err := s.seasonal.ActiveEvents(ctx, now)
	if err != nil {
		// Events sweeten rewards; losing them degrades, never fails
		log.Warn("Failed to load seasonal events, computing without bonuses", "error", err)
		events = nil
	}

	stats := s.loadStats(ctx, result.PlayerAddress, sub.PlayerStats)

	calc := reward.Compute(result, stats, econ, events, s.policy)

	outcome := &Outcome{Reward: calc, CanClaim: calc.CanClaim}

	// Risk scoring a loss is wasted work; it only runs when the claim
	// is otherwise payable.
	if calc.CanClaim {
		activities := s.riskEngine.Detect(result, stats, sub.Telemetry)
		profile, err := s.riskEngine.UpdateProfile(ctx, result.PlayerAddress, activities)
		if err != nil {
			return nil, fmt.Errorf("failed to update risk profile: %w", err)
		}
		decision := s.riskEngine.ShouldBlock(activities, profile)
		if decision.ShouldBlock {
			// Override the payout but keep the computed result and the
			// consumed nonce: both stay on record for audit.
			outcome.CanClaim = false
			outcome.RiskBlocked = true
			outcome.Reward.CanClaim = false
			outcome.Reward.Reason = SecurityBlockReason
			metrics.RiskBlocks.Inc()
			log.Warn("Reward blocked by risk engine",
				"player", result.PlayerAddress,
				"game_id", result.GameID,
				"confidence", decision.Confidence,
				"activities", len(activities))
		}
	}

	if outcome.CanClaim && calc.TotalFMH > 0 {
		entry, created, err := s.gate.Settle(ctx, result.PlayerAddress, result.GameID, calc.TotalFMH)
		if err != nil {
			return nil, fmt.Errorf("failed to settle reward: %w", err)
		}
		outcome.ClaimSignature = entry.ClaimSignature
		expiresAt := entry.ExpiresAt
		outcome.ExpiresAt = &expiresAt

		// A retried gameID hands back the original promise; the pool was
		// already charged when that promise was created, so only the
		// first creation increments usage.
		if created {
			if err := s.economy.IncrementPoolUsed(ctx, entry.RewardAmount); err != nil {
				// The promise is already signed; pool accounting catches
				// up on the next snapshot refresh
				log.Error("Failed to increment pool usage", "error", err, "amount", entry.RewardAmount)
			}
		}
	}

	metrics.ClaimsSubmitted.WithLabelValues(claimStatus(outcome)).Inc()
	return outcome, nil
}

// loadStats prefers the persisted aggregates and falls back to the
// client-submitted baseline only for players the store has never seen.
func (s *service) loadStats(ctx context.Context, playerAddress string, submitted *domain.PlayerStats) *domain.PlayerStats {
	stats, err := s.stats.Load(ctx, playerAddress)
	if err != nil {
		if !errors.Is(err, domain.ErrStatsNotFound) {
			logger.FromContext(ctx).Warn("Failed to load player stats", "player", playerAddress, "error", err)
		}
		return submitted
	}
	return stats
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrExpiredTimestamp):
		return "expired_timestamp"
	case errors.Is(err, domain.ErrReplayedNonce):
		return "replayed_nonce"
	case errors.Is(err, domain.ErrInvalidSignature):
		return "invalid_signature"
	default:
		return "internal"
	}
}

func claimStatus(outcome *Outcome) string {
	switch {
	case outcome.RiskBlocked:
		return "risk_blocked"
	case outcome.CanClaim:
		return "payable"
	default:
		return "not_payable"
	}
}

// SecurityBlockReason replaces the computed reason when the risk engine
// blocks a payout. Deliberately unspecific.
const SecurityBlockReason = "reward withheld pending security review"
