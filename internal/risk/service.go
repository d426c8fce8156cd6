package risk

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fmhgames/reward-service/internal/domain"
	"github.com/fmhgames/reward-service/internal/logger"
	"github.com/fmhgames/reward-service/internal/repository"
)

// Service defines the risk engine: stateless session analysis, the
// persistent per-player profile fold, and the block/allow decision
type Service interface {
	// Detect analyzes one session's telemetry for suspicious signals.
	Detect(result domain.GameResult, stats *domain.PlayerStats, telemetry domain.SessionTelemetry) []domain.SuspiciousActivity

	// UpdateProfile folds new activities into the player's persisted
	// profile. The stored score only grows; decay is applied when the
	// profile is read for a decision, so a stale signal fades without
	// ever silently rewriting history.
	UpdateProfile(ctx context.Context, playerAddress string, activities []domain.SuspiciousActivity) (*domain.RiskProfile, error)

	// ShouldBlock renders the decision for the current claim.
	ShouldBlock(activities []domain.SuspiciousActivity, profile *domain.RiskProfile) domain.RiskDecision
}

// Config holds the tunable decision thresholds. The defaults shipped in
// config are illustrative, not derived from data.
type Config struct {
	HighConfidence float64       // single-activity block cutoff
	ScoreThreshold float64       // decayed profile score cutoff
	MinSessions    int           // flagged sessions needed for a profile block
	DecayHalfLife  time.Duration // half-life of activity weight
	HistoryLimit   int           // retained activities per profile
}

type service struct {
	repo         repository.RiskProfiles
	cfg          Config
	fingerprints *fingerprintTracker
	now          func() time.Time
}

// NewService creates a risk engine
func NewService(repo repository.RiskProfiles, cfg Config) Service {
	return &service{
		repo:         repo,
		cfg:          cfg,
		fingerprints: newFingerprintTracker(FingerprintWindow),
		now:          time.Now,
	}
}

func (s *service) Detect(result domain.GameResult, stats *domain.PlayerStats, telemetry domain.SessionTelemetry) []domain.SuspiciousActivity {
	return s.detect(result, stats, telemetry, s.now())
}

func (s *service) UpdateProfile(ctx context.Context, playerAddress string, activities []domain.SuspiciousActivity) (*domain.RiskProfile, error) {
	log := logger.FromContext(ctx)

	profile, err := s.repo.Load(ctx, playerAddress)
	if err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			return nil, fmt.Errorf("failed to load risk profile: %w", err)
		}
		if len(activities) == 0 {
			// Clean session for an unflagged player: nothing to persist
			return &domain.RiskProfile{PlayerAddress: playerAddress}, nil
		}
		profile = &domain.RiskProfile{PlayerAddress: playerAddress}
	}

	if len(activities) == 0 {
		return profile, nil
	}

	for _, activity := range activities {
		profile.Score += activity.Confidence
	}
	profile.FlaggedSessions++
	profile.Activities = append(profile.Activities, activities...)
	if len(profile.Activities) > s.cfg.HistoryLimit {
		profile.Activities = profile.Activities[len(profile.Activities)-s.cfg.HistoryLimit:]
	}
	profile.LastUpdated = s.now()

	if err := s.repo.Save(ctx, *profile); err != nil {
		return nil, fmt.Errorf("failed to save risk profile: %w", err)
	}

	log.Info(LogMsgProfileUpdated,
		"player", playerAddress,
		"score", profile.Score,
		"flagged_sessions", profile.FlaggedSessions,
		"new_activities", len(activities))

	return profile, nil
}

func (s *service) ShouldBlock(activities []domain.SuspiciousActivity, profile *domain.RiskProfile) domain.RiskDecision {
	// Tier one: a single high-confidence signal from this session
	for _, activity := range activities {
		if activity.Confidence >= s.cfg.HighConfidence {
			return domain.RiskDecision{ShouldBlock: true, Confidence: activity.Confidence}
		}
	}

	// Tier two: accumulated evidence sustained across sessions. Recent
	// activity weighs more than stale activity, so a one-off false
	// positive fades while slow-drip cheating compounds.
	if profile != nil && profile.FlaggedSessions >= s.cfg.MinSessions {
		effective := s.DecayedScore(profile, s.now())
		if effective >= s.cfg.ScoreThreshold {
			confidence := math.Min(0.99, 0.5+effective/(2*s.cfg.ScoreThreshold))
			return domain.RiskDecision{ShouldBlock: true, Confidence: confidence}
		}
	}

	return domain.RiskDecision{}
}

// DecayedScore sums the retained activity confidences with exponential
// time decay at the configured half-life.
func (s *service) DecayedScore(profile *domain.RiskProfile, now time.Time) float64 {
	if profile == nil || s.cfg.DecayHalfLife <= 0 {
		return 0
	}
	total := 0.0
	for _, activity := range profile.Activities {
		age := now.Sub(activity.DetectedAt)
		if age < 0 {
			age = 0
		}
		total += activity.Confidence * math.Exp2(-age.Seconds()/s.cfg.DecayHalfLife.Seconds())
	}
	return total
}
