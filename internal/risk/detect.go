package risk

import (
	"sync"
	"time"

	"github.com/fmhgames/reward-service/internal/domain"
)

// fingerprintTracker remembers which player addresses recently presented
// each device fingerprint, so one device driving many addresses shows up
// as a collision. Windowed; stale sightings age out on access.
type fingerprintTracker struct {
	mu        sync.Mutex
	sightings map[string]map[string]time.Time // fingerprint -> address -> last seen
	window    time.Duration
}

func newFingerprintTracker(window time.Duration) *fingerprintTracker {
	return &fingerprintTracker{
		sightings: make(map[string]map[string]time.Time),
		window:    window,
	}
}

// observe records the sighting and returns how many distinct addresses
// have presented this fingerprint inside the window, including this one.
func (t *fingerprintTracker) observe(fingerprint, address string, now time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	addrs, ok := t.sightings[fingerprint]
	if !ok {
		addrs = make(map[string]time.Time)
		t.sightings[fingerprint] = addrs
	}

	cutoff := now.Add(-t.window)
	for addr, seen := range addrs {
		if seen.Before(cutoff) {
			delete(addrs, addr)
		}
	}

	addrs[address] = now
	return len(addrs)
}

// detect runs the stateless session analyzers plus the fingerprint
// collision check and returns every signal with its confidence.
func (s *service) detect(result domain.GameResult, stats *domain.PlayerStats, telemetry domain.SessionTelemetry, now time.Time) []domain.SuspiciousActivity {
	var found []domain.SuspiciousActivity

	add := func(kind domain.ActivityKind, confidence float64, evidence map[string]interface{}) {
		found = append(found, domain.SuspiciousActivity{
			Kind:       kind,
			Confidence: confidence,
			Evidence:   evidence,
			DetectedAt: now,
		})
	}

	avgInterval := 0.0
	if result.MoveCount > 0 {
		avgInterval = result.GameDuration / float64(result.MoveCount)
	}

	// Sustained superhuman move timing
	if result.MoveCount > 0 && avgInterval < MinHumanMoveInterval {
		confidence := ConfidenceTimingBase + (MinHumanMoveInterval-avgInterval)/MinHumanMoveInterval*(ConfidenceTimingMax-ConfidenceTimingBase)
		add(domain.ActivityTimingImpossible, confidence, map[string]interface{}{
			"avg_interval_s": avgInterval,
			"move_count":     result.MoveCount,
			"duration_s":     result.GameDuration,
		})
	}

	// Claimed duration inconsistent with the click timestamps
	if result.LastClickTime > result.FirstClickTime {
		clickSpan := float64(result.LastClickTime-result.FirstClickTime) / 1000
		if result.GameDuration+result.PauseTime < clickSpan*0.5 {
			add(domain.ActivityTimingImpossible, ConfidenceClickSpan, map[string]interface{}{
				"click_span_s": clickSpan,
				"duration_s":   result.GameDuration,
				"pause_s":      result.PauseTime,
			})
		}
	}

	// More pause time than game time
	if result.PauseTime > result.GameDuration && result.GameDuration > 0 {
		add(domain.ActivityPauseAbuse, ConfidencePauseAbuse, map[string]interface{}{
			"pause_s":    result.PauseTime,
			"duration_s": result.GameDuration,
		})
	}

	// Sustained move rate beyond the plausible ceiling
	if result.GameDuration > 0 {
		rate := float64(result.MoveCount) / result.GameDuration
		if rate > MaxPlausibleMoveRate {
			add(domain.ActivityMoveRateAnomaly, ConfidenceMoveRate, map[string]interface{}{
				"moves_per_second": rate,
			})
		}
	}

	// Efficiency far above the player's own history
	if stats != nil && stats.LifetimeGames >= MinGamesForBaseline && stats.AvgEfficiency > 0 &&
		result.Efficiency > stats.AvgEfficiency*EfficiencyOutlierFactor {
		add(domain.ActivityEfficiencyOutlier, ConfidenceEfficiency, map[string]interface{}{
			"efficiency":     result.Efficiency,
			"historical_avg": stats.AvgEfficiency,
		})
	}

	// One device fingerprint across multiple player addresses
	if telemetry.DeviceFingerprint != "" {
		if n := s.fingerprints.observe(telemetry.DeviceFingerprint, result.PlayerAddress, now); n > 1 {
			add(domain.ActivityFingerprintCollision, ConfidenceFingerprint, map[string]interface{}{
				"distinct_addresses": n,
			})
		}
	}

	// Move timing faster than the claimed network latency allows
	if telemetry.AvgLatencyMs > 0 && result.MoveCount > 0 {
		avgIntervalMs := avgInterval * 1000
		if avgIntervalMs < telemetry.AvgLatencyMs*0.5 {
			add(domain.ActivityLatencyInconsistency, ConfidenceLatency, map[string]interface{}{
				"avg_interval_ms": avgIntervalMs,
				"avg_latency_ms":  telemetry.AvgLatencyMs,
			})
		}
	}

	return found
}
