package economic

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/fmhgames/reward-service/internal/domain"
	"github.com/fmhgames/reward-service/internal/logger"
	"github.com/fmhgames/reward-service/internal/metrics"
	"github.com/fmhgames/reward-service/internal/repository"
)

const snapshotKey = "economic_snapshot"

// Provider supplies the cached, time-windowed economic snapshot that
// reward computation reads. Reads never fail: when the source of truth
// is unreachable the provider degrades to a conservative fallback.
type Provider interface {
	// Get returns the current snapshot. Concurrent callers within the
	// TTL window observe the same cached value.
	Get(ctx context.Context) domain.EconomicState

	// Invalidate drops the cached snapshot so the next Get refetches.
	// Executed balance actions call this to take effect immediately.
	Invalidate()
}

// Config holds provider tunables
type Config struct {
	TTL                 time.Duration
	FetchTimeout        time.Duration
	DailyPoolBudget     float64
	FallbackActiveUsers int
}

type provider struct {
	repo  repository.Economy
	cache *expirable.LRU[string, *domain.EconomicState]
	cfg   Config

	// refreshMu makes the refresh single-writer; readers that lose the
	// race reuse the winner's snapshot via the cache.
	refreshMu sync.Mutex
	now       func() time.Time
}

// NewProvider creates an economic state provider with a TTL cache
func NewProvider(repo repository.Economy, cfg Config) Provider {
	return &provider{
		repo:  repo,
		cache: expirable.NewLRU[string, *domain.EconomicState](1, nil, cfg.TTL),
		cfg:   cfg,
		now:   time.Now,
	}
}

func (p *provider) Get(ctx context.Context) domain.EconomicState {
	if snap, ok := p.cache.Get(snapshotKey); ok {
		return *snap
	}

	p.refreshMu.Lock()
	defer p.refreshMu.Unlock()

	// Another caller may have refreshed while we waited for the lock
	if snap, ok := p.cache.Get(snapshotKey); ok {
		return *snap
	}

	snap := p.refresh(ctx)
	p.cache.Add(snapshotKey, snap)
	return *snap
}

func (p *provider) Invalidate() {
	p.cache.Remove(snapshotKey)
}

// refresh fetches from the source of truth with a bounded timeout,
// falling back to a scarce-pool snapshot on any failure. Reward
// computation degrades smoothly instead of crashing or overpaying.
func (p *provider) refresh(ctx context.Context) *domain.EconomicState {
	log := logger.FromContext(ctx)

	fetchCtx, cancel := context.WithTimeout(ctx, p.cfg.FetchTimeout)
	defer cancel()

	snap, err := p.repo.FetchSnapshot(fetchCtx)
	if err != nil {
		log.Warn("Economic snapshot fetch failed, using fallback", "error", err)
		metrics.EconomicFetchFailures.Inc()
		return p.fallback()
	}

	flags, err := p.repo.GetStopFlags(fetchCtx, p.now())
	if err != nil {
		log.Warn("Stop flag fetch failed, using fallback", "error", err)
		metrics.EconomicFetchFailures.Inc()
		return p.fallback()
	}
	snap.StopFlags = flags
	snap.FetchedAt = p.now()
	snap.Fallback = false

	metrics.PoolUsed.Set(snap.TodayPoolUsed)
	return snap
}

// fallback treats the pool as nearly spent and activity as low, so
// payouts throttle hard while telemetry is dark.
func (p *provider) fallback() *domain.EconomicState {
	return &domain.EconomicState{
		TodayPoolUsed:    p.cfg.DailyPoolBudget * 0.9,
		DailyActiveUsers: p.cfg.FallbackActiveUsers,
		GlobalWinRate:    0.5,
		TotalSupply:      0,
		RewardMultiplier: 1.0,
		FetchedAt:        p.now(),
		Fallback:         true,
	}
}
