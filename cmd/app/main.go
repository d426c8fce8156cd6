package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fmhgames/reward-service/internal/adminauth"
	"github.com/fmhgames/reward-service/internal/auth"
	"github.com/fmhgames/reward-service/internal/balance"
	"github.com/fmhgames/reward-service/internal/claims"
	"github.com/fmhgames/reward-service/internal/config"
	"github.com/fmhgames/reward-service/internal/database"
	"github.com/fmhgames/reward-service/internal/database/postgres"
	"github.com/fmhgames/reward-service/internal/economic"
	"github.com/fmhgames/reward-service/internal/reward"
	"github.com/fmhgames/reward-service/internal/risk"
	"github.com/fmhgames/reward-service/internal/scheduler"
	"github.com/fmhgames/reward-service/internal/server"
	"github.com/fmhgames/reward-service/internal/settlement"
	"github.com/fmhgames/reward-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)

	adminUsers, err := adminauth.ParseSeed(cfg.AdminTokens)
	if err != nil {
		slog.Error("Failed to parse admin tokens", "error", err)
		os.Exit(1)
	}
	registry := adminauth.NewRegistry(adminUsers)

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdleTime, cfg.DBMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// Repositories
	nonceRepo := postgres.NewNonceRepository(dbPool)
	economyRepo := postgres.NewEconomyRepository(dbPool)
	seasonalRepo := postgres.NewSeasonalRepository(dbPool)
	rewardRepo := postgres.NewPendingRewardRepository(dbPool)
	balanceRepo := postgres.NewBalanceActionRepository(dbPool)
	riskRepo := postgres.NewRiskProfileRepository(dbPool)
	statsRepo := postgres.NewPlayerStatsRepository(dbPool)

	// Services
	authenticator := auth.NewAuthenticator(cfg.ClaimSecret, nonceRepo, cfg.TimestampWindow)

	provider := economic.NewProvider(economyRepo, economic.Config{
		TTL:                 cfg.EconomicCacheTTL,
		FetchTimeout:        cfg.EconomicFetchTimeout,
		DailyPoolBudget:     cfg.DailyPoolBudget,
		FallbackActiveUsers: cfg.FallbackActiveUsers,
	})

	riskEngine := risk.NewService(riskRepo, risk.Config{
		HighConfidence: cfg.RiskHighConfidence,
		ScoreThreshold: cfg.RiskScoreThreshold,
		MinSessions:    cfg.RiskMinSessions,
		DecayHalfLife:  cfg.RiskDecayHalfLife,
		HistoryLimit:   cfg.RiskHistoryLimit,
	})

	gate := settlement.NewGate(cfg.PayoutSecret, rewardRepo, cfg.PendingRewardExpiry)

	policy := reward.Policy{
		DailyPoolBudget:   cfg.DailyPoolBudget,
		ThrottleThreshold: cfg.ThrottleThreshold,
	}

	claimsService := claims.NewService(authenticator, provider, riskEngine, gate, seasonalRepo, statsRepo, economyRepo, policy)
	balanceService := balance.NewService(balanceRepo, economyRepo, riskRepo, provider)

	// Background maintenance: hourly sweep of expired pending rewards
	// and the midnight pool budget reset
	pool := worker.NewPool(1, 10)
	pool.Start()
	defer pool.Stop()

	sched := scheduler.New(pool)
	sched.Schedule(time.Hour, worker.NewRewardSweepJob(rewardRepo))
	defer sched.Stop()

	resetWorker := worker.NewDailyResetWorker(economyRepo, provider)
	resetWorker.Start()

	srv := server.NewServer(server.Config{
		Port:            cfg.Port,
		TrustedProxies:  cfg.TrustedProxies,
		DailyPoolBudget: cfg.DailyPoolBudget,
		ClaimRateLimit:  cfg.ClaimRateLimit,
		AdminRateLimit:  cfg.AdminRateLimit,
	}, dbPool, claimsService, balanceService, provider, registry)

	// Serve until interrupted, then drain in-flight requests
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := resetWorker.Shutdown(ctx); err != nil {
		slog.Error("Daily reset worker forced shutdown", "error", err)
	}
	if err := srv.Stop(ctx); err != nil {
		slog.Error("Server forced shutdown", "error", err)
	}
	slog.Info("Server stopped")
}
