package main

import (
	"github.com/fmhgames/reward-service/internal/config"
	"github.com/fmhgames/reward-service/internal/handler"
	"github.com/fmhgames/reward-service/internal/logger"
)

// initLogger initializes the logger using centralized app configuration
func initLogger(cfg *config.Config) {
	// Source info only in dev; it is noise in aggregated production logs
	addSource := cfg.Environment == "dev" || cfg.Environment == "development"

	loggerConfig := logger.NewConfig(
		cfg.LogLevel,
		cfg.LogFormat,
		"reward-service",
		handler.Version,
		cfg.Environment,
		addSource,
	)

	logger.InitLogger(loggerConfig)
}
