package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port        int
	Environment string
	LogLevel    string
	LogFormat   string
	LogDir      string

	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	DBMaxConns    int
	DBMaxIdleTime time.Duration
	DBMaxLifetime time.Duration

	// AdminTokens seeds the operator registry.
	// Format: "token:name:level:scope1|scope2" entries separated by commas.
	AdminTokens string

	// ClaimSecret authenticates client claim submissions.
	// PayoutSecret signs settlement promises. They must differ so a
	// leaked submission secret cannot forge payouts.
	ClaimSecret  string
	PayoutSecret string

	TrustedProxies []string

	// Claim pipeline tunables
	TimestampWindow     time.Duration
	PendingRewardExpiry time.Duration
	DailyPoolBudget     float64
	ThrottleThreshold   float64 // pool usage fraction where throttling starts

	// Economic state cache
	EconomicCacheTTL     time.Duration
	EconomicFetchTimeout time.Duration
	FallbackActiveUsers  int

	// Risk engine tunables. The shipped defaults are starting points,
	// not derived from data; tune per deployment.
	RiskHighConfidence   float64
	RiskScoreThreshold   float64
	RiskMinSessions      int
	RiskDecayHalfLife    time.Duration
	RiskHistoryLimit     int

	// Rate limits (requests per minute)
	ClaimRateLimit int
	AdminRateLimit int
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
		LogDir:      getEnv("LOG_DIR", "logs"),

		DBUser:        getEnv("DB_USER", "postgres"),
		DBPassword:    getEnv("DB_PASSWORD", "postgres"),
		DBHost:        getEnv("DB_HOST", "localhost"),
		DBPort:        getEnv("DB_PORT", "5432"),
		DBName:        getEnv("DB_NAME", "fmhrewards"),
		DBMaxConns:    getEnvAsInt("DB_MAX_CONNS", 10),
		DBMaxIdleTime: getEnvAsDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
		DBMaxLifetime: getEnvAsDuration("DB_MAX_LIFETIME", 30*time.Minute),

		AdminTokens: getEnv("ADMIN_TOKENS", ""),

		ClaimSecret:  getEnv("CLAIM_SECRET", ""),
		PayoutSecret: getEnv("PAYOUT_SECRET", ""),

		TimestampWindow:     getEnvAsDuration("CLAIM_TIMESTAMP_WINDOW", 5*time.Minute),
		PendingRewardExpiry: getEnvAsDuration("PENDING_REWARD_EXPIRY", time.Hour),
		DailyPoolBudget:     getEnvAsFloat("DAILY_POOL_BUDGET", 100000),
		ThrottleThreshold:   getEnvAsFloat("THROTTLE_THRESHOLD", 0.8),

		EconomicCacheTTL:     getEnvAsDuration("ECONOMIC_CACHE_TTL", 60*time.Second),
		EconomicFetchTimeout: getEnvAsDuration("ECONOMIC_FETCH_TIMEOUT", 3*time.Second),
		FallbackActiveUsers:  getEnvAsInt("FALLBACK_ACTIVE_USERS", 10),

		RiskHighConfidence: getEnvAsFloat("RISK_HIGH_CONFIDENCE", 0.85),
		RiskScoreThreshold: getEnvAsFloat("RISK_SCORE_THRESHOLD", 1.5),
		RiskMinSessions:    getEnvAsInt("RISK_MIN_SESSIONS", 3),
		RiskDecayHalfLife:  getEnvAsDuration("RISK_DECAY_HALF_LIFE", 24*time.Hour),
		RiskHistoryLimit:   getEnvAsInt("RISK_HISTORY_LIMIT", 20),

		ClaimRateLimit: getEnvAsInt("CLAIM_RATE_LIMIT", 10),
		AdminRateLimit: getEnvAsInt("ADMIN_RATE_LIMIT", 20),
	}

	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if proxies := getEnv("TRUSTED_PROXIES", ""); proxies != "" {
		cfg.TrustedProxies = splitAndTrim(proxies)
	}

	if cfg.ClaimSecret == "" {
		return nil, fmt.Errorf("CLAIM_SECRET environment variable must be set for security")
	}
	if cfg.PayoutSecret == "" {
		return nil, fmt.Errorf("PAYOUT_SECRET environment variable must be set for security")
	}
	if cfg.ClaimSecret == cfg.PayoutSecret {
		return nil, fmt.Errorf("CLAIM_SECRET and PAYOUT_SECRET must be distinct")
	}
	if cfg.AdminTokens == "" {
		return nil, fmt.Errorf("ADMIN_TOKENS environment variable must be set")
	}

	return cfg, nil
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an integer environment variable or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsFloat retrieves a float environment variable or returns a default value
func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvAsDuration retrieves a duration environment variable or returns a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
