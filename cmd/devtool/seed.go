package main

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// SeedCommand loads development or staging fixtures into the database
type SeedCommand struct{}

func (c *SeedCommand) Name() string { return "seed" }

func (c *SeedCommand) Description() string {
	return "Seed the database with fixtures (dev, staging)"
}

func (c *SeedCommand) Run(args []string) error {
	env := envDev
	if len(args) > 0 {
		env = args[0]
	}

	url := dbURL()
	db, err := sql.Open("pgx", url)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database not reachable at %s: %w", redactPassword(url), err)
	}

	switch env {
	case envDev:
		return c.seedDev(db)
	case envStaging:
		return c.seedStaging(db)
	default:
		return fmt.Errorf("unknown seed environment: %s (want %s or %s)", env, envDev, envStaging)
	}
}

// seedDev loads a playable local fixture set: a funded pool, a partially
// consumed budget and two active seasonal events covering both condition
// operators.
func (c *SeedCommand) seedDev(db *sql.DB) error {
	PrintHeader("Seeding dev fixtures")

	now := time.Now().UTC()

	statements := []struct {
		desc  string
		query string
		args  []interface{}
	}{
		{
			"economic state",
			`UPDATE economic_state
			 SET today_pool_used = $1, daily_active_users = $2,
			     global_win_rate = $3, total_supply = $4, updated_at = NOW()
			 WHERE id = 1`,
			[]interface{}{12500.0, 340, 0.38, 2500000.0},
		},
		{
			"daily pool balance",
			`INSERT INTO pool_balances (pool, balance)
			 VALUES ('daily', 100000)
			 ON CONFLICT (pool) DO UPDATE SET balance = EXCLUDED.balance, updated_at = NOW()`,
			nil,
		},
		{
			"high score weekend event",
			`INSERT INTO seasonal_events (id, name, start_time, end_time, bonus_multiplier, conditions, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			 ON CONFLICT (id) DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time`,
			[]interface{}{
				"dev-high-score", "High Score Weekend",
				now.Add(-24 * time.Hour), now.Add(72 * time.Hour), 1.5,
				`[{"field":"finalScore","op":"gt","value":1000}]`,
			},
		},
		{
			"speed run event",
			`INSERT INTO seasonal_events (id, name, start_time, end_time, bonus_multiplier, conditions, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, TRUE)
			 ON CONFLICT (id) DO UPDATE SET start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time`,
			[]interface{}{
				"dev-speed-run", "Speed Run Challenge",
				now.Add(-24 * time.Hour), now.Add(72 * time.Hour), 2.0,
				`[{"field":"gameDuration","op":"lt","value":60}]`,
			},
		},
		{
			"sample player stats",
			`INSERT INTO player_stats (player_address, win_streak, lifetime_games, recent_win_rate, avg_efficiency)
			 VALUES ('0xdevplayer', 3, 120, 0.45, 0.6)
			 ON CONFLICT (player_address) DO UPDATE SET updated_at = NOW()`,
			nil,
		},
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt.query, stmt.args...); err != nil {
			return fmt.Errorf("failed to seed %s: %w", stmt.desc, err)
		}
		PrintSuccess("Seeded %s", stmt.desc)
	}

	return nil
}

// seedStaging only funds the pool and resets usage so smoke tests start
// from a known budget. No synthetic players or events on staging.
func (c *SeedCommand) seedStaging(db *sql.DB) error {
	PrintHeader("Seeding staging fixtures")

	if _, err := db.Exec(
		`UPDATE economic_state SET today_pool_used = 0, updated_at = NOW() WHERE id = 1`,
	); err != nil {
		return fmt.Errorf("failed to reset pool usage: %w", err)
	}
	PrintSuccess("Reset pool usage")

	if _, err := db.Exec(
		`INSERT INTO pool_balances (pool, balance)
		 VALUES ('daily', 100000)
		 ON CONFLICT (pool) DO UPDATE SET balance = EXCLUDED.balance, updated_at = NOW()`,
	); err != nil {
		return fmt.Errorf("failed to fund daily pool: %w", err)
	}
	PrintSuccess("Funded daily pool")

	return nil
}
