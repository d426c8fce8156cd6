package schema

// SchemaSQL contains the full database schema initialization script
const SchemaSQL = `
-- Reward Verification & Settlement Schema

-- 1. Replay Protection
-- One row per consumed nonce. The unique pair makes consumption atomic.
CREATE TABLE IF NOT EXISTS game_nonces (
    player_address VARCHAR(128) NOT NULL,
    nonce VARCHAR(128) NOT NULL,
    game_id VARCHAR(128) NOT NULL,
    used_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (player_address, nonce)
);

-- 2. Economic State (single row)
CREATE TABLE IF NOT EXISTS economic_state (
    id SMALLINT PRIMARY KEY CHECK (id = 1),
    today_pool_used DOUBLE PRECISION NOT NULL DEFAULT 0,
    daily_active_users INTEGER NOT NULL DEFAULT 0,
    global_win_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
    total_supply DOUBLE PRECISION NOT NULL DEFAULT 0,
    reward_multiplier DOUBLE PRECISION NOT NULL DEFAULT 1.0,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

INSERT INTO economic_state (id) VALUES (1) ON CONFLICT DO NOTHING;

-- 3. Named Pool Balances (MINT targets)
CREATE TABLE IF NOT EXISTS pool_balances (
    pool VARCHAR(64) PRIMARY KEY,
    balance DOUBLE PRECISION NOT NULL DEFAULT 0,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- 4. Emergency Stop Flags
-- Scope '' halts all payouts; a difficulty name halts one scope.
CREATE TABLE IF NOT EXISTS stop_flags (
    scope VARCHAR(64) PRIMARY KEY,
    reason TEXT NOT NULL,
    created_by VARCHAR(100) NOT NULL,
    expires_at TIMESTAMPTZ,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- 5. Pending Rewards
-- Signed promises to pay, one per (player, game).
CREATE TABLE IF NOT EXISTS pending_rewards (
    player_address VARCHAR(128) NOT NULL,
    game_id VARCHAR(128) NOT NULL,
    reward_amount DOUBLE PRECISION NOT NULL,
    claim_signature CHAR(64) NOT NULL,
    expires_at TIMESTAMPTZ NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (player_address, game_id)
);

CREATE INDEX IF NOT EXISTS idx_pending_rewards_expires_at ON pending_rewards (expires_at);

-- 6. Balance Actions (two-phase admin mutations)
CREATE TABLE IF NOT EXISTS balance_actions (
    id UUID PRIMARY KEY,
    type VARCHAR(32) NOT NULL,
    reason TEXT NOT NULL,
    parameters JSONB,
    impact TEXT NOT NULL DEFAULT '',
    status VARCHAR(16) NOT NULL DEFAULT 'created',
    created_by VARCHAR(100) NOT NULL,
    result JSONB,
    error TEXT,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    executed_at TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS idx_balance_actions_created_at ON balance_actions (created_at);

-- 7. Risk Profiles
CREATE TABLE IF NOT EXISTS risk_profiles (
    player_address VARCHAR(128) PRIMARY KEY,
    score DOUBLE PRECISION NOT NULL DEFAULT 0,
    flagged_sessions INTEGER NOT NULL DEFAULT 0,
    activities JSONB NOT NULL DEFAULT '[]'::jsonb,
    last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

-- 8. Seasonal Events
CREATE TABLE IF NOT EXISTS seasonal_events (
    id VARCHAR(64) PRIMARY KEY,
    name VARCHAR(200) NOT NULL,
    start_time TIMESTAMPTZ NOT NULL,
    end_time TIMESTAMPTZ NOT NULL,
    bonus_multiplier DOUBLE PRECISION NOT NULL DEFAULT 1.0,
    conditions JSONB NOT NULL DEFAULT '[]'::jsonb,
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE INDEX IF NOT EXISTS idx_seasonal_events_window ON seasonal_events (start_time, end_time);

-- 9. Player Stats (read-only aggregates, written by ingestion)
CREATE TABLE IF NOT EXISTS player_stats (
    player_address VARCHAR(128) PRIMARY KEY,
    win_streak INTEGER NOT NULL DEFAULT 0,
    lifetime_games INTEGER NOT NULL DEFAULT 0,
    recent_win_rate DOUBLE PRECISION NOT NULL DEFAULT 0,
    avg_efficiency DOUBLE PRECISION NOT NULL DEFAULT 0,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`
