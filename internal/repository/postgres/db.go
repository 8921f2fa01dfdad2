// Package postgres provides pgx-backed implementations of the repository
// interfaces on a bounded connection pool.
package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	maxPoolConns   = 10
	connectTimeout = 20 * time.Second
)

// Connect opens a bounded connection pool against the given URL and
// verifies it with a ping.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = maxPoolConns
	cfg.MaxConnIdleTime = 30 * time.Second
	cfg.ConnConfig.ConnectTimeout = connectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// EnsureSchema creates the tables if they do not exist yet. Call during
// startup, before any repository is used.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const schema = `
CREATE TABLE IF NOT EXISTS users (
    id         TEXT PRIMARY KEY,
    username   TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS workouts (
    id            TEXT PRIMARY KEY,
    user_id       TEXT NOT NULL REFERENCES users(id),
    exercise_type TEXT NOT NULL,
    duration      INTEGER NOT NULL,
    calories      INTEGER NOT NULL,
    intensity     TEXT NOT NULL,
    notes         TEXT NOT NULL DEFAULT '',
    date          TIMESTAMPTZ NOT NULL,
    created_at    TIMESTAMPTZ NOT NULL,
    updated_at    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS workouts_user_date_idx ON workouts (user_id, date DESC);

CREATE TABLE IF NOT EXISTS goals (
    id      TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES users(id),
    type    TEXT NOT NULL,
    target  INTEGER NOT NULL,
    current INTEGER NOT NULL DEFAULT 0,
    date    TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS goals_user_idx ON goals (user_id);

CREATE TABLE IF NOT EXISTS exercises (
    id                  TEXT PRIMARY KEY,
    user_id             TEXT NOT NULL REFERENCES users(id),
    name                TEXT NOT NULL,
    category            TEXT NOT NULL,
    calories_per_minute INTEGER NOT NULL,
    emoji               TEXT NOT NULL,
    created_at          TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS exercises_user_idx ON exercises (user_id);
`
	_, err := pool.Exec(ctx, schema)
	return err
}
