package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool defaults applied when Config leaves a field zero.
const (
	defaultMaxConns        int32 = 25
	defaultMaxConnLifetime       = time.Hour
	defaultMaxConnIdleTime       = 30 * time.Minute

	// ApplicationName tags the engine's sessions in pg_stat_activity.
	ApplicationName = "votabien-engine"
)

// DB is the read pool shared by every request. Handlers never touch it
// directly; WithScope hands each request one acquired connection.
type DB struct {
	*pgxpool.Pool
}

// Config sizes the pool. Zero values fall back to the package defaults.
type Config struct {
	URL             string
	MaxConnections  int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	Tracer          pgx.QueryTracer // optional
}

// NewConnection opens the pool and pings it, so an unreachable database
// fails here instead of on the first request.
func NewConnection(ctx context.Context, cfg *Config) (*DB, error) {
	poolConfig, err := buildPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

func buildPoolConfig(cfg *Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = valueOr(cfg.MaxConnections, defaultMaxConns)
	poolConfig.MaxConnLifetime = valueOr(cfg.MaxConnLifetime, defaultMaxConnLifetime)
	poolConfig.MaxConnIdleTime = valueOr(cfg.MaxConnIdleTime, defaultMaxConnIdleTime)

	if _, ok := poolConfig.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolConfig.ConnConfig.RuntimeParams["application_name"] = ApplicationName
	}
	if cfg.Tracer != nil {
		poolConfig.ConnConfig.Tracer = cfg.Tracer
	}
	return poolConfig, nil
}

func valueOr[T comparable](v, fallback T) T {
	var zero T
	if v == zero {
		return fallback
	}
	return v
}

func (db *DB) Close() {
	db.Pool.Close()
}
