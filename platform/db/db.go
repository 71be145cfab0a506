// Package db provides database connection infrastructure.
// This is part of the platform layer and contains no business logic.
package db

import (
	"context"
	"time"

	"qualifica_backend/platform/config"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Pools bundles the two database capability handles the application uses:
// Restricted carries the anonymous-intake role, Trusted carries the elevated
// role that may mutate leads it does not own (assignment writes, scheduling
// link inserts). Both may point at the same pool in single-role deployments.
type Pools struct {
	Restricted *pgxpool.Pool
	Trusted    *pgxpool.Pool
}

// NewPools opens the restricted and trusted connection pools. When both URLs
// are identical a single pool is shared.
func NewPools(ctx context.Context, cfg config.DatabaseConfig) (*Pools, error) {
	restricted, err := newPool(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return nil, err
	}

	if cfg.GetTrustedDatabaseURL() == cfg.GetDatabaseURL() {
		return &Pools{Restricted: restricted, Trusted: restricted}, nil
	}

	trusted, err := newPool(ctx, cfg.GetTrustedDatabaseURL())
	if err != nil {
		restricted.Close()
		return nil, err
	}

	return &Pools{Restricted: restricted, Trusted: trusted}, nil
}

// Close closes both pools.
func (p *Pools) Close() {
	if p == nil {
		return
	}
	p.Restricted.Close()
	if p.Trusted != p.Restricted {
		p.Trusted.Close()
	}
}

func newPool(ctx context.Context, url string) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	// Production-ready pool configuration
	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = 1 * time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
