// Package db provides connection helpers for the two external Postgres
// stores. Both schemas are owned by other systems (stationspinner and the EVE
// static data export); this service only reads them, so there is no migration
// machinery here.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx postgres driver registered as 'pgx'

	"github.com/onnwee/evespai/config"
)

// Connect opens one store with a bounded connection pool and verifies it with
// a ping. Callers treat each store independently: a failed spinner connect
// must not prevent SDE-only commands from working, and vice versa.
func Connect(ctx context.Context, cfg config.DBConfig) (*sql.DB, error) {
	pool, err := sql.Open("pgx", cfg.ResolveDSN())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Name, err)
	}
	pool.SetMaxOpenConns(cfg.MaxConns)
	pool.SetMaxIdleConns(cfg.MaxConns)
	pool.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.PingContext(pingCtx); err != nil {
		_ = pool.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Name, err)
	}
	return pool, nil
}
