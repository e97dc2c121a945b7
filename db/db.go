// Package db manages the PostgreSQL connection pool and schema migrations.
// The pool is process-wide: it is opened once, on first use, and reused by
// every request until shutdown.
package db

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ashishjangde/flip-weather/apperror"
	"github.com/ashishjangde/flip-weather/config"
)

var (
	poolOnce sync.Once
	pool     *pgxpool.Pool
	poolErr  error
)

// Open returns the shared connection pool, creating it on the first call.
// Concurrent first callers are serialized by sync.Once so exactly one pool is
// ever opened; later calls return the cached handle (or the cached failure).
func Open(cfg *config.DBConfig) (*pgxpool.Pool, error) {
	poolOnce.Do(func() {
		pool, poolErr = newPool(cfg)
	})
	return pool, poolErr
}

// Close tears down the shared pool. Intended for process shutdown only.
func Close() {
	if pool != nil {
		pool.Close()
	}
}

func newPool(cfg *config.DBConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, apperror.NewDatabaseError("error parsing database URL", err)
	}

	poolConfig.MaxConns = int32(cfg.PoolSize)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	p, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError("error creating connection pool", err)
	}

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer pingCancel()
	if err := p.Ping(pingCtx); err != nil {
		p.Close()
		return nil, apperror.NewDatabaseError("error connecting to the database", err)
	}

	return p, nil
}

// RunMigrations applies pending migrations from migrationsPath against the
// database at databaseURL. A database that is already up to date is not an
// error.
func RunMigrations(databaseURL, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return apperror.NewDatabaseError("failed to create migrator", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Printf("warning: error closing migrator: source=%v database=%v", srcErr, dbErr)
		}
	}()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return apperror.NewDatabaseError("failed to run migrations", err)
	}
	return nil
}
