package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

const (
	applicationName = "cluesbot"
	maxPoolConns    = 4
	connectTimeout  = 10 * time.Second
)

// DB is the pgx pool behind the Postgres record store
type DB struct {
	*pgxpool.Pool
}

// NewConnection opens a small pool. Sessions run in UTC so submitted_at
// round-trips without an offset.
func NewConnection(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = maxPoolConns
	config.ConnConfig.ConnectTimeout = connectTimeout
	config.ConnConfig.RuntimeParams["timezone"] = "UTC"
	config.ConnConfig.RuntimeParams["application_name"] = applicationName

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.WithFields(log.Fields{
		"host":      config.ConnConfig.Host,
		"database":  config.ConnConfig.Database,
		"max_conns": config.MaxConns,
	}).Debug("Opened database pool")

	return &DB{Pool: pool}, nil
}

// Close releases every pooled connection
func (db *DB) Close() {
	db.Pool.Close()
}
