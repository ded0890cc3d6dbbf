package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Config holds the connection parameters for the target database.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	Schema   string
	SSLMode  string
}

// URL renders the pgx connection string.
func (c Config) URL() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, sslMode)
}

// ConnectError marks the target store as unreachable before any stage
// has run.
type ConnectError struct {
	Err error
}

func (e *ConnectError) Error() string { return "database unreachable: " + e.Err.Error() }
func (e *ConnectError) Unwrap() error { return e.Err }

// DB owns the connection pool for one seeding run.
type DB struct {
	pool *pgxpool.Pool
}

// Connect builds the pool and verifies the target is reachable. The
// seeder is a short-lived batch tool, so the pool is kept small.
func Connect(ctx context.Context, cfg Config) (*DB, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("invalid connection parameters: %w", err)
	}

	poolCfg.MaxConns = 2
	poolCfg.MinConns = 0
	poolCfg.MaxConnLifetime = 15 * time.Minute
	poolCfg.MaxConnIdleTime = 3 * time.Minute
	poolCfg.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec
	if cfg.Schema != "" {
		poolCfg.ConnConfig.RuntimeParams["search_path"] = cfg.Schema
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, &ConnectError{Err: err}
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &ConnectError{Err: err}
	}

	return &DB{pool: pool}, nil
}

// Pool exposes the underlying pool for read-only queries.
func (d *DB) Pool() *pgxpool.Pool { return d.pool }

func (d *DB) Close() {
	if d != nil && d.pool != nil {
		d.pool.Close()
	}
}
