package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type DB struct {
	Pool *sql.DB
}

func Open(path string) (*DB, error) {
	// modernc sqlite uses DSN like: file:foo.db?_pragma=busy_timeout(5000)
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path)

	pool, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// sqlite typically wants 1 writer
	pool.SetMaxOpenConns(1)
	pool.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := pool.PingContext(ctx); err != nil {
		_ = pool.Close()
		return nil, err
	}

	db := &DB{Pool: pool}
	if err := db.ensureSchema(context.Background()); err != nil {
		_ = pool.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) Close() error {
	if d == nil || d.Pool == nil {
		return nil
	}
	return d.Pool.Close()
}

func (d *DB) ensureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS research_runs(
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			result_json TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS signals(
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL,
			company TEXT NOT NULL,
			signal_type TEXT NOT NULL,
			headline TEXT,
			confidence REAL NOT NULL,
			freshness_hours REAL NOT NULL,
			source_count INTEGER NOT NULL,
			discovered_at TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_signals_company ON signals(company, signal_type);`,
		`CREATE TABLE IF NOT EXISTS candidates(
			run_id TEXT NOT NULL,
			company TEXT NOT NULL,
			domain TEXT,
			score INTEGER NOT NULL,
			bucket TEXT NOT NULL,
			why_now TEXT,
			PRIMARY KEY(run_id, company)
		);`,
	}
	for _, s := range stmts {
		if _, err := d.Pool.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("schema: %w", err)
		}
	}
	return nil
}
