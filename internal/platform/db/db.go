package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Open a verified PostgreSQL connection pool through the pgx stdlib driver.
func Open(databaseURL string) (*sql.DB, error) {
	pool, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}

	// Assignment runs are serialized by the run lease; a small pool is plenty.
	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(10)
	pool.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("verify postgres connection: %w", err)
	}

	return pool, nil
}
