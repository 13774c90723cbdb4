package db

import (
	"context"
	"time"

	"todo_service/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a postgres pool for the jsonb task table.
func Connect(dsn string) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("failed to create postgres pool", "error", err)
	}

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("failed to ping postgres", "error", err)
	}

	logger.Info("postgres connected")
	return pool
}
