package db

import (
	"context"
	"time"

	"todo_service/internal/config"
	"todo_service/internal/logger"
	"todo_service/internal/repository"
)

// OpenTaskStore connects the store selected by cfg.StoreDriver. The returned
// func releases the underlying connection.
func OpenTaskStore(cfg *config.Config) (repository.TaskStore, func()) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool := Connect(cfg.DatabaseURL)
		return repository.NewPgTaskRepository(pool), pool.Close

	case config.DriverMemory:
		logger.Warn("using in-memory task store, data is lost on exit")
		return repository.NewMemoryTaskRepository(), func() {}

	default:
		client := ConnectMongo(cfg.MongoURI)
		repo := repository.NewMongoTaskRepository(client, cfg.MongoDatabase, cfg.MongoCollection)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repo.EnsureIndexes(ctx); err != nil {
			logger.Warn("failed to ensure task indexes", "error", err)
		}

		return repo, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				logger.Error("mongo disconnect", "error", err)
			}
		}
	}
}
