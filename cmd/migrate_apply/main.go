package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"todo_service/internal/config"
	"todo_service/internal/db"
	"todo_service/internal/logger"
	"todo_service/internal/repository"
)

// Prepares the configured store: SQL migrations for postgres, indexes for
// mongo. Without -apply it only prints what it would do.
func main() {
	apply := flag.Bool("apply", false, "apply migrations")
	dir := flag.String("dir", filepath.Join("internal", "migrations"), "migrations directory")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	switch cfg.StoreDriver {
	case config.DriverPostgres:
		migratePostgres(cfg, *dir, *apply)
	case config.DriverMongo:
		migrateMongo(cfg, *apply)
	default:
		fmt.Printf("store driver %q needs no migrations\n", cfg.StoreDriver)
	}
}

func migratePostgres(cfg *config.Config, dir string, apply bool) {
	files, err := os.ReadDir(dir)
	if err != nil {
		logger.Fatal("read migrations dir", "dir", dir, "error", err)
	}
	if !apply {
		for _, f := range files {
			fmt.Println(f.Name())
		}
		return
	}

	pool := db.Connect(cfg.DatabaseURL)
	defer pool.Close()

	for _, f := range files {
		name := f.Name()
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Fatal("read migration", "file", name, "error", err)
		}
		if _, err := pool.Exec(context.Background(), string(b)); err != nil {
			logger.Fatal("apply migration", "file", name, "error", err)
		}
		fmt.Printf("applied %s\n", name)
	}
}

func migrateMongo(cfg *config.Config, apply bool) {
	target := cfg.MongoDatabase + "." + cfg.MongoCollection
	if !apply {
		fmt.Printf("unique index on id for %s\n", target)
		return
	}

	client := db.ConnectMongo(cfg.MongoURI)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer client.Disconnect(ctx)

	repo := repository.NewMongoTaskRepository(client, cfg.MongoDatabase, cfg.MongoCollection)
	if err := repo.EnsureIndexes(ctx); err != nil {
		logger.Fatal("ensure indexes", "collection", target, "error", err)
	}
	fmt.Printf("indexed %s\n", target)
}
