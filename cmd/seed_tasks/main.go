package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"todo_service/internal/config"
	"todo_service/internal/db"
	"todo_service/internal/logger"
	"todo_service/internal/service"
)

// Inserts sample tasks into the configured store. Every third task is due
// today so /due-today has something to show.
func main() {
	n := flag.Int("n", 10, "number of tasks to create")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogJSON)

	store, closeStore := db.OpenTaskStore(cfg)
	defer closeStore()

	svc := service.NewTaskService(store)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	today := svc.Today()
	for i := 0; i < *n; i++ {
		var due any
		if i%3 == 0 {
			due = today
		}
		t, err := svc.Create(ctx, fmt.Sprintf("sample task %d", i+1), due)
		if err != nil {
			logger.Fatal("create task failed", "error", err)
		}
		logger.Info("task created", "id", t.ID, "index", t.Index, "due", t.DueDate)
		// keeps index values distinct
		time.Sleep(time.Millisecond)
	}
}
