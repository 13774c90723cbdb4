package integration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"todo_service/internal/domain"
	"todo_service/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func applyMigrations(t *testing.T, db *pgxpool.Pool) {
	t.Helper()
	migDir := filepath.Join("..", "..", "internal", "migrations")
	files, err := os.ReadDir(migDir)
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}
	for _, f := range files {
		b, err := os.ReadFile(filepath.Join(migDir, f.Name()))
		if err != nil {
			t.Fatalf("read file: %v", err)
		}
		if _, err := db.Exec(context.Background(), string(b)); err != nil {
			t.Fatalf("apply migration %s: %v", f.Name(), err)
		}
	}
}

// ours keeps only tasks created by this run, since the backing store may be shared.
func ours(tasks []*domain.Task, prefix string) map[string]*domain.Task {
	out := make(map[string]*domain.Task)
	for _, t := range tasks {
		if len(t.ID) >= len(prefix) && t.ID[:len(prefix)] == prefix {
			out[t.ID] = t
		}
	}
	return out
}

func exerciseTaskStore(t *testing.T, store repository.TaskStore) {
	t.Helper()
	ctx := context.Background()
	prefix := fmt.Sprintf("it-%d-", time.Now().UnixNano())
	id := func(s string) string { return prefix + s }
	today := time.Now().Format(domain.DueDateLayout)

	seed := []*domain.Task{
		{ID: id("a"), Text: "a", DueDate: today, Index: 100},
		{ID: id("b"), Text: "b", DueDate: map[string]any{"day": float64(1)}, Index: 101},
		{ID: id("c"), Text: "c", Index: 102},
	}
	for _, task := range seed {
		if err := store.Insert(ctx, task); err != nil {
			t.Fatalf("insert %s: %v", task.ID, err)
		}
	}
	t.Cleanup(func() {
		for _, task := range seed {
			_ = store.Delete(context.Background(), task.ID)
		}
	})

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("ping: %v", err)
	}

	got, err := store.FindByID(ctx, id("b"))
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if b, _ := json.Marshal(got.DueDate); string(b) != `{"day":1}` {
		t.Fatalf("object dueDate did not round-trip: %s", b)
	}
	if got.Index != 101 || got.Completed {
		t.Fatalf("unexpected task: %+v", got)
	}

	if _, err := store.FindByID(ctx, id("missing")); !errors.Is(err, repository.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}

	all, err := store.Find(ctx, 0, 0)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if n := len(ours(all, prefix)); n != 3 {
		t.Fatalf("find all returned %d of our tasks; want 3", n)
	}

	due, err := store.FindByDueDate(ctx, today)
	if err != nil {
		t.Fatalf("find by due date: %v", err)
	}
	if m := ours(due, prefix); len(m) != 1 || m[id("a")] == nil {
		t.Fatalf("due today = %v; want only a", m)
	}

	if err := store.SetCompleted(ctx, id("c"), true); err != nil {
		t.Fatalf("set completed: %v", err)
	}
	if err := store.SetIndex(ctx, id("c"), 0); err != nil {
		t.Fatalf("set index: %v", err)
	}
	got, _ = store.FindByID(ctx, id("c"))
	if !got.Completed || got.Index != 0 || got.Text != "c" {
		t.Fatalf("after update: %+v", got)
	}

	if err := store.SetCompleted(ctx, id("missing"), true); err != nil {
		t.Fatalf("update of missing id should be a no-op: %v", err)
	}

	if err := store.Delete(ctx, id("a")); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.FindByID(ctx, id("a")); !errors.Is(err, repository.ErrTaskNotFound) {
		t.Fatalf("deleted task still found: %v", err)
	}
}

func TestPgTaskRepository(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	defer db.Close()

	applyMigrations(t, db)

	exerciseTaskStore(t, repository.NewPgTaskRepository(db))
}

func TestMongoTaskRepository(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true}))
	if err != nil {
		t.Fatalf("connect mongo: %v", err)
	}
	defer client.Disconnect(context.Background())

	coll := fmt.Sprintf("todos_it_%d", time.Now().UnixNano())
	defer client.Database("todos_test").Collection(coll).Drop(context.Background())

	repo := repository.NewMongoTaskRepository(client, "todos_test", coll)
	if err := repo.EnsureIndexes(ctx); err != nil {
		t.Fatalf("ensure indexes: %v", err)
	}

	exerciseTaskStore(t, repo)

	dup := &domain.Task{ID: "dup", Text: "x"}
	if err := repo.Insert(ctx, dup); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := repo.Insert(ctx, dup); !mongo.IsDuplicateKeyError(err) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}
