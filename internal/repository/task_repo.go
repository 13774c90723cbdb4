package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"todo_service/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskStore is the document collection holding tasks. Every lookup and
// mutation matches on the task's id field.
type TaskStore interface {
	Insert(ctx context.Context, t *domain.Task) error
	// Find returns tasks in store-native order. limit 0 means no limit.
	Find(ctx context.Context, skip, limit int64) ([]*domain.Task, error)
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	FindByDueDate(ctx context.Context, due string) ([]*domain.Task, error)
	SetCompleted(ctx context.Context, id string, completed bool) error
	SetIndex(ctx context.Context, id string, index int64) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// PgTaskRepository keeps tasks in a postgres table, with the free-form due
// date in a jsonb column.
type PgTaskRepository struct {
	db *pgxpool.Pool
}

func NewPgTaskRepository(db *pgxpool.Pool) *PgTaskRepository {
	return &PgTaskRepository{db: db}
}

const pgTaskColumns = `id, text, completed, due_date, idx`

func (r *PgTaskRepository) Insert(ctx context.Context, t *domain.Task) error {
	due, err := marshalDueDate(t.DueDate)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO tasks (id, text, completed, due_date, idx) VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.Text, t.Completed, due, t.Index,
	)
	return err
}

func (r *PgTaskRepository) Find(ctx context.Context, skip, limit int64) ([]*domain.Task, error) {
	if limit > 0 {
		rows, err := r.db.Query(ctx, `SELECT `+pgTaskColumns+` FROM tasks OFFSET $1 LIMIT $2`, skip, limit)
		if err != nil {
			return nil, err
		}
		return scanTasks(rows)
	}
	rows, err := r.db.Query(ctx, `SELECT `+pgTaskColumns+` FROM tasks OFFSET $1`, skip)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

func (r *PgTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	rows, err := r.db.Query(ctx, `SELECT `+pgTaskColumns+` FROM tasks WHERE id = $1`, id)
	if err != nil {
		return nil, err
	}
	res, err := scanTasks(rows)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return nil, ErrTaskNotFound
	}
	return res[0], nil
}

func (r *PgTaskRepository) FindByDueDate(ctx context.Context, due string) ([]*domain.Task, error) {
	rows, err := r.db.Query(ctx, `SELECT `+pgTaskColumns+` FROM tasks WHERE due_date = to_jsonb($1::text)`, due)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

func (r *PgTaskRepository) SetCompleted(ctx context.Context, id string, completed bool) error {
	_, err := r.db.Exec(ctx, `UPDATE tasks SET completed = $1 WHERE id = $2`, completed, id)
	return err
}

func (r *PgTaskRepository) SetIndex(ctx context.Context, id string, index int64) error {
	_, err := r.db.Exec(ctx, `UPDATE tasks SET idx = $1 WHERE id = $2`, index, id)
	return err
}

func (r *PgTaskRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}

func (r *PgTaskRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func scanTasks(rows pgx.Rows) ([]*domain.Task, error) {
	defer rows.Close()

	res := make([]*domain.Task, 0)
	for rows.Next() {
		var (
			t   domain.Task
			due []byte
		)
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &due, &t.Index); err != nil {
			return nil, err
		}
		if len(due) > 0 {
			if err := json.Unmarshal(due, &t.DueDate); err != nil {
				return nil, fmt.Errorf("decode due_date of %s: %w", t.ID, err)
			}
		}
		res = append(res, &t)
	}
	return res, rows.Err()
}

// marshalDueDate returns nil for an absent due date so the column stays NULL.
func marshalDueDate(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode due_date: %w", err)
	}
	return string(b), nil
}
