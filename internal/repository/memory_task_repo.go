package repository

import (
	"context"
	"sync"

	"todo_service/internal/domain"
)

// MemoryTaskRepository keeps tasks in insertion order in process memory.
// Used for local runs without a database and in tests.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks []domain.Task
}

func NewMemoryTaskRepository() *MemoryTaskRepository {
	return &MemoryTaskRepository{}
}

func (r *MemoryTaskRepository) Insert(_ context.Context, t *domain.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, *t)
	return nil
}

func (r *MemoryTaskRepository) Find(_ context.Context, skip, limit int64) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.Task, 0)
	if skip < 0 {
		skip = 0
	}
	for i := skip; i < int64(len(r.tasks)); i++ {
		if limit > 0 && int64(len(res)) >= limit {
			break
		}
		t := r.tasks[i]
		res = append(res, &t)
	}
	return res, nil
}

func (r *MemoryTaskRepository) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.indexOf(id); i >= 0 {
		t := r.tasks[i]
		return &t, nil
	}
	return nil, ErrTaskNotFound
}

func (r *MemoryTaskRepository) FindByDueDate(_ context.Context, due string) ([]*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]*domain.Task, 0)
	for _, t := range r.tasks {
		if s, ok := t.DueDate.(string); ok && s == due {
			t := t
			res = append(res, &t)
		}
	}
	return res, nil
}

func (r *MemoryTaskRepository) SetCompleted(_ context.Context, id string, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.tasks[i].Completed = completed
	}
	return nil
}

func (r *MemoryTaskRepository) SetIndex(_ context.Context, id string, index int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.tasks[i].Index = index
	}
	return nil
}

func (r *MemoryTaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.indexOf(id); i >= 0 {
		r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	}
	return nil
}

func (r *MemoryTaskRepository) Ping(context.Context) error {
	return nil
}

// indexOf must be called with r.mu held.
func (r *MemoryTaskRepository) indexOf(id string) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}
