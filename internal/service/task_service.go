package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"todo_service/internal/domain"
	"todo_service/internal/repository"

	"github.com/google/uuid"
)

// PageSize is the fixed page size of paginated listing
const PageSize = 20

// TaskService handles task operations on top of a TaskStore
type TaskService struct {
	store repository.TaskStore
	newID func() string
	now   func() time.Time
}

// NewTaskService creates a task service with uuid ids and the wall clock
func NewTaskService(store repository.TaskStore) *TaskService {
	return NewTaskServiceWithClock(store, uuid.NewString, time.Now)
}

// NewTaskServiceWithClock creates a task service with custom id and time sources
func NewTaskServiceWithClock(store repository.TaskStore, newID func() string, now func() time.Time) *TaskService {
	return &TaskService{
		store: store,
		newID: newID,
		now:   now,
	}
}

// List returns every task in store order
func (s *TaskService) List(ctx context.Context) ([]*domain.Task, error) {
	tasks, err := s.store.Find(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// ListPage returns one page of PageSize tasks. Pages below 1 are treated as 1.
func (s *TaskService) ListPage(ctx context.Context, page int) ([]*domain.Task, error) {
	if page < 1 {
		page = 1
	}
	// past any offset a store can represent, so nothing to return
	if int64(page-1) > math.MaxInt64/PageSize {
		return make([]*domain.Task, 0), nil
	}
	skip := int64(page-1) * PageSize
	tasks, err := s.store.Find(ctx, skip, PageSize)
	if err != nil {
		return nil, fmt.Errorf("list tasks page %d: %w", page, err)
	}
	return tasks, nil
}

// Create stores a new incomplete task. Its index is the creation time in
// unix milliseconds so that creation order is the initial display order.
func (s *TaskService) Create(ctx context.Context, text string, dueDate any) (*domain.Task, error) {
	t := &domain.Task{
		ID:        s.newID(),
		Text:      text,
		Completed: false,
		DueDate:   dueDate,
		Index:     s.now().UnixMilli(),
	}
	if err := s.store.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

// Get returns repository.ErrTaskNotFound when no task has id
func (s *TaskService) Get(ctx context.Context, id string) (*domain.Task, error) {
	t, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task %s: %w", id, err)
	}
	return t, nil
}

// Today is the start of the current local day in the canonical due date form
func (s *TaskService) Today() string {
	now := s.now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Format(domain.DueDateLayout)
}

// DueToday returns tasks whose due date is exactly today
func (s *TaskService) DueToday(ctx context.Context) ([]*domain.Task, error) {
	today := s.Today()
	tasks, err := s.store.FindByDueDate(ctx, today)
	if err != nil {
		return nil, fmt.Errorf("tasks due %s: %w", today, err)
	}
	return tasks, nil
}

// SetCompleted updates only the completed flag. Unknown ids are a no-op.
func (s *TaskService) SetCompleted(ctx context.Context, id string, completed bool) error {
	if err := s.store.SetCompleted(ctx, id, completed); err != nil {
		return fmt.Errorf("set completed on %s: %w", id, err)
	}
	return nil
}

// Reorder sets each task's index to its position in newOrder, one update at
// a time. Empty and unknown ids are skipped. There is no rollback: an error
// leaves the earlier positions applied.
func (s *TaskService) Reorder(ctx context.Context, newOrder []string) error {
	for i, id := range newOrder {
		if id == "" {
			continue
		}
		if err := s.store.SetIndex(ctx, id, int64(i)); err != nil {
			return fmt.Errorf("reorder %s to %d: %w", id, i, err)
		}
	}
	return nil
}

// Delete removes the task if present. Unknown ids are a no-op.
func (s *TaskService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	return nil
}
