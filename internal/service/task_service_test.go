package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"todo_service/internal/repository"
)

// stepClock advances one millisecond on every read.
type stepClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(time.Millisecond)
	return c.t
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

// failingIndexStore fails SetIndex for one id.
type failingIndexStore struct {
	*repository.MemoryTaskRepository
	failOn string
}

func (s *failingIndexStore) SetIndex(ctx context.Context, id string, index int64) error {
	if id == s.failOn {
		return errors.New("connection reset")
	}
	return s.MemoryTaskRepository.SetIndex(ctx, id, index)
}

func newTestService(store repository.TaskStore) *TaskService {
	clock := &stepClock{t: time.Date(2026, 10, 19, 9, 30, 0, 0, time.Local)}
	return NewTaskServiceWithClock(store, seqIDs(), clock.Now)
}

func TestCreate_SetsServerFields(t *testing.T) {
	svc := newTestService(repository.NewMemoryTaskRepository())
	ctx := context.Background()

	var prev int64
	for i := 0; i < 3; i++ {
		task, err := svc.Create(ctx, "buy milk", nil)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if task.ID == "" || task.Completed {
			t.Fatalf("unexpected task: %+v", task)
		}
		if task.Index <= prev {
			t.Fatalf("index %d not greater than previous %d", task.Index, prev)
		}
		prev = task.Index
	}
}

func TestListPage(t *testing.T) {
	svc := newTestService(repository.NewMemoryTaskRepository())
	ctx := context.Background()
	for i := 0; i < 45; i++ {
		if _, err := svc.Create(ctx, fmt.Sprintf("t%d", i), nil); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	cases := []struct {
		page      int
		wantLen   int
		wantFirst string
	}{
		{1, 20, "t0"},
		{2, 20, "t20"},
		{3, 5, "t40"},
		{0, 20, "t0"},
		{-4, 20, "t0"},
		{4, 0, ""},
		{math.MaxInt, 0, ""},
	}

	for _, tc := range cases {
		got, err := svc.ListPage(ctx, tc.page)
		if err != nil {
			t.Fatalf("page %d: %v", tc.page, err)
		}
		if len(got) != tc.wantLen {
			t.Fatalf("page %d has %d tasks; want %d", tc.page, len(got), tc.wantLen)
		}
		if tc.wantLen > 0 && got[0].Text != tc.wantFirst {
			t.Fatalf("page %d starts at %s; want %s", tc.page, got[0].Text, tc.wantFirst)
		}
	}
}

func TestToday_DropsTimeOfDay(t *testing.T) {
	now := time.Date(2026, 10, 19, 23, 59, 59, 0, time.Local)
	svc := NewTaskServiceWithClock(repository.NewMemoryTaskRepository(), seqIDs(), func() time.Time { return now })

	if got := svc.Today(); got != "2026-10-19" {
		t.Fatalf("Today() = %s; want 2026-10-19", got)
	}
}

func TestReorder_StopsOnStoreError(t *testing.T) {
	store := &failingIndexStore{MemoryTaskRepository: repository.NewMemoryTaskRepository()}
	svc := newTestService(store)
	ctx := context.Background()

	a, _ := svc.Create(ctx, "a", nil)
	b, _ := svc.Create(ctx, "b", nil)
	c, _ := svc.Create(ctx, "c", nil)
	store.failOn = b.ID

	err := svc.Reorder(ctx, []string{c.ID, b.ID, a.ID})
	if err == nil {
		t.Fatalf("expected reorder error")
	}

	gotC, _ := svc.Get(ctx, c.ID)
	gotA, _ := svc.Get(ctx, a.ID)
	if gotC.Index != 0 {
		t.Fatalf("c should be moved before the failure, index = %d", gotC.Index)
	}
	if gotA.Index != a.Index {
		t.Fatalf("a should be untouched after the failure, index = %d", gotA.Index)
	}
}

func TestGet_WrapsNotFound(t *testing.T) {
	svc := newTestService(repository.NewMemoryTaskRepository())

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, repository.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}
