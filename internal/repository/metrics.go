package repository

import (
	"context"
	"errors"
	"time"

	"todo_service/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "task_store_operations_total",
			Help: "Task store calls by operation and outcome",
		},
		[]string{"op", "outcome"},
	)
	StoreLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "task_store_operation_duration_seconds",
			Help:    "Task store call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(StoreOps)
	prometheus.MustRegister(StoreLatency)
}

// instrumented wraps a TaskStore and records every call in StoreOps and
// StoreLatency. A not-found lookup counts as "miss", not "error".
type instrumented struct {
	next TaskStore
}

// WithMetrics decorates store with prometheus instrumentation.
func WithMetrics(store TaskStore) TaskStore {
	return &instrumented{next: store}
}

func observe(op string, start time.Time, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, ErrTaskNotFound):
		outcome = "miss"
	case err != nil:
		outcome = "error"
	}
	StoreOps.WithLabelValues(op, outcome).Inc()
	StoreLatency.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (s *instrumented) Insert(ctx context.Context, t *domain.Task) error {
	start := time.Now()
	err := s.next.Insert(ctx, t)
	observe("insert", start, err)
	return err
}

func (s *instrumented) Find(ctx context.Context, skip, limit int64) ([]*domain.Task, error) {
	start := time.Now()
	res, err := s.next.Find(ctx, skip, limit)
	observe("find", start, err)
	return res, err
}

func (s *instrumented) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	start := time.Now()
	t, err := s.next.FindByID(ctx, id)
	observe("find_by_id", start, err)
	return t, err
}

func (s *instrumented) FindByDueDate(ctx context.Context, due string) ([]*domain.Task, error) {
	start := time.Now()
	res, err := s.next.FindByDueDate(ctx, due)
	observe("find_by_due_date", start, err)
	return res, err
}

func (s *instrumented) SetCompleted(ctx context.Context, id string, completed bool) error {
	start := time.Now()
	err := s.next.SetCompleted(ctx, id, completed)
	observe("set_completed", start, err)
	return err
}

func (s *instrumented) SetIndex(ctx context.Context, id string, index int64) error {
	start := time.Now()
	err := s.next.SetIndex(ctx, id, index)
	observe("set_index", start, err)
	return err
}

func (s *instrumented) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := s.next.Delete(ctx, id)
	observe("delete", start, err)
	return err
}

func (s *instrumented) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}
