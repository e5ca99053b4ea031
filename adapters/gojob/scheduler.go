// Package gojob provides a queue-backed alternative to the in-process
// goroutine scheduler: deliveries are enqueued as job executions and run by
// a worker loop. Semantics stay fire-and-forget; failed deliveries are
// dead-lettered, never retried.
package gojob

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-bouncer/core"
	job "github.com/goliatone/go-job"
	"github.com/goliatone/go-job/queue"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
)

// JobIDDeliver is the job id every relay delivery is enqueued under.
const JobIDDeliver = "bouncer.deliver"

// QueueScheduler implements the relay scheduler contract over a job queue.
// Tasks carry closures, so the scheduler keeps them in a local registry and
// enqueues only the task id; Schedule and the worker loop must therefore run
// in the same process.
type QueueScheduler struct {
	enqueuer queue.Enqueuer
	logger   core.Logger

	mu      sync.Mutex
	pending map[string]core.Task
}

func NewQueueScheduler(enqueuer queue.Enqueuer, logger core.Logger) (*QueueScheduler, error) {
	if enqueuer == nil {
		return nil, fmt.Errorf("gojob: enqueuer is required")
	}
	return &QueueScheduler{
		enqueuer: enqueuer,
		logger:   glog.Ensure(logger),
		pending:  map[string]core.Task{},
	}, nil
}

// Schedule registers the task and enqueues its execution message. Enqueue
// failures are logged and the task is dropped.
func (s *QueueScheduler) Schedule(task core.Task) {
	if s == nil || task.Run == nil {
		return
	}

	id := strings.TrimSpace(task.ID)
	if id == "" {
		id = uuid.NewString()
	}

	s.mu.Lock()
	s.pending[id] = task
	s.mu.Unlock()

	msg := &job.ExecutionMessage{
		JobID:          JobIDDeliver,
		IdempotencyKey: id,
		Parameters: map[string]any{
			"task_name": task.Name,
		},
	}
	if _, err := s.enqueuer.Enqueue(context.Background(), msg); err != nil {
		s.forget(id)
		s.logger.Error("bouncer: delivery enqueue failed",
			"task", task.Name,
			"task_id", id,
			"error", err.Error(),
		)
	}
}

// ProcessOne dequeues a single delivery and runs its task. Worker loops call
// this until the context is cancelled.
func (s *QueueScheduler) ProcessOne(ctx context.Context, dequeuer queue.Dequeuer) error {
	if s == nil {
		return fmt.Errorf("gojob: queue scheduler is not configured")
	}
	if dequeuer == nil {
		return fmt.Errorf("gojob: dequeuer is required")
	}

	delivery, err := dequeuer.Dequeue(ctx)
	if err != nil {
		return err
	}
	return s.handle(ctx, delivery)
}

// Run consumes deliveries until the context is done.
func (s *QueueScheduler) Run(ctx context.Context, dequeuer queue.Dequeuer) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.ProcessOne(ctx, dequeuer); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Error("bouncer: delivery dequeue failed", "error", err.Error())
		}
	}
}

func (s *QueueScheduler) handle(ctx context.Context, delivery queue.Delivery) error {
	if delivery == nil {
		return fmt.Errorf("gojob: delivery is required")
	}

	msg := delivery.Message()
	if msg == nil || strings.TrimSpace(msg.IdempotencyKey) == "" {
		return delivery.Nack(ctx, queue.NackOptions{
			Disposition: queue.NackDispositionDeadLetter,
			Reason:      "gojob: delivery has no task id",
		})
	}

	task, ok := s.take(msg.IdempotencyKey)
	if !ok {
		return delivery.Nack(ctx, queue.NackOptions{
			Disposition: queue.NackDispositionDeadLetter,
			Reason:      "gojob: task is not registered in this process",
		})
	}

	if err := task.Run(ctx); err != nil {
		s.logger.Error("bouncer: delivery task failed",
			"task", task.Name,
			"task_id", msg.IdempotencyKey,
			"error", err.Error(),
		)
		return delivery.Nack(ctx, queue.NackOptions{
			Disposition: queue.NackDispositionDeadLetter,
			Reason:      err.Error(),
		})
	}
	return delivery.Ack(ctx)
}

func (s *QueueScheduler) take(id string) (core.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	return task, ok
}

func (s *QueueScheduler) forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}

var _ core.Scheduler = (*QueueScheduler)(nil)
