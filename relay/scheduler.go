package relay

import (
	"context"
	"fmt"
	"sync"

	"github.com/goliatone/go-bouncer/core"
	glog "github.com/goliatone/go-logger/glog"
)

// GoroutineScheduler runs delivery tasks on detached goroutines. Tasks do not
// inherit the triggering request context, so an aborted host mutation never
// cancels an in-flight delivery. Failures and panics are logged and dropped.
type GoroutineScheduler struct {
	logger core.Logger
	wg     sync.WaitGroup
}

// NewGoroutineScheduler builds a scheduler that logs task failures through
// the given logger.
func NewGoroutineScheduler(logger core.Logger) *GoroutineScheduler {
	return &GoroutineScheduler{
		logger: glog.Ensure(logger),
	}
}

// Schedule runs the task asynchronously. Nil schedulers and tasks without a
// run function are ignored.
func (s *GoroutineScheduler) Schedule(task core.Task) {
	if s == nil || task.Run == nil {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("bouncer: delivery task panicked",
					"task", task.Name,
					"task_id", task.ID,
					"panic", fmt.Sprint(rec),
				)
			}
		}()

		if err := task.Run(context.Background()); err != nil {
			s.logger.Error("bouncer: delivery task failed",
				"task", task.Name,
				"task_id", task.ID,
				"error", err.Error(),
			)
		}
	}()
}

// Wait blocks until every task scheduled so far has finished. Intended for
// orderly shutdown and tests; steady-state callers never wait on deliveries.
func (s *GoroutineScheduler) Wait() {
	if s == nil {
		return
	}
	s.wg.Wait()
}

var _ core.Scheduler = (*GoroutineScheduler)(nil)
