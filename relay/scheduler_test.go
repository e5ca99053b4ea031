package relay

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/goliatone/go-bouncer/core"
)

func TestGoroutineScheduler_RunsTask(t *testing.T) {
	scheduler := NewGoroutineScheduler(stubLogger{})

	done := make(chan string, 1)
	scheduler.Schedule(core.Task{
		ID:   "task-1",
		Name: "bouncer.deliver.comment",
		Run: func(ctx context.Context) error {
			if ctx == nil {
				t.Error("expected a task context")
			}
			done <- "ran"
			return nil
		},
	})

	scheduler.Wait()
	select {
	case <-done:
	default:
		t.Fatal("expected the task to have run")
	}
}

func TestGoroutineScheduler_LogsFailure(t *testing.T) {
	logger := &recordLogger{}
	scheduler := NewGoroutineScheduler(logger)

	scheduler.Schedule(core.Task{
		ID:   "task-1",
		Name: "bouncer.deliver.flag",
		Run: func(context.Context) error {
			return errors.New("ingest endpoint unavailable")
		},
	})
	scheduler.Wait()

	records := logger.snapshot()
	if len(records) != 1 {
		t.Fatalf("expected one error record, got %d", len(records))
	}
	if records[0].msg != "bouncer: delivery task failed" {
		t.Fatalf("unexpected log message: %q", records[0].msg)
	}
	if records[0].fields["task_id"] != "task-1" {
		t.Fatalf("expected task_id field, got %+v", records[0].fields)
	}
}

func TestGoroutineScheduler_RecoversPanic(t *testing.T) {
	logger := &recordLogger{}
	scheduler := NewGoroutineScheduler(logger)

	scheduler.Schedule(core.Task{
		ID:   "task-1",
		Name: "bouncer.deliver.comment",
		Run: func(context.Context) error {
			panic("boom")
		},
	})
	scheduler.Wait()

	records := logger.snapshot()
	if len(records) != 1 {
		t.Fatalf("expected one panic record, got %d", len(records))
	}
	if records[0].msg != "bouncer: delivery task panicked" {
		t.Fatalf("unexpected log message: %q", records[0].msg)
	}
	if records[0].fields["panic"] != "boom" {
		t.Fatalf("expected panic field, got %+v", records[0].fields)
	}
}

func TestGoroutineScheduler_IgnoresEmptyTasks(t *testing.T) {
	scheduler := NewGoroutineScheduler(stubLogger{})
	scheduler.Schedule(core.Task{ID: "task-1", Name: "noop"})
	scheduler.Wait()
}

type loggedRecord struct {
	msg    string
	fields map[string]any
}

type recordLogger struct {
	stubLogger
	mu      sync.Mutex
	records []loggedRecord
}

func (l *recordLogger) Error(msg string, args ...any) {
	fields := map[string]any{}
	for index := 0; index+1 < len(args); index += 2 {
		key, ok := args[index].(string)
		if !ok {
			continue
		}
		fields[key] = args[index+1]
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, loggedRecord{msg: msg, fields: fields})
}

func (l *recordLogger) WithContext(context.Context) core.Logger {
	return l
}

func (l *recordLogger) snapshot() []loggedRecord {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]loggedRecord, len(l.records))
	copy(out, l.records)
	return out
}
