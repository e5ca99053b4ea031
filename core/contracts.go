package core

import (
	"context"
	"net/http"

	glog "github.com/goliatone/go-logger/glog"
)

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

// CommentReader is the read-only comment lookup collaborator. Lookups during
// a flag-created hook are expected to be served from an operation-scoped
// cache when the comment was already loaded earlier in the same mutation.
type CommentReader interface {
	GetByID(ctx context.Context, id string) (Comment, error)
}

// IngestTransport performs the outbound POST of a notification payload to
// the configured bouncer endpoint.
type IngestTransport interface {
	Deliver(ctx context.Context, payload NotificationPayload) error
}

// Task is one scheduled unit of fire-and-forget work. Run failures are
// captured by the scheduler, logged, and discarded.
type Task struct {
	ID   string
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler defers a task off the caller's request path. Schedule must
// return before the task runs; completion is never awaited.
type Scheduler interface {
	Schedule(task Task)
}

// Translator is the host platform's localization collaborator.
type Translator interface {
	Translate(ctx context.Context, key string, replacements map[string]string) (string, error)
}

// Authorizer is the host platform's access-control collaborator: it wraps
// an endpoint so only callers holding one of the given roles pass through.
type Authorizer interface {
	Require(roles ...string) func(http.Handler) http.Handler
}

// CommentStoreFactory builds a comment reader from an opaque persistence
// client, mirroring how the host injects storage wiring.
type CommentStoreFactory interface {
	BuildCommentStore(persistenceClient any) (CommentReader, error)
}
