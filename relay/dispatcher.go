package relay

import (
	"context"
	"strings"
	"time"

	"github.com/goliatone/go-bouncer/core"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// Dispatcher filters moderation events and schedules notification delivery.
// Both hooks are designed to sit inside a host mutation pipeline: they never
// modify the result, never block on network IO, and never surface errors.
type Dispatcher struct {
	runtime   *core.Runtime
	comments  core.CommentReader
	transport core.IngestTransport
	scheduler core.Scheduler
}

// Option overrides a collaborator the runtime did not carry.
type Option func(*Dispatcher)

func WithTransport(transport core.IngestTransport) Option {
	return func(d *Dispatcher) {
		if transport != nil {
			d.transport = transport
		}
	}
}

func WithScheduler(scheduler core.Scheduler) Option {
	return func(d *Dispatcher) {
		if scheduler != nil {
			d.scheduler = scheduler
		}
	}
}

// NewDispatcher wires a dispatcher from a configured runtime. When no
// scheduler was injected the dispatcher falls back to a goroutine scheduler.
// A transport is required whenever delivery is enabled.
func NewDispatcher(runtime *core.Runtime, options ...Option) (*Dispatcher, error) {
	if runtime == nil {
		return nil, relayError("relay: runtime is required", goerrors.CategoryBadInput)
	}

	dispatcher := &Dispatcher{
		runtime:   runtime,
		comments:  runtime.Comments(),
		transport: runtime.Transport(),
		scheduler: runtime.Scheduler(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(dispatcher)
		}
	}

	if dispatcher.scheduler == nil {
		dispatcher.scheduler = NewGoroutineScheduler(runtime.Logger())
	}

	if runtime.Config().DeliveryEnabled() && dispatcher.transport == nil {
		return nil, relayError("relay: ingest transport is required when delivery is enabled", goerrors.CategoryOperation)
	}

	return dispatcher, nil
}

// CommentCreated forwards every newly created comment for ingestion. The
// result is returned unchanged regardless of delivery outcome.
func (d *Dispatcher) CommentCreated(ctx context.Context, res core.CommentCreatedResult) core.CommentCreatedResult {
	if d == nil || d.runtime == nil {
		return res
	}

	startedAt := time.Now()

	if !d.runtime.Config().DeliveryEnabled() {
		return res
	}

	if res.Comment == nil {
		return res
	}

	commentID := strings.TrimSpace(res.Comment.ID)
	if commentID == "" {
		return res
	}

	d.schedule(ctx, startedAt, core.NotificationPayload{
		ID:     commentID,
		Source: core.SourceComment,
	})

	return res
}

// FlagCreated forwards a comment for ingestion when the flag is the first one
// recorded against a comment that has not already been actioned by a
// moderator. Every other shape of flag passes through silently.
func (d *Dispatcher) FlagCreated(ctx context.Context, res core.FlagCreatedResult) core.FlagCreatedResult {
	if d == nil || d.runtime == nil {
		return res
	}

	startedAt := time.Now()

	if !d.runtime.Config().DeliveryEnabled() {
		return res
	}

	flag := res.Flag
	if flag == nil || !flag.TargetsComment() {
		return res
	}

	itemID := strings.TrimSpace(flag.ItemID)
	if itemID == "" {
		return res
	}

	if d.comments == nil {
		d.runtime.LogError(ctx, "relay: comment reader is not configured, dropping flag event", map[string]any{
			"comment_id": itemID,
		})
		return res
	}

	comment, err := d.comments.GetByID(ctx, itemID)
	if err != nil {
		d.runtime.LogError(ctx, "relay: comment lookup failed, dropping flag event", map[string]any{
			"comment_id": itemID,
			"error":      err.Error(),
		})
		return res
	}

	if !Eligible(comment) {
		return res
	}

	d.schedule(ctx, startedAt, core.NotificationPayload{
		ID:     comment.ID,
		Source: core.SourceFlag,
	})

	return res
}

// Eligible reports whether a flagged comment should be forwarded: the flag
// being processed must be the first, and no moderator may have acted on the
// comment already. Unknown history entries count as moderator action.
func Eligible(comment core.Comment) bool {
	if comment.ActionCounts.Flag != 0 {
		return false
	}

	for _, entry := range comment.StatusHistory {
		if !entry.Type.Neutral() {
			return false
		}
	}

	return true
}

func (d *Dispatcher) schedule(ctx context.Context, startedAt time.Time, payload core.NotificationPayload) {
	transport := d.transport
	taskID := uuid.NewString()

	d.scheduler.Schedule(core.Task{
		ID:   taskID,
		Name: "bouncer.deliver." + string(payload.Source),
		Run: func(taskCtx context.Context) error {
			return transport.Deliver(taskCtx, payload)
		},
	})

	d.runtime.ObserveOperation(ctx, startedAt, "notify_"+string(payload.Source), nil, map[string]any{
		"comment_id": payload.ID,
		"source":     string(payload.Source),
		"task_id":    taskID,
	})
}
