package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-bouncer/core"
	"github.com/goliatone/go-bouncer/handshake"
)

// HookService is the dispatcher surface the notify commands wrap.
type HookService interface {
	CommentCreated(ctx context.Context, res core.CommentCreatedResult) core.CommentCreatedResult
	FlagCreated(ctx context.Context, res core.FlagCreatedResult) core.FlagCreatedResult
}

// HandshakeService verifies a raw handshake request body.
type HandshakeService interface {
	Verify(ctx context.Context, body []byte) (handshake.Result, error)
}

type NotifyCommentCreatedCommand struct {
	service HookService
}

func NewNotifyCommentCreatedCommand(service HookService) *NotifyCommentCreatedCommand {
	return &NotifyCommentCreatedCommand{service: service}
}

func (c *NotifyCommentCreatedCommand) Execute(ctx context.Context, msg NotifyCommentCreatedMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: hook service is required")
	}
	out := c.service.CommentCreated(ctx, msg.Result)
	storeResult(ctx, out)
	return nil
}

type NotifyFlagCreatedCommand struct {
	service HookService
}

func NewNotifyFlagCreatedCommand(service HookService) *NotifyFlagCreatedCommand {
	return &NotifyFlagCreatedCommand{service: service}
}

func (c *NotifyFlagCreatedCommand) Execute(ctx context.Context, msg NotifyFlagCreatedMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: hook service is required")
	}
	out := c.service.FlagCreated(ctx, msg.Result)
	storeResult(ctx, out)
	return nil
}

type VerifyHandshakeCommand struct {
	service HandshakeService
}

func NewVerifyHandshakeCommand(service HandshakeService) *VerifyHandshakeCommand {
	return &VerifyHandshakeCommand{service: service}
}

func (c *VerifyHandshakeCommand) Execute(ctx context.Context, msg VerifyHandshakeMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: handshake service is required")
	}
	out, err := c.service.Verify(ctx, msg.Body)
	if err != nil {
		return err
	}
	storeResult(ctx, out)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
