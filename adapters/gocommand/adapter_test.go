package gocommand

import (
	"context"
	"errors"
	"testing"

	gocmd "github.com/goliatone/go-command"
	"github.com/goliatone/go-bouncer/command"
	"github.com/goliatone/go-bouncer/core"
	"github.com/goliatone/go-bouncer/query"
)

type okMessage struct{}

func (okMessage) Type() string { return "bouncer.command.ok" }

type invalidMessage struct{}

func (invalidMessage) Type() string { return "" }

type failingMessage struct{}

func (failingMessage) Type() string { return "bouncer.command.fail" }

func (failingMessage) Validate() error { return errors.New("invalid payload") }

func TestValidateMessageContract(t *testing.T) {
	if err := ValidateMessageContract(okMessage{}); err != nil {
		t.Fatalf("expected valid message, got %v", err)
	}
	if err := ValidateMessageContract(invalidMessage{}); err == nil {
		t.Fatalf("expected empty type to fail contract validation")
	}
	if err := ValidateMessageContract(failingMessage{}); err == nil {
		t.Fatalf("expected Validate() failure to bubble")
	}
}

func TestRegisterRelay_WiresHandlersAndDispatch(t *testing.T) {
	adapter := NewRegistryAdapter(gocmd.NewRegistry())

	hookCalls := 0
	handlers := RelayHandlers{
		NotifyCommentCreated: command.NewNotifyCommentCreatedCommand(hookServiceStub{
			onCommentCreated: func() { hookCalls++ },
		}),
		GetComment: query.NewGetCommentQuery(readerStub{
			comment: core.Comment{ID: "comment-1"},
		}),
	}

	subscriptions, err := RegisterRelay(adapter, handlers)
	if err != nil {
		t.Fatalf("register relay: %v", err)
	}
	defer func() {
		for _, subscription := range subscriptions {
			subscription.Unsubscribe()
		}
	}()
	if len(subscriptions) != 2 {
		t.Fatalf("expected two subscriptions, got %d", len(subscriptions))
	}

	msg := command.NotifyCommentCreatedMessage{
		Result: core.CommentCreatedResult{Comment: &core.Comment{ID: "comment-1"}},
	}
	if err := Dispatch(context.Background(), msg); err != nil {
		t.Fatalf("dispatch notify: %v", err)
	}
	if hookCalls != 1 {
		t.Fatalf("expected one hook invocation, got %d", hookCalls)
	}

	comment, err := Query[query.GetCommentMessage, core.Comment](
		context.Background(),
		query.GetCommentMessage{CommentID: "comment-1"},
	)
	if err != nil {
		t.Fatalf("query comment: %v", err)
	}
	if comment.ID != "comment-1" {
		t.Fatalf("unexpected comment: %#v", comment)
	}
}

func TestRegisterRelay_RequiresRegistry(t *testing.T) {
	if _, err := RegisterRelay(nil, RelayHandlers{}); err == nil {
		t.Fatalf("expected registry requirement error")
	}
}

type hookServiceStub struct {
	onCommentCreated func()
}

func (s hookServiceStub) CommentCreated(_ context.Context, res core.CommentCreatedResult) core.CommentCreatedResult {
	if s.onCommentCreated != nil {
		s.onCommentCreated()
	}
	return res
}

func (s hookServiceStub) FlagCreated(_ context.Context, res core.FlagCreatedResult) core.FlagCreatedResult {
	return res
}

type readerStub struct {
	comment core.Comment
}

func (s readerStub) GetByID(context.Context, string) (core.Comment, error) {
	return s.comment, nil
}
