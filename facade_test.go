package bouncer

import (
	"context"
	"testing"

	"github.com/goliatone/go-bouncer/command"
	"github.com/goliatone/go-bouncer/core"
)

func TestNewFacade_RequiresRelay(t *testing.T) {
	if _, err := NewFacade(nil); err == nil {
		t.Fatal("expected an error for a nil relay")
	}
}

func TestFacade_CommandsDriveTheDispatcher(t *testing.T) {
	transport := &recordingTransport{}
	relay := newTestRelay(t, deliveryConfig(),
		WithIngestTransport(transport),
		WithScheduler(inlineScheduler{}),
	)

	facade, err := NewFacade(relay)
	if err != nil {
		t.Fatalf("NewFacade() error = %v", err)
	}

	msg := command.NotifyCommentCreatedMessage{
		Result: core.CommentCreatedResult{Comment: &core.Comment{ID: "comment-5"}},
	}
	if err := facade.Commands().NotifyCommentCreated.Execute(context.Background(), msg); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	payloads := transport.snapshot()
	if len(payloads) != 1 || payloads[0].ID != "comment-5" {
		t.Fatalf("expected one delivery for comment-5, got %+v", payloads)
	}
}

func TestFacade_VerifyHandshakeRejectsMismatches(t *testing.T) {
	relay := newTestRelay(t, deliveryConfig(), WithIngestTransport(&recordingTransport{}))

	facade, err := NewFacade(relay)
	if err != nil {
		t.Fatalf("NewFacade() error = %v", err)
	}

	msg := command.VerifyHandshakeMessage{
		Body: []byte(`{"challenge": "abc", "handshake_token": "wrong", "injestion_url": "https://bouncer.example.com/api/ingest"}`),
	}
	if err := facade.Commands().VerifyHandshake.Execute(context.Background(), msg); err == nil {
		t.Fatal("expected a rejection error")
	}
}

func TestFacade_RelayHandlersAreComplete(t *testing.T) {
	relay := newTestRelay(t, deliveryConfig(), WithIngestTransport(&recordingTransport{}))

	facade, err := NewFacade(relay)
	if err != nil {
		t.Fatalf("NewFacade() error = %v", err)
	}

	handlers := facade.RelayHandlers()
	if handlers.NotifyCommentCreated == nil || handlers.NotifyFlagCreated == nil || handlers.VerifyHandshake == nil {
		t.Fatal("expected every command handler to be wired")
	}
	if handlers.GetComment == nil || handlers.Translate == nil {
		t.Fatal("expected every query handler to be wired")
	}
}
