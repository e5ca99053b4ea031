package transport

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-bouncer/core"
)

func deliveryConfig(url string) core.Config {
	cfg := core.DefaultConfig()
	cfg.IngestionURL = url
	cfg.HandshakeToken = "shared-secret"
	cfg.AuthToken = "Bearer abc123"
	return cfg
}

func TestIngestClient_PostsPayloadWithRelayHeaders(t *testing.T) {
	var (
		gotBody    core.NotificationPayload
		gotHeaders http.Header
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeaders = r.Header.Clone()
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request body: %v", err)
		}
		if err := json.Unmarshal(body, &gotBody); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	cfg := deliveryConfig(server.URL)
	client := NewIngestClient(cfg, nil)

	err := client.Deliver(context.Background(), core.NotificationPayload{
		ID:     "comment-1",
		Source: core.SourceComment,
	})
	if err != nil {
		t.Fatalf("deliver: %v", err)
	}

	if gotBody.ID != "comment-1" || gotBody.Source != core.SourceComment {
		t.Fatalf("payload = %+v", gotBody)
	}
	if gotHeaders.Get(HeaderHandshakeToken) != "shared-secret" {
		t.Fatalf("handshake token header = %q", gotHeaders.Get(HeaderHandshakeToken))
	}
	if gotHeaders.Get("Authorization") != "Bearer abc123" {
		t.Fatalf("authorization header = %q", gotHeaders.Get("Authorization"))
	}
	if gotHeaders.Get("Content-Type") != "application/json" {
		t.Fatalf("content type = %q", gotHeaders.Get("Content-Type"))
	}
	if gotHeaders.Get("User-Agent") != cfg.UserAgent() {
		t.Fatalf("user agent = %q, want %q", gotHeaders.Get("User-Agent"), cfg.UserAgent())
	}
}

func TestIngestClient_NonSuccessStatusIsExternalFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewIngestClient(deliveryConfig(server.URL), nil)
	err := client.Deliver(context.Background(), core.NotificationPayload{
		ID:     "comment-1",
		Source: core.SourceFlag,
	})
	if err == nil {
		t.Fatalf("expected delivery failure for 500 response")
	}

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if richErr.Category != goerrors.CategoryExternal {
		t.Fatalf("category = %v, want external", richErr.Category)
	}
	if richErr.TextCode != core.RelayErrorDeliveryFailed {
		t.Fatalf("text code = %q", richErr.TextCode)
	}
}

func TestIngestClient_NetworkErrorIsExternalFailure(t *testing.T) {
	client := NewIngestClient(deliveryConfig("https://bouncer.example.com/ingest"), failingDoer{})
	err := client.Deliver(context.Background(), core.NotificationPayload{
		ID:     "comment-1",
		Source: core.SourceComment,
	})
	if err == nil {
		t.Fatalf("expected delivery failure for network error")
	}

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if richErr.Category != goerrors.CategoryExternal {
		t.Fatalf("category = %v, want external", richErr.Category)
	}
}

func TestIngestClient_RefusesWhenDeliveryDisabled(t *testing.T) {
	cfg := core.DefaultConfig()
	cfg.IngestionURL = "https://bouncer.example.com/ingest"
	cfg.HandshakeToken = "shared-secret"
	// auth token intentionally absent

	client := NewIngestClient(cfg, failingDoer{})
	err := client.Deliver(context.Background(), core.NotificationPayload{
		ID:     "comment-1",
		Source: core.SourceComment,
	})
	if err == nil {
		t.Fatalf("expected disabled-configuration error")
	}

	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		t.Fatalf("expected rich error, got %T", err)
	}
	if richErr.TextCode != core.RelayErrorDisabled {
		t.Fatalf("text code = %q, want %q", richErr.TextCode, core.RelayErrorDisabled)
	}
}

func TestIngestClient_RequiresNotificationID(t *testing.T) {
	client := NewIngestClient(deliveryConfig("https://bouncer.example.com/ingest"), failingDoer{})
	err := client.Deliver(context.Background(), core.NotificationPayload{Source: core.SourceComment})
	if err == nil {
		t.Fatalf("expected missing id error")
	}
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("dial tcp: connection refused")
}
