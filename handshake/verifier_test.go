package handshake

import (
	"context"
	"net/http"
	"testing"

	"github.com/goliatone/go-bouncer/core"
	goerrors "github.com/goliatone/go-errors"
)

func TestVerifier_MatchEchoesChallenge(t *testing.T) {
	verifier := newTestVerifier(t, handshakeConfig())

	body := []byte(`{
		"challenge": "abc-123",
		"handshake_token": "handshake-token",
		"injestion_url": "https://bouncer.example.com/api/ingest"
	}`)

	result, err := verifier.Verify(context.Background(), body)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if result.State != StateMatched {
		t.Fatalf("expected matched state, got %q", result.State)
	}
	if result.StatusCode != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", result.StatusCode)
	}
	if result.Response == nil || result.Response.Challenge != "abc-123" {
		t.Fatalf("expected challenge echo, got %+v", result.Response)
	}
	if result.Response.ClientVersion != core.Version {
		t.Fatalf("expected client version %q, got %q", core.Version, result.Response.ClientVersion)
	}
}

func TestVerifier_DropsUnknownFields(t *testing.T) {
	verifier := newTestVerifier(t, handshakeConfig())

	body := []byte(`{
		"challenge": "abc-123",
		"handshake_token": "handshake-token",
		"injestion_url": "https://bouncer.example.com/api/ingest",
		"extra": {"nested": true}
	}`)

	result, err := verifier.Verify(context.Background(), body)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if result.State != StateMatched {
		t.Fatalf("expected matched state, got %q", result.State)
	}
}

func TestVerifier_RejectionsAreIndistinguishable(t *testing.T) {
	valid := `{
		"challenge": "abc-123",
		"handshake_token": "handshake-token",
		"injestion_url": "https://bouncer.example.com/api/ingest"
	}`

	cases := []struct {
		name string
		cfg  core.Config
		body string
	}{
		{
			name: "invalid json",
			cfg:  handshakeConfig(),
			body: `{`,
		},
		{
			name: "array body",
			cfg:  handshakeConfig(),
			body: `[]`,
		},
		{
			name: "missing challenge",
			cfg:  handshakeConfig(),
			body: `{"handshake_token": "handshake-token", "injestion_url": "https://bouncer.example.com/api/ingest"}`,
		},
		{
			name: "numeric challenge",
			cfg:  handshakeConfig(),
			body: `{"challenge": 123, "handshake_token": "handshake-token", "injestion_url": "https://bouncer.example.com/api/ingest"}`,
		},
		{
			name: "null challenge",
			cfg:  handshakeConfig(),
			body: `{"challenge": null, "handshake_token": "handshake-token", "injestion_url": "https://bouncer.example.com/api/ingest"}`,
		},
		{
			name: "empty challenge",
			cfg:  handshakeConfig(),
			body: `{"challenge": "", "handshake_token": "handshake-token", "injestion_url": "https://bouncer.example.com/api/ingest"}`,
		},
		{
			name: "null token",
			cfg:  handshakeConfig(),
			body: `{"challenge": "abc-123", "handshake_token": null, "injestion_url": "https://bouncer.example.com/api/ingest"}`,
		},
		{
			name: "token mismatch",
			cfg:  handshakeConfig(),
			body: `{"challenge": "abc-123", "handshake_token": "wrong", "injestion_url": "https://bouncer.example.com/api/ingest"}`,
		},
		{
			name: "url mismatch",
			cfg:  handshakeConfig(),
			body: `{"challenge": "abc-123", "handshake_token": "handshake-token", "injestion_url": "https://other.example.com/api/ingest"}`,
		},
		{
			name: "auth token already issued",
			cfg: func() core.Config {
				cfg := handshakeConfig()
				cfg.AuthToken = "auth-token"
				return cfg
			}(),
			body: valid,
		},
	}

	var firstMessage string
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verifier := newTestVerifier(t, tc.cfg)

			result, err := verifier.Verify(context.Background(), []byte(tc.body))
			if err == nil {
				t.Fatal("expected a rejection")
			}
			if result.State != StateRejected {
				t.Fatalf("expected rejected state, got %q", result.State)
			}
			if result.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", result.StatusCode)
			}
			if result.Response != nil {
				t.Fatalf("expected no response body, got %+v", result.Response)
			}

			var richErr *goerrors.Error
			if !goerrors.As(err, &richErr) {
				t.Fatalf("expected a rich error, got %T", err)
			}
			if richErr.TextCode != core.RelayErrorHandshakeRejected {
				t.Fatalf("unexpected text code: %q", richErr.TextCode)
			}
			if firstMessage == "" {
				firstMessage = err.Error()
			} else if err.Error() != firstMessage {
				t.Fatalf("rejection envelopes must be identical, got %q and %q", firstMessage, err.Error())
			}
		})
	}
}

func newTestVerifier(t *testing.T, cfg core.Config) *Verifier {
	t.Helper()

	runtime, err := core.NewRuntime(cfg,
		core.WithLogger(stubLogger{}),
		core.WithConfigProvider(core.NewCfgxConfigProvider(nil)),
	)
	if err != nil {
		t.Fatalf("NewRuntime() error = %v", err)
	}

	verifier, err := NewVerifier(runtime)
	if err != nil {
		t.Fatalf("NewVerifier() error = %v", err)
	}
	return verifier
}

func handshakeConfig() core.Config {
	cfg := core.DefaultConfig()
	cfg.IngestionURL = "https://bouncer.example.com/api/ingest"
	cfg.HandshakeToken = "handshake-token"
	return cfg
}

type stubLogger struct{}

func (stubLogger) Trace(string, ...any) {}
func (stubLogger) Debug(string, ...any) {}
func (stubLogger) Info(string, ...any)  {}
func (stubLogger) Warn(string, ...any)  {}
func (stubLogger) Error(string, ...any) {}
func (stubLogger) Fatal(string, ...any) {}
func (s stubLogger) WithContext(context.Context) core.Logger {
	return s
}
