package handshake

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/goliatone/go-bouncer/core"
)

// State tracks a verification attempt through its lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateRejected   State = "rejected"
	StateMatched    State = "matched"
)

// Result is the outcome of one verification attempt. Response is set only on
// a match.
type Result struct {
	State      State
	StatusCode int
	Response   *core.HandshakeResponse
}

// Verifier checks handshake requests against the configured shared secret and
// ingestion endpoint.
type Verifier struct {
	runtime *core.Runtime
}

func NewVerifier(runtime *core.Runtime) (*Verifier, error) {
	if runtime == nil {
		return nil, handshakeError("handshake: runtime is required")
	}
	return &Verifier{runtime: runtime}, nil
}

// Verify validates the raw request body and compares its credentials against
// the runtime configuration. The returned error is identical for every
// rejection; the specific reason is only logged.
func (v *Verifier) Verify(ctx context.Context, body []byte) (Result, error) {
	if v == nil || v.runtime == nil {
		return Result{State: StateRejected, StatusCode: http.StatusBadRequest}, handshakeRejected()
	}

	startedAt := time.Now()
	result := Result{State: StateValidating}

	request, reason := decodeStrict(body)
	if reason == "" {
		reason = v.compare(request)
	}

	if reason != "" {
		result.State = StateRejected
		result.StatusCode = http.StatusBadRequest

		err := handshakeRejected()
		v.runtime.ObserveOperation(ctx, startedAt, "handshake_verify", err, map[string]any{
			"state":  string(result.State),
			"reason": reason,
		})
		return result, err
	}

	result.State = StateMatched
	result.StatusCode = http.StatusAccepted
	result.Response = &core.HandshakeResponse{
		Challenge:     request.Challenge,
		ClientVersion: v.runtime.Config().ClientVersion,
	}

	v.runtime.ObserveOperation(ctx, startedAt, "handshake_verify", nil, map[string]any{
		"state": string(result.State),
	})
	return result, nil
}

// decodeStrict requires a JSON object carrying challenge, handshake_token and
// injestion_url as non-empty JSON strings. No type coercion; null and empty
// values are rejected, unknown members dropped.
func decodeStrict(body []byte) (core.HandshakeRequest, string) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return core.HandshakeRequest{}, "body is not a json object"
	}

	request := core.HandshakeRequest{}
	for _, field := range []struct {
		key    string
		target *string
	}{
		{key: "challenge", target: &request.Challenge},
		{key: "handshake_token", target: &request.HandshakeToken},
		{key: "injestion_url", target: &request.InjestionURL},
	} {
		value, ok := raw[field.key]
		if !ok {
			return core.HandshakeRequest{}, "missing field " + field.key
		}
		// Unmarshal into a string target leaves it untouched on json null,
		// so require a string token explicitly.
		token := bytes.TrimSpace(value)
		if len(token) == 0 || token[0] != '"' {
			return core.HandshakeRequest{}, "field " + field.key + " is not a string"
		}
		if err := json.Unmarshal(token, field.target); err != nil {
			return core.HandshakeRequest{}, "field " + field.key + " is not a string"
		}
		if *field.target == "" {
			return core.HandshakeRequest{}, "field " + field.key + " is empty"
		}
	}

	return request, ""
}

func (v *Verifier) compare(request core.HandshakeRequest) string {
	cfg := v.runtime.Config()

	if !cfg.HandshakeEnabled() {
		return "handshake is not configured"
	}
	if cfg.AuthToken != "" {
		return "auth token already issued"
	}
	if request.HandshakeToken != cfg.HandshakeToken {
		return "handshake token mismatch"
	}
	if request.InjestionURL != cfg.IngestionURL {
		return "ingestion url mismatch"
	}
	return ""
}
