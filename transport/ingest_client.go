// Package transport performs the outbound notification POST to the bouncer
// ingestion endpoint.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-bouncer/core"
)

const HeaderHandshakeToken = "X-Handshake-Token"

const defaultIngestClientTimeout = 30 * time.Second
const maxIngestResponseBytes int64 = 1 << 20 // 1 MiB; the bouncer body is discarded anyway

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// IngestClient posts JSON-encoded notification payloads to the configured
// ingestion URL. A nil client falls back to a bounded-timeout http.Client so
// a hung bouncer endpoint cannot accumulate goroutines forever; best-effort
// delivery semantics are otherwise unchanged.
type IngestClient struct {
	Client HTTPDoer

	config core.Config
}

func NewIngestClient(cfg core.Config, client HTTPDoer) *IngestClient {
	if client == nil {
		timeout := cfg.DeliveryTimeout
		if timeout <= 0 {
			timeout = defaultIngestClientTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &IngestClient{
		Client: client,
		config: cfg,
	}
}

func (c *IngestClient) Deliver(ctx context.Context, payload core.NotificationPayload) error {
	if c == nil || c.Client == nil {
		return transportError(
			"transport: ingest client requires an http client",
			goerrors.CategoryInternal,
			http.StatusInternalServerError,
			nil,
		)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if !c.config.DeliveryEnabled() {
		return transportError(
			"transport: delivery is disabled by configuration",
			goerrors.CategoryOperation,
			http.StatusServiceUnavailable,
			nil,
		)
	}
	id := strings.TrimSpace(payload.ID)
	if id == "" {
		return transportError(
			"transport: notification id is required",
			goerrors.CategoryBadInput,
			http.StatusBadRequest,
			map[string]any{"source": string(payload.Source)},
		)
	}
	payload.ID = id

	parsedURL, err := url.Parse(strings.TrimSpace(c.config.IngestionURL))
	if err != nil {
		return transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: invalid ingestion url",
			http.StatusBadRequest,
			map[string]any{"url": strings.TrimSpace(c.config.IngestionURL)},
		)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return transportWrapError(
			err,
			goerrors.CategoryInternal,
			"transport: encode notification payload",
			http.StatusInternalServerError,
			map[string]any{"comment_id": id, "source": string(payload.Source)},
		)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, parsedURL.String(), bytes.NewReader(body))
	if err != nil {
		return transportWrapError(
			err,
			goerrors.CategoryBadInput,
			"transport: create ingest request",
			http.StatusBadRequest,
			map[string]any{"url": parsedURL.String()},
		)
	}
	httpReq.Header.Set(HeaderHandshakeToken, strings.TrimSpace(c.config.HandshakeToken))
	httpReq.Header.Set("Authorization", strings.TrimSpace(c.config.AuthToken))
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", c.config.UserAgent())

	startedAt := time.Now().UTC()
	httpRes, err := c.Client.Do(httpReq)
	if err != nil {
		return transportWrapError(
			err,
			goerrors.CategoryExternal,
			"transport: deliver notification",
			http.StatusBadGateway,
			map[string]any{"comment_id": id, "source": string(payload.Source)},
		)
	}
	defer httpRes.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(httpRes.Body, maxIngestResponseBytes))

	if httpRes.StatusCode < http.StatusOK || httpRes.StatusCode >= http.StatusMultipleChoices {
		return transportError(
			fmt.Sprintf("transport: deliver notification returned status %d", httpRes.StatusCode),
			goerrors.CategoryExternal,
			http.StatusBadGateway,
			map[string]any{
				"comment_id":  id,
				"source":      string(payload.Source),
				"status_code": httpRes.StatusCode,
				"duration_ms": time.Since(startedAt).Milliseconds(),
			},
		)
	}
	return nil
}

var _ core.IngestTransport = (*IngestClient)(nil)
