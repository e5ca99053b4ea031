package inbound

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goliatone/go-bouncer/core"
	"github.com/goliatone/go-bouncer/handshake"
	goerrors "github.com/goliatone/go-errors"
)

// BasePath is where the host mounts the relay router on its mux.
const BasePath = "/api/bouncer"

// RoleAdmin and RoleModerator are the host roles allowed to call the relay
// endpoints.
const (
	RoleAdmin     = "ADMIN"
	RoleModerator = "MODERATOR"
)

const maxInboundBodyBytes = 1 << 16

const (
	contentTypeJSON = "application/json"
	contentTypeText = "text/plain"
)

type handler struct {
	runtime  *core.Runtime
	verifier *handshake.Verifier
}

// NewRouter builds the relay's chi router with routes relative to the mount
// point; hosts mount it at BasePath. It returns a nil router without error
// when the handshake is disabled: the host must not mount anything.
func NewRouter(runtime *core.Runtime, verifier *handshake.Verifier) (chi.Router, error) {
	if runtime == nil {
		return nil, inboundError("inbound: runtime is required", goerrors.CategoryBadInput)
	}

	if !runtime.Config().HandshakeEnabled() {
		return nil, nil
	}

	if verifier == nil {
		return nil, inboundError("inbound: handshake verifier is required", goerrors.CategoryBadInput)
	}

	h := &handler{runtime: runtime, verifier: verifier}

	router := chi.NewRouter()
	if authorizer := runtime.Authorizer(); authorizer != nil {
		router.Use(authorizer.Require(RoleAdmin, RoleModerator))
	}
	router.Post("/test", h.handleTest)
	router.Post("/translate", h.handleTranslate)

	return router, nil
}

// handleTest runs the handshake verification. Matches echo the challenge with
// a 202; every rejection is an empty 400.
func (h *handler) handleTest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxInboundBodyBytes))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	result, err := h.verifier.Verify(r.Context(), body)
	if err != nil || result.Response == nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(result.StatusCode)
	if encodeErr := json.NewEncoder(w).Encode(result.Response); encodeErr != nil {
		h.runtime.LogError(r.Context(), "inbound: handshake response write failed", map[string]any{
			"error": encodeErr.Error(),
		})
	}
}

type translateRequest struct {
	Key          string            `json:"key"`
	Replacements map[string]string `json:"replacements"`
}

type translateResponse struct {
	Translation string `json:"translation"`
}

// handleTranslate resolves a localization key through the host translator.
// The response format follows the Accept header: plain text, JSON, or 406.
func (h *handler) handleTranslate(w http.ResponseWriter, r *http.Request) {
	startedAt := time.Now()

	format, ok := negotiateFormat(r.Header.Get("Accept"))
	if !ok {
		w.WriteHeader(http.StatusNotAcceptable)
		return
	}

	translator := h.runtime.Translator()
	if translator == nil {
		h.writeError(w, r, inboundError("inbound: translator is not configured", goerrors.CategoryOperation))
		return
	}

	var request translateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxInboundBodyBytes)).Decode(&request); err != nil {
		h.writeError(w, r, inboundError("inbound: invalid translate request body", goerrors.CategoryBadInput))
		return
	}

	key := strings.TrimSpace(request.Key)
	if key == "" {
		h.writeError(w, r, inboundError("inbound: translate key is required", goerrors.CategoryBadInput))
		return
	}

	translation, err := translator.Translate(r.Context(), key, request.Replacements)
	h.runtime.ObserveOperation(r.Context(), startedAt, "translate", err, map[string]any{
		"key":    key,
		"format": format,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if format == contentTypeJSON {
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusOK)
		if encodeErr := json.NewEncoder(w).Encode(translateResponse{Translation: translation}); encodeErr != nil {
			h.runtime.LogError(r.Context(), "inbound: translate response write failed", map[string]any{
				"error": encodeErr.Error(),
			})
		}
		return
	}

	w.Header().Set("Content-Type", contentTypeText+"; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, writeErr := io.WriteString(w, translation); writeErr != nil {
		h.runtime.LogError(r.Context(), "inbound: translate response write failed", map[string]any{
			"error": writeErr.Error(),
		})
	}
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	mapped := h.runtime.MapError(err)

	status := http.StatusInternalServerError
	textCode := core.RelayErrorInternal
	message := "An unexpected error occurred"

	var richErr *goerrors.Error
	if goerrors.As(mapped, &richErr) {
		if richErr.Code != 0 {
			status = richErr.Code
		}
		if strings.TrimSpace(richErr.TextCode) != "" {
			textCode = richErr.TextCode
		}
		if strings.TrimSpace(richErr.Message) != "" {
			message = richErr.Message
		}
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if encodeErr := json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{
			"code":    textCode,
			"message": message,
		},
	}); encodeErr != nil {
		h.runtime.LogError(r.Context(), "inbound: error response write failed", map[string]any{
			"error": encodeErr.Error(),
		})
	}
}

// negotiateFormat picks the response media type for /translate. Plain text is
// the default for absent or wildcard Accept headers.
func negotiateFormat(accept string) (string, bool) {
	accept = strings.TrimSpace(accept)
	if accept == "" {
		return contentTypeText, true
	}

	for _, part := range strings.Split(accept, ",") {
		mediaRange := part
		if index := strings.Index(mediaRange, ";"); index >= 0 {
			mediaRange = mediaRange[:index]
		}
		mediaRange = strings.ToLower(strings.TrimSpace(mediaRange))

		switch mediaRange {
		case "*/*", "text/*", contentTypeText:
			return contentTypeText, true
		case "application/*", contentTypeJSON:
			return contentTypeJSON, true
		}
	}

	return "", false
}
