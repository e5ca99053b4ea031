package core

import (
	"errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestRelayErrorMapper_ClassifiesByMessage(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category goerrors.Category
		code     int
		textCode string
	}{
		{
			name:     "handshake rejection",
			err:      errors.New("handshake: token mismatch"),
			category: goerrors.CategoryBadInput,
			code:     http.StatusBadRequest,
			textCode: RelayErrorHandshakeRejected,
		},
		{
			name:     "missing comment",
			err:      errors.New("relay: comment abc not found"),
			category: goerrors.CategoryNotFound,
			code:     http.StatusNotFound,
			textCode: RelayErrorNotFound,
		},
		{
			name:     "delivery failure",
			err:      errors.New("transport: deliver notification failed"),
			category: goerrors.CategoryExternal,
			code:     http.StatusBadGateway,
			textCode: RelayErrorDeliveryFailed,
		},
		{
			name:     "bad input",
			err:      errors.New("inbound: key is required"),
			category: goerrors.CategoryBadInput,
			code:     http.StatusBadRequest,
			textCode: RelayErrorBadInput,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := relayErrorMapper(tc.err)
			if mapped == nil {
				t.Fatalf("expected mapped error")
			}
			if mapped.Category != tc.category {
				t.Fatalf("category = %v, want %v", mapped.Category, tc.category)
			}
			if mapped.Code != tc.code {
				t.Fatalf("code = %d, want %d", mapped.Code, tc.code)
			}
			if mapped.TextCode != tc.textCode {
				t.Fatalf("text code = %q, want %q", mapped.TextCode, tc.textCode)
			}
		})
	}
}

func TestRelayErrorMapper_PreservesRichErrors(t *testing.T) {
	source := goerrors.New("handshake rejected", goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(RelayErrorHandshakeRejected)

	mapped := relayErrorMapper(source)
	if mapped == nil {
		t.Fatalf("expected mapped error")
	}
	if mapped.TextCode != RelayErrorHandshakeRejected {
		t.Fatalf("text code = %q, want %q", mapped.TextCode, RelayErrorHandshakeRejected)
	}
	if mapped.Code != http.StatusBadRequest {
		t.Fatalf("code = %d, want %d", mapped.Code, http.StatusBadRequest)
	}
}

func TestRelayErrorMapper_NilIsNil(t *testing.T) {
	if mapped := relayErrorMapper(nil); mapped != nil {
		t.Fatalf("expected nil for nil input, got %v", mapped)
	}
}
