package handshake

import (
	"net/http"

	"github.com/goliatone/go-bouncer/core"
	goerrors "github.com/goliatone/go-errors"
)

// handshakeRejected is the single envelope every failed verification returns.
// Shape errors and credential mismatches are indistinguishable to callers.
func handshakeRejected() error {
	return goerrors.New("handshake rejected", goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.RelayErrorHandshakeRejected)
}

func handshakeError(message string) error {
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithTextCode(core.RelayErrorBadInput)
}
