package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	RelayErrorBadInput          = "BOUNCER_BAD_INPUT"
	RelayErrorHandshakeRejected = "BOUNCER_HANDSHAKE_REJECTED"
	RelayErrorNotFound          = "BOUNCER_NOT_FOUND"
	RelayErrorNotAcceptable     = "BOUNCER_NOT_ACCEPTABLE"
	RelayErrorDeliveryFailed    = "BOUNCER_DELIVERY_FAILED"
	RelayErrorDisabled          = "BOUNCER_DISABLED"
	RelayErrorInternal          = "BOUNCER_INTERNAL_ERROR"
)

func relayErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureRelayErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "handshake"):
		return newRelayError(err.Error(), goerrors.CategoryBadInput, RelayErrorHandshakeRejected)
	case strings.Contains(msg, "comment") && strings.Contains(msg, "not found"):
		return newRelayError(err.Error(), goerrors.CategoryNotFound, RelayErrorNotFound)
	case strings.Contains(msg, "deliver"), strings.Contains(msg, "ingest"):
		return newRelayError(err.Error(), goerrors.CategoryExternal, RelayErrorDeliveryFailed)
	case strings.Contains(msg, "disabled"):
		return newRelayError(err.Error(), goerrors.CategoryOperation, RelayErrorDisabled)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "mismatch"):
		return newRelayError(err.Error(), goerrors.CategoryBadInput, RelayErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureRelayErrorEnvelope(mapped)
}

func newRelayError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureRelayErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureRelayErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = relayHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultRelayTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultRelayTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return RelayErrorBadInput
	case goerrors.CategoryNotFound:
		return RelayErrorNotFound
	case goerrors.CategoryExternal:
		return RelayErrorDeliveryFailed
	case goerrors.CategoryOperation:
		return RelayErrorDisabled
	default:
		return RelayErrorInternal
	}
}

func relayHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
