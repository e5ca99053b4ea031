package inbound

import (
	"net/http"

	"github.com/goliatone/go-bouncer/core"
	goerrors "github.com/goliatone/go-errors"
)

func inboundError(message string, category goerrors.Category) error {
	return goerrors.New(message, category).
		WithCode(inboundStatus(category)).
		WithTextCode(inboundTextCode(category))
}

func inboundStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func inboundTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return core.RelayErrorBadInput
	case goerrors.CategoryNotFound:
		return core.RelayErrorNotFound
	default:
		return core.RelayErrorInternal
	}
}
