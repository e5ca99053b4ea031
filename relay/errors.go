package relay

import (
	"github.com/goliatone/go-bouncer/core"
	goerrors "github.com/goliatone/go-errors"
)

func relayError(message string, category goerrors.Category) error {
	return goerrors.New(message, category).
		WithTextCode(relayTextCode(category))
}

func relayTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return core.RelayErrorBadInput
	case goerrors.CategoryOperation:
		return core.RelayErrorDisabled
	default:
		return core.RelayErrorInternal
	}
}
