package transport

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorBadInput        = "CMIS_TRANSPORT_BAD_INPUT"
	ErrorUnauthorized    = "CMIS_TRANSPORT_UNAUTHORIZED"
	ErrorForbidden       = "CMIS_TRANSPORT_FORBIDDEN"
	ErrorNotFound        = "CMIS_TRANSPORT_NOT_FOUND"
	ErrorExternalFailure = "CMIS_TRANSPORT_EXTERNAL_FAILURE"
	ErrorNotConfigured   = "CMIS_TRANSPORT_NOT_CONFIGURED"
	ErrorInternal        = "CMIS_TRANSPORT_INTERNAL"
)

func transportError(
	message string,
	category goerrors.Category,
	code int,
	metadata map[string]any,
) error {
	err := goerrors.New(message, category).
		WithCode(code).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportWrapError(
	source error,
	category goerrors.Category,
	message string,
	code int,
	metadata map[string]any,
) error {
	if source == nil {
		return transportError(message, category, code, metadata)
	}
	err := goerrors.Wrap(source, category, message).
		WithCode(code).
		WithTextCode(transportTextCode(category))
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func transportTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ErrorBadInput
	case goerrors.CategoryAuth:
		return ErrorUnauthorized
	case goerrors.CategoryAuthz:
		return ErrorForbidden
	case goerrors.CategoryNotFound:
		return ErrorNotFound
	case goerrors.CategoryExternal:
		return ErrorExternalFailure
	case goerrors.CategoryOperation:
		return ErrorNotConfigured
	default:
		return ErrorInternal
	}
}
