package query

import (
	"errors"
	"net/http"

	"github.com/goliatone/go-cmis/core"
	goerrors "github.com/goliatone/go-errors"
)

func queryDependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.ErrorInternal)
}

func queryValidationError(field string, message string) error {
	return goerrors.NewValidation("query: validation failed", goerrors.FieldError{
		Field:   field,
		Message: message,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(core.ErrorBadInput).
		WithSeverity(goerrors.SeverityError)
}

func queryNotFoundError(err error, name string) error {
	if err == nil || !errors.Is(err, core.ErrProfileNotFound) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryNotFound, "query: connection profile not found").
		WithCode(http.StatusNotFound).
		WithTextCode(core.ErrorNotFound).
		WithMetadata(map[string]any{"profile": name})
}
