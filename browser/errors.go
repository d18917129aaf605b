package browser

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorInvalidURL      = "CMIS_BROWSER_INVALID_URL"
	ErrorUnauthorized    = "CMIS_BROWSER_UNAUTHORIZED"
	ErrorForbidden       = "CMIS_BROWSER_FORBIDDEN"
	ErrorNotFound        = "CMIS_BROWSER_NOT_FOUND"
	ErrorBadRequest      = "CMIS_BROWSER_BAD_REQUEST"
	ErrorRemoteFailure   = "CMIS_BROWSER_REMOTE_FAILURE"
	ErrorInvalidResponse = "CMIS_BROWSER_INVALID_RESPONSE"
)

// remoteException is the error document returned by browser binding
// endpoints.
type remoteException struct {
	Exception string `json:"exception"`
	Message   string `json:"message"`
}

func invalidURLError(raw string, cause error) error {
	message := "browser: service url is required"
	if strings.TrimSpace(raw) != "" {
		message = "browser: invalid service url: " + raw
	}
	if cause != nil {
		return goerrors.Wrap(cause, goerrors.CategoryBadInput, message).
			WithCode(http.StatusBadRequest).
			WithTextCode(ErrorInvalidURL)
	}
	return goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(ErrorInvalidURL)
}

func notFoundError(message string, metadata map[string]any) error {
	return goerrors.New(message, goerrors.CategoryNotFound).
		WithCode(http.StatusNotFound).
		WithTextCode(ErrorNotFound).
		WithMetadata(metadata)
}

func invalidResponseError(cause error, metadata map[string]any) error {
	return goerrors.Wrap(cause, goerrors.CategoryExternal, "browser: invalid response payload").
		WithCode(http.StatusBadGateway).
		WithTextCode(ErrorInvalidResponse).
		WithMetadata(metadata)
}

// statusError maps a non-2xx response to a categorized error. The remote
// exception name and message are kept in metadata when present.
func statusError(statusCode int, url string, exception remoteException) error {
	category, textCode := goerrors.CategoryExternal, ErrorRemoteFailure
	switch {
	case statusCode == http.StatusUnauthorized:
		category, textCode = goerrors.CategoryAuth, ErrorUnauthorized
	case statusCode == http.StatusForbidden:
		category, textCode = goerrors.CategoryAuthz, ErrorForbidden
	case statusCode == http.StatusNotFound:
		category, textCode = goerrors.CategoryNotFound, ErrorNotFound
	case statusCode >= 400 && statusCode < 500:
		category, textCode = goerrors.CategoryBadInput, ErrorBadRequest
	}

	message := fmt.Sprintf("browser: request failed with status %d", statusCode)
	if detail := strings.TrimSpace(exception.Message); detail != "" {
		message += ": " + detail
	}
	metadata := map[string]any{
		"status_code": statusCode,
		"url":         url,
	}
	if name := strings.TrimSpace(exception.Exception); name != "" {
		metadata["exception"] = name
	}
	return goerrors.New(message, category).
		WithCode(statusCode).
		WithTextCode(textCode).
		WithMetadata(metadata)
}
