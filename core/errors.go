package core

import (
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorMissingConfiguration  = "CMIS_MISSING_CONFIGURATION"
	ErrorMissingBindingType    = "CMIS_MISSING_BINDING_TYPE"
	ErrorInvalidBindingType    = "CMIS_INVALID_BINDING_TYPE"
	ErrorBindingNotImplemented = "CMIS_BINDING_NOT_IMPLEMENTED"
	ErrorInvalidClass          = "CMIS_INVALID_CLASS"
	ErrorCapabilityMismatch    = "CMIS_CAPABILITY_MISMATCH"
	ErrorConstructionFailed    = "CMIS_CONSTRUCTION_FAILED"
	ErrorInternal              = "CMIS_INTERNAL_ERROR"
	ErrorBadInput              = "CMIS_BAD_INPUT"
	ErrorNotFound              = "CMIS_NOT_FOUND"
	ErrorRateLimited           = "CMIS_RATE_LIMITED"
)

// ErrorKind identifies a configuration or resolution failure.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindMissingConfiguration
	KindMissingBindingType
	KindInvalidBindingType
	KindBindingNotImplemented
	KindInvalidClass
	KindCapabilityMismatch
	KindConstructionFailed
)

var errorKindTextCodes = map[ErrorKind]string{
	KindMissingConfiguration:  ErrorMissingConfiguration,
	KindMissingBindingType:    ErrorMissingBindingType,
	KindInvalidBindingType:    ErrorInvalidBindingType,
	KindBindingNotImplemented: ErrorBindingNotImplemented,
	KindInvalidClass:          ErrorInvalidClass,
	KindCapabilityMismatch:    ErrorCapabilityMismatch,
	KindConstructionFailed:    ErrorConstructionFailed,
}

func (k ErrorKind) TextCode() string {
	if code, ok := errorKindTextCodes[k]; ok {
		return code
	}
	return ErrorInternal
}

func (k ErrorKind) String() string {
	switch k {
	case KindMissingConfiguration:
		return "missing_configuration"
	case KindMissingBindingType:
		return "missing_binding_type"
	case KindInvalidBindingType:
		return "invalid_binding_type"
	case KindBindingNotImplemented:
		return "binding_not_implemented"
	case KindInvalidClass:
		return "invalid_class"
	case KindCapabilityMismatch:
		return "capability_mismatch"
	case KindConstructionFailed:
		return "construction_failed"
	default:
		return "unknown"
	}
}

// KindOf reports the resolution error kind carried by err, or KindUnknown.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) || richErr == nil {
		return KindUnknown
	}
	code := strings.TrimSpace(richErr.TextCode)
	for kind, textCode := range errorKindTextCodes {
		if textCode == code {
			return kind
		}
	}
	return KindUnknown
}

func IsKind(err error, kind ErrorKind) bool {
	return kind != KindUnknown && KindOf(err) == kind
}

func MissingConfigurationError() error {
	return resolutionError(
		KindMissingConfiguration,
		"cmis: session parameters are missing",
		goerrors.CategoryBadInput,
		nil,
	)
}

func MissingBindingTypeError() error {
	return resolutionError(
		KindMissingBindingType,
		fmt.Sprintf("cmis: binding type is missing (parameter %s)", ParamBindingType),
		goerrors.CategoryValidation,
		map[string]any{"parameter": ParamBindingType},
	)
}

func InvalidBindingTypeError(raw string) error {
	return resolutionError(
		KindInvalidBindingType,
		"cmis: invalid binding type: "+raw,
		goerrors.CategoryBadInput,
		map[string]any{"binding_type": raw},
	)
}

func BindingNotImplementedError(raw string) error {
	return resolutionError(
		KindBindingNotImplemented,
		"cmis: binding type is not yet implemented: "+raw,
		goerrors.CategoryOperation,
		map[string]any{"binding_type": raw},
	)
}

func InvalidClassError(collaborator string, className string) error {
	return resolutionError(
		KindInvalidClass,
		fmt.Sprintf("cmis: invalid %s class configured: %s", collaborator, className),
		goerrors.CategoryBadInput,
		map[string]any{"collaborator": collaborator, "class_name": className},
	)
}

func CapabilityMismatchError(collaborator string, className string, capability Capability) error {
	return resolutionError(
		KindCapabilityMismatch,
		fmt.Sprintf("cmis: class %s does not implement %s", className, capability),
		goerrors.CategoryOperation,
		map[string]any{
			"collaborator": collaborator,
			"class_name":   className,
			"capability":   string(capability),
		},
	)
}

func ConstructionFailedError(collaborator string, className string, cause error) error {
	message := "cmis: could not create object of type " + className
	metadata := map[string]any{"collaborator": collaborator, "class_name": className}
	if cause == nil {
		return resolutionError(KindConstructionFailed, message, goerrors.CategoryInternal, metadata)
	}
	// Source keeps the cause as given so errors.Is reaches go-errors causes.
	err := goerrors.New(message, goerrors.CategoryInternal).
		WithCode(resolutionHTTPStatus(goerrors.CategoryInternal)).
		WithTextCode(KindConstructionFailed.TextCode()).
		WithMetadata(metadata)
	err.Source = cause
	return err
}

func resolutionError(
	kind ErrorKind,
	message string,
	category goerrors.Category,
	metadata map[string]any,
) error {
	err := goerrors.New(message, category).
		WithCode(resolutionHTTPStatus(category)).
		WithTextCode(kind.TextCode())
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func resolutionHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryOperation:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
