package command

import (
	"strings"

	"github.com/goliatone/go-cmis/core"
)

const (
	TypeCreateBinding      = "cmis.command.binding.create"
	TypeClearBindingCaches = "cmis.command.binding.clear_caches"
	TypeCloseBinding       = "cmis.command.binding.close"
	TypeSaveProfile        = "cmis.command.profile.save"
	TypeDeleteProfile      = "cmis.command.profile.delete"
)

// CreateBindingMessage creates a binding from Parameters, from a stored
// profile, or from both with Parameters overriding the profile.
type CreateBindingMessage struct {
	Parameters core.Parameters
	Profile    string
	Auth       core.AuthenticationProvider
	TypeCache  core.TypeDefinitionCache
}

func (CreateBindingMessage) Type() string { return TypeCreateBinding }

// Validate accepts every message; the binding factory reports missing or
// invalid parameters with its own error kinds.
func (m CreateBindingMessage) Validate() error {
	return nil
}

type ClearBindingCachesMessage struct {
	Binding core.Binding
}

func (ClearBindingCachesMessage) Type() string { return TypeClearBindingCaches }

func (m ClearBindingCachesMessage) Validate() error {
	if m.Binding == nil {
		return commandValidationError("binding", "binding is required")
	}
	return nil
}

type CloseBindingMessage struct {
	Binding core.Binding
}

func (CloseBindingMessage) Type() string { return TypeCloseBinding }

func (m CloseBindingMessage) Validate() error {
	if m.Binding == nil {
		return commandValidationError("binding", "binding is required")
	}
	return nil
}

type SaveProfileMessage struct {
	Input core.SaveProfileInput
}

func (SaveProfileMessage) Type() string { return TypeSaveProfile }

func (m SaveProfileMessage) Validate() error {
	if strings.TrimSpace(m.Input.Name) == "" {
		return commandValidationError("name", "profile name is required")
	}
	if len(m.Input.Parameters) == 0 {
		return commandValidationError("parameters", "profile parameters are required")
	}
	return nil
}

type DeleteProfileMessage struct {
	Name string
}

func (DeleteProfileMessage) Type() string { return TypeDeleteProfile }

func (m DeleteProfileMessage) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return commandValidationError("name", "profile name is required")
	}
	return nil
}
