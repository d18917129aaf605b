package query

import (
	"strings"

	"github.com/goliatone/go-cmis/core"
)

const (
	TypeGetRepositoryInfos = "cmis.query.repository.list"
	TypeGetRepositoryInfo  = "cmis.query.repository.get"
	TypeGetTypeDefinition  = "cmis.query.type_definition.get"
	TypeLoadProfile        = "cmis.query.profile.load"
	TypeListProfiles       = "cmis.query.profile.list"
)

type GetRepositoryInfosMessage struct {
	Binding core.Binding
}

func (GetRepositoryInfosMessage) Type() string { return TypeGetRepositoryInfos }

func (m GetRepositoryInfosMessage) Validate() error {
	if m.Binding == nil {
		return queryValidationError("binding", "binding is required")
	}
	return nil
}

// GetRepositoryInfoMessage reads one repository. An empty RepositoryID
// falls back to the binding's configured repository.
type GetRepositoryInfoMessage struct {
	Binding      core.Binding
	RepositoryID string
}

func (GetRepositoryInfoMessage) Type() string { return TypeGetRepositoryInfo }

func (m GetRepositoryInfoMessage) Validate() error {
	if m.Binding == nil {
		return queryValidationError("binding", "binding is required")
	}
	return nil
}

type GetTypeDefinitionMessage struct {
	Binding      core.Binding
	RepositoryID string
	TypeID       string
}

func (GetTypeDefinitionMessage) Type() string { return TypeGetTypeDefinition }

func (m GetTypeDefinitionMessage) Validate() error {
	if m.Binding == nil {
		return queryValidationError("binding", "binding is required")
	}
	if strings.TrimSpace(m.TypeID) == "" {
		return queryValidationError("type_id", "type id is required")
	}
	return nil
}

type LoadProfileMessage struct {
	Name string
}

func (LoadProfileMessage) Type() string { return TypeLoadProfile }

func (m LoadProfileMessage) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return queryValidationError("name", "profile name is required")
	}
	return nil
}

type ListProfilesMessage struct{}

func (ListProfilesMessage) Type() string { return TypeListProfiles }

func (ListProfilesMessage) Validate() error { return nil }
