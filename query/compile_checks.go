package query

import (
	"github.com/goliatone/go-cmis/core"
	gocmd "github.com/goliatone/go-command"
)

var (
	_ gocmd.Querier[GetRepositoryInfosMessage, []core.RepositoryInfo] = (*GetRepositoryInfosQuery)(nil)
	_ gocmd.Querier[GetRepositoryInfoMessage, core.RepositoryInfo]    = (*GetRepositoryInfoQuery)(nil)
	_ gocmd.Querier[GetTypeDefinitionMessage, core.TypeDefinition]    = (*GetTypeDefinitionQuery)(nil)
	_ gocmd.Querier[LoadProfileMessage, core.ConnectionProfile]       = (*LoadProfileQuery)(nil)
	_ gocmd.Querier[ListProfilesMessage, []core.ConnectionProfile]    = (*ListProfilesQuery)(nil)
)
