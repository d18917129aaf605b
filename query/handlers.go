package query

import (
	"context"
	"strings"

	"github.com/goliatone/go-cmis/core"
)

type ProfileReader interface {
	GetByName(ctx context.Context, name string) (core.ConnectionProfile, error)
	List(ctx context.Context) ([]core.ConnectionProfile, error)
}

type GetRepositoryInfosQuery struct{}

func NewGetRepositoryInfosQuery() *GetRepositoryInfosQuery {
	return &GetRepositoryInfosQuery{}
}

func (*GetRepositoryInfosQuery) Query(
	ctx context.Context,
	msg GetRepositoryInfosMessage,
) ([]core.RepositoryInfo, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return msg.Binding.RepositoryService().GetRepositoryInfos(ctx)
}

type GetRepositoryInfoQuery struct{}

func NewGetRepositoryInfoQuery() *GetRepositoryInfoQuery {
	return &GetRepositoryInfoQuery{}
}

func (*GetRepositoryInfoQuery) Query(ctx context.Context, msg GetRepositoryInfoMessage) (core.RepositoryInfo, error) {
	if err := msg.Validate(); err != nil {
		return core.RepositoryInfo{}, err
	}
	return msg.Binding.RepositoryService().GetRepositoryInfo(ctx, strings.TrimSpace(msg.RepositoryID))
}

type GetTypeDefinitionQuery struct{}

func NewGetTypeDefinitionQuery() *GetTypeDefinitionQuery {
	return &GetTypeDefinitionQuery{}
}

func (*GetTypeDefinitionQuery) Query(ctx context.Context, msg GetTypeDefinitionMessage) (core.TypeDefinition, error) {
	if err := msg.Validate(); err != nil {
		return core.TypeDefinition{}, err
	}
	return msg.Binding.RepositoryService().GetTypeDefinition(
		ctx,
		strings.TrimSpace(msg.RepositoryID),
		strings.TrimSpace(msg.TypeID),
	)
}

type LoadProfileQuery struct {
	reader ProfileReader
}

func NewLoadProfileQuery(reader ProfileReader) *LoadProfileQuery {
	return &LoadProfileQuery{reader: reader}
}

func (q *LoadProfileQuery) Query(ctx context.Context, msg LoadProfileMessage) (core.ConnectionProfile, error) {
	if q == nil || q.reader == nil {
		return core.ConnectionProfile{}, queryDependencyError("query: profile reader is required")
	}
	if err := msg.Validate(); err != nil {
		return core.ConnectionProfile{}, err
	}
	name := strings.TrimSpace(msg.Name)
	profile, err := q.reader.GetByName(ctx, name)
	if err != nil {
		return core.ConnectionProfile{}, queryNotFoundError(err, name)
	}
	return profile, nil
}

type ListProfilesQuery struct {
	reader ProfileReader
}

func NewListProfilesQuery(reader ProfileReader) *ListProfilesQuery {
	return &ListProfilesQuery{reader: reader}
}

func (q *ListProfilesQuery) Query(ctx context.Context, _ ListProfilesMessage) ([]core.ConnectionProfile, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: profile reader is required")
	}
	return q.reader.List(ctx)
}
