package cmis

import (
	"context"
	"fmt"

	cmiscommand "github.com/goliatone/go-cmis/command"
	"github.com/goliatone/go-cmis/core"
	cmisquery "github.com/goliatone/go-cmis/query"
	gocmd "github.com/goliatone/go-command"
)

// ProfileStore is the persistence behind the profile commands and queries.
type ProfileStore interface {
	cmiscommand.ProfileReader
	cmiscommand.ProfileWriter
	cmisquery.ProfileReader
}

type Commands struct {
	CreateBinding      *cmiscommand.CreateBindingCommand
	ClearBindingCaches *cmiscommand.ClearBindingCachesCommand
	CloseBinding       *cmiscommand.CloseBindingCommand
	SaveProfile        *cmiscommand.SaveProfileCommand
	DeleteProfile      *cmiscommand.DeleteProfileCommand
}

type Queries struct {
	GetRepositoryInfos *cmisquery.GetRepositoryInfosQuery
	GetRepositoryInfo  *cmisquery.GetRepositoryInfoQuery
	GetTypeDefinition  *cmisquery.GetTypeDefinitionQuery
	LoadProfile        *cmisquery.LoadProfileQuery
	ListProfiles       *cmisquery.ListProfilesQuery
}

type Facade struct {
	creator  cmiscommand.BindingCreator
	profiles ProfileStore
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	profiles ProfileStore
}

func WithProfileStore(store ProfileStore) FacadeOption {
	return func(options *facadeOptions) {
		options.profiles = store
	}
}

// NewFacade wires the command and query handlers around creator. Profile
// handlers are left nil unless WithProfileStore is given.
func NewFacade(creator cmiscommand.BindingCreator, opts ...FacadeOption) (*Facade, error) {
	if creator == nil {
		return nil, fmt.Errorf("cmis: binding creator is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	facade := &Facade{creator: creator, profiles: cfg.profiles}
	var reader cmiscommand.ProfileReader
	if cfg.profiles != nil {
		reader = cfg.profiles
	}
	facade.commands = Commands{
		CreateBinding:      cmiscommand.NewCreateBindingCommand(creator, reader),
		ClearBindingCaches: cmiscommand.NewClearBindingCachesCommand(),
		CloseBinding:       cmiscommand.NewCloseBindingCommand(),
	}
	facade.queries = Queries{
		GetRepositoryInfos: cmisquery.NewGetRepositoryInfosQuery(),
		GetRepositoryInfo:  cmisquery.NewGetRepositoryInfoQuery(),
		GetTypeDefinition:  cmisquery.NewGetTypeDefinitionQuery(),
	}
	if cfg.profiles != nil {
		facade.commands.SaveProfile = cmiscommand.NewSaveProfileCommand(cfg.profiles)
		facade.commands.DeleteProfile = cmiscommand.NewDeleteProfileCommand(cfg.profiles)
		facade.queries.LoadProfile = cmisquery.NewLoadProfileQuery(cfg.profiles)
		facade.queries.ListProfiles = cmisquery.NewListProfilesQuery(cfg.profiles)
	}
	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Profiles() ProfileStore {
	if f == nil {
		return nil
	}
	return f.profiles
}

// CreateBinding runs the create command and returns the binding it stored.
func (f *Facade) CreateBinding(ctx context.Context, msg cmiscommand.CreateBindingMessage) (core.Binding, error) {
	if f == nil || f.commands.CreateBinding == nil {
		return nil, fmt.Errorf("cmis: facade is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	collector := gocmd.NewResult[core.Binding]()
	if err := f.commands.CreateBinding.Execute(gocmd.ContextWithResult(ctx, collector), msg); err != nil {
		return nil, err
	}
	binding, ok := collector.Load()
	if !ok || binding == nil {
		return nil, fmt.Errorf("cmis: create binding produced no result")
	}
	return binding, nil
}
