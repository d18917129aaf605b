package gocommand

import (
	"errors"
	"fmt"

	cmiscommand "github.com/goliatone/go-cmis/command"
	"github.com/goliatone/go-cmis/core"
	"github.com/goliatone/go-cmis/query"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
)

// ProfileStore is the profile persistence needed by the profile commands and
// queries.
type ProfileStore interface {
	cmiscommand.ProfileReader
	cmiscommand.ProfileWriter
	query.ProfileReader
}

// Handlers collects the collaborators behind the CMIS commands and queries.
// Profiles may be nil, in which case profile handlers are not registered.
type Handlers struct {
	Bindings cmiscommand.BindingCreator
	Profiles ProfileStore
}

// Subscriptions tracks dispatcher subscriptions created by RegisterHandlers.
type Subscriptions []commanddispatcher.Subscription

func (s Subscriptions) Unsubscribe() {
	for _, subscription := range s {
		if subscription != nil {
			subscription.Unsubscribe()
		}
	}
}

// RegisterHandlers registers and subscribes every CMIS command and query. On
// failure the subscriptions made so far are released.
func RegisterHandlers(adapter *RegistryAdapter, handlers Handlers) (Subscriptions, error) {
	if handlers.Bindings == nil {
		return nil, fmt.Errorf("gocommand: binding creator is required")
	}
	var (
		subs Subscriptions
		errs []error
	)
	track := func(sub commanddispatcher.Subscription, err error) {
		if err != nil {
			errs = append(errs, err)
			return
		}
		subs = append(subs, sub)
	}

	var profileReader cmiscommand.ProfileReader
	if handlers.Profiles != nil {
		profileReader = handlers.Profiles
	}
	track(RegisterAndSubscribe[cmiscommand.CreateBindingMessage](
		adapter, cmiscommand.NewCreateBindingCommand(handlers.Bindings, profileReader)))
	track(RegisterAndSubscribe[cmiscommand.ClearBindingCachesMessage](
		adapter, cmiscommand.NewClearBindingCachesCommand()))
	track(RegisterAndSubscribe[cmiscommand.CloseBindingMessage](
		adapter, cmiscommand.NewCloseBindingCommand()))
	track(RegisterAndSubscribeQuery[query.GetRepositoryInfosMessage, []core.RepositoryInfo](
		adapter, query.NewGetRepositoryInfosQuery()))
	track(RegisterAndSubscribeQuery[query.GetRepositoryInfoMessage, core.RepositoryInfo](
		adapter, query.NewGetRepositoryInfoQuery()))
	track(RegisterAndSubscribeQuery[query.GetTypeDefinitionMessage, core.TypeDefinition](
		adapter, query.NewGetTypeDefinitionQuery()))

	if handlers.Profiles != nil {
		track(RegisterAndSubscribe[cmiscommand.SaveProfileMessage](
			adapter, cmiscommand.NewSaveProfileCommand(handlers.Profiles)))
		track(RegisterAndSubscribe[cmiscommand.DeleteProfileMessage](
			adapter, cmiscommand.NewDeleteProfileCommand(handlers.Profiles)))
		track(RegisterAndSubscribeQuery[query.LoadProfileMessage, core.ConnectionProfile](
			adapter, query.NewLoadProfileQuery(handlers.Profiles)))
		track(RegisterAndSubscribeQuery[query.ListProfilesMessage, []core.ConnectionProfile](
			adapter, query.NewListProfilesQuery(handlers.Profiles)))
	}

	if err := errors.Join(errs...); err != nil {
		subs.Unsubscribe()
		return nil, err
	}
	return subs, nil
}
