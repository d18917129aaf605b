package command

import (
	"context"
	"strings"

	"github.com/goliatone/go-cmis/core"
	gocmd "github.com/goliatone/go-command"
)

type BindingCreator interface {
	CreateBinding(
		params core.Parameters,
		auth core.AuthenticationProvider,
		cache core.TypeDefinitionCache,
	) (core.Binding, error)
}

type ProfileReader interface {
	GetByName(ctx context.Context, name string) (core.ConnectionProfile, error)
}

type CreateBindingCommand struct {
	creator  BindingCreator
	profiles ProfileReader
}

// NewCreateBindingCommand builds the command. profiles may be nil when
// messages never name a profile.
func NewCreateBindingCommand(creator BindingCreator, profiles ProfileReader) *CreateBindingCommand {
	return &CreateBindingCommand{creator: creator, profiles: profiles}
}

func (c *CreateBindingCommand) Execute(ctx context.Context, msg CreateBindingMessage) error {
	if c == nil || c.creator == nil {
		return commandDependencyError("command: binding creator is required")
	}
	params := msg.Parameters.Clone()
	if name := strings.TrimSpace(msg.Profile); name != "" {
		if c.profiles == nil {
			return commandDependencyError("command: profile reader is required")
		}
		profile, err := c.profiles.GetByName(ctx, name)
		if err != nil {
			return commandNotFoundError(err, name)
		}
		params = msg.Parameters.WithDefaults(profile.Parameters)
	}

	binding, err := c.creator.CreateBinding(params, msg.Auth, msg.TypeCache)
	if err != nil {
		return err
	}
	storeResult(ctx, binding)
	return nil
}

type ClearBindingCachesCommand struct{}

func NewClearBindingCachesCommand() *ClearBindingCachesCommand {
	return &ClearBindingCachesCommand{}
}

func (*ClearBindingCachesCommand) Execute(_ context.Context, msg ClearBindingCachesMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	msg.Binding.ClearAllCaches()
	return nil
}

type CloseBindingCommand struct{}

func NewCloseBindingCommand() *CloseBindingCommand {
	return &CloseBindingCommand{}
}

func (*CloseBindingCommand) Execute(_ context.Context, msg CloseBindingMessage) error {
	if err := msg.Validate(); err != nil {
		return err
	}
	return msg.Binding.Close()
}

type ProfileWriter interface {
	Save(ctx context.Context, in core.SaveProfileInput) (core.ConnectionProfile, error)
	Delete(ctx context.Context, name string) error
}

type SaveProfileCommand struct {
	profiles ProfileWriter
}

func NewSaveProfileCommand(profiles ProfileWriter) *SaveProfileCommand {
	return &SaveProfileCommand{profiles: profiles}
}

func (c *SaveProfileCommand) Execute(ctx context.Context, msg SaveProfileMessage) error {
	if c == nil || c.profiles == nil {
		return commandDependencyError("command: profile store is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	profile, err := c.profiles.Save(ctx, msg.Input)
	if err != nil {
		return err
	}
	storeResult(ctx, profile)
	return nil
}

type DeleteProfileCommand struct {
	profiles ProfileWriter
}

func NewDeleteProfileCommand(profiles ProfileWriter) *DeleteProfileCommand {
	return &DeleteProfileCommand{profiles: profiles}
}

func (c *DeleteProfileCommand) Execute(ctx context.Context, msg DeleteProfileMessage) error {
	if c == nil || c.profiles == nil {
		return commandDependencyError("command: profile store is required")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return commandNotFoundError(c.profiles.Delete(ctx, msg.Name), strings.TrimSpace(msg.Name))
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
