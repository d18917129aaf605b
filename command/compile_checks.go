package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[CreateBindingMessage]      = (*CreateBindingCommand)(nil)
	_ gocmd.Commander[ClearBindingCachesMessage] = (*ClearBindingCachesCommand)(nil)
	_ gocmd.Commander[CloseBindingMessage]       = (*CloseBindingCommand)(nil)
	_ gocmd.Commander[SaveProfileMessage]        = (*SaveProfileCommand)(nil)
	_ gocmd.Commander[DeleteProfileMessage]      = (*DeleteProfileCommand)(nil)
)
