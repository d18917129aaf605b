package sqlstore

import "github.com/goliatone/go-cmis/core"

var (
	_ core.ProfileStore = (*ProfileStore)(nil)
	_ core.ProfileStore = (*CachedProfileStore)(nil)
)
