package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type profileRecord struct {
	bun.BaseModel `bun:"table:cmis_connection_profiles,alias:ccp"`

	ID          string            `bun:"id,pk"`
	Name        string            `bun:"name,notnull"`
	Description string            `bun:"description,notnull"`
	BindingType string            `bun:"binding_type,notnull"`
	Parameters  map[string]string `bun:"parameters,type:jsonb,notnull"`
	CreatedAt   time.Time         `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt   time.Time         `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}
