package sqlstore

import (
	"strings"
	"time"

	"github.com/goliatone/go-cmis/core"
	"github.com/google/uuid"
)

func newProfileRecord(in core.SaveProfileInput, now time.Time) *profileRecord {
	params := in.Parameters.Clone()
	return &profileRecord{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		BindingType: params.Get(core.ParamBindingType),
		Parameters:  params,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (r *profileRecord) toDomain() core.ConnectionProfile {
	if r == nil {
		return core.ConnectionProfile{}
	}
	return core.ConnectionProfile{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Parameters:  core.Parameters(r.Parameters).Clone(),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
