package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-cmis/core"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

type ProfileStore struct {
	db   *bun.DB
	repo repository.Repository[*profileRecord]
}

func NewProfileStore(db *bun.DB) (*ProfileStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*profileRecord](db, profileHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid profile repository wiring: %w", err)
		}
	}
	return &ProfileStore{db: db, repo: repo}, nil
}

func (s *ProfileStore) Save(ctx context.Context, in core.SaveProfileInput) (core.ConnectionProfile, error) {
	if s == nil || s.repo == nil {
		return core.ConnectionProfile{}, fmt.Errorf("sqlstore: profile store is not configured")
	}
	if err := in.Validate(); err != nil {
		return core.ConnectionProfile{}, err
	}

	now := time.Now().UTC()
	existing, err := s.findByName(ctx, in.Name)
	if err != nil {
		return core.ConnectionProfile{}, err
	}
	if existing == nil {
		created, err := s.repo.Create(ctx, newProfileRecord(in, now))
		if err != nil {
			return core.ConnectionProfile{}, err
		}
		return created.toDomain(), nil
	}

	next := newProfileRecord(in, now)
	existing.Description = next.Description
	existing.BindingType = next.BindingType
	existing.Parameters = next.Parameters
	existing.UpdatedAt = now
	updated, err := s.repo.Update(ctx, existing, repository.UpdateByID(existing.ID))
	if err != nil {
		return core.ConnectionProfile{}, err
	}
	return updated.toDomain(), nil
}

func (s *ProfileStore) Get(ctx context.Context, id string) (core.ConnectionProfile, error) {
	if s == nil || s.repo == nil {
		return core.ConnectionProfile{}, fmt.Errorf("sqlstore: profile store is not configured")
	}
	record, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return core.ConnectionProfile{}, err
	}
	return record.toDomain(), nil
}

func (s *ProfileStore) GetByName(ctx context.Context, name string) (core.ConnectionProfile, error) {
	if s == nil || s.db == nil {
		return core.ConnectionProfile{}, fmt.Errorf("sqlstore: profile store is not configured")
	}
	record, err := s.findByName(ctx, name)
	if err != nil {
		return core.ConnectionProfile{}, err
	}
	if record == nil {
		return core.ConnectionProfile{}, fmt.Errorf("%w: %s", core.ErrProfileNotFound, strings.TrimSpace(name))
	}
	return record.toDomain(), nil
}

func (s *ProfileStore) List(ctx context.Context) ([]core.ConnectionProfile, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: profile store is not configured")
	}
	records, _, err := s.repo.List(ctx, repository.OrderBy("name ASC"))
	if err != nil {
		return nil, err
	}
	out := make([]core.ConnectionProfile, 0, len(records))
	for _, record := range records {
		out = append(out, record.toDomain())
	}
	return out, nil
}

func (s *ProfileStore) Delete(ctx context.Context, name string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("sqlstore: profile store is not configured")
	}
	name = strings.TrimSpace(name)
	res, err := s.db.NewDelete().
		Model((*profileRecord)(nil)).
		Where("name = ?", name).
		Exec(ctx)
	if err != nil {
		return err
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return fmt.Errorf("%w: %s", core.ErrProfileNotFound, name)
	}
	return nil
}

func (s *ProfileStore) findByName(ctx context.Context, name string) (*profileRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("sqlstore: profile name is required")
	}
	record := &profileRecord{}
	err := s.db.NewSelect().
		Model(record).
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}
