package security

import (
	"context"
	"fmt"

	"github.com/goliatone/go-cmis/core"
)

// SealedProfileStore seals secret parameters before they reach the wrapped
// store and opens them again on every read. Values already sealed are
// passed through unchanged.
type SealedProfileStore struct {
	store   core.ProfileStore
	secrets core.SecretProvider
	keys    []string
}

func NewSealedProfileStore(store core.ProfileStore, secrets core.SecretProvider) (*SealedProfileStore, error) {
	if store == nil {
		return nil, fmt.Errorf("security: profile store is required")
	}
	if secrets == nil {
		return nil, fmt.Errorf("security: secret provider is required")
	}
	return &SealedProfileStore{store: store, secrets: secrets, keys: core.SecretParameters()}, nil
}

func (s *SealedProfileStore) Save(ctx context.Context, in core.SaveProfileInput) (core.ConnectionProfile, error) {
	params, err := s.seal(ctx, in.Parameters)
	if err != nil {
		return core.ConnectionProfile{}, err
	}
	in.Parameters = params
	profile, err := s.store.Save(ctx, in)
	if err != nil {
		return core.ConnectionProfile{}, err
	}
	return s.open(ctx, profile)
}

func (s *SealedProfileStore) Get(ctx context.Context, id string) (core.ConnectionProfile, error) {
	profile, err := s.store.Get(ctx, id)
	if err != nil {
		return core.ConnectionProfile{}, err
	}
	return s.open(ctx, profile)
}

func (s *SealedProfileStore) GetByName(ctx context.Context, name string) (core.ConnectionProfile, error) {
	profile, err := s.store.GetByName(ctx, name)
	if err != nil {
		return core.ConnectionProfile{}, err
	}
	return s.open(ctx, profile)
}

func (s *SealedProfileStore) List(ctx context.Context) ([]core.ConnectionProfile, error) {
	profiles, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]core.ConnectionProfile, 0, len(profiles))
	for _, profile := range profiles {
		opened, err := s.open(ctx, profile)
		if err != nil {
			return nil, err
		}
		out = append(out, opened)
	}
	return out, nil
}

func (s *SealedProfileStore) Delete(ctx context.Context, name string) error {
	return s.store.Delete(ctx, name)
}

func (s *SealedProfileStore) seal(ctx context.Context, params core.Parameters) (core.Parameters, error) {
	params = params.Clone()
	for _, key := range s.keys {
		value, ok := params[key]
		if !ok || value == "" || IsSealed(value) {
			continue
		}
		sealed, err := s.secrets.Encrypt(ctx, []byte(value))
		if err != nil {
			return nil, fmt.Errorf("security: seal %s: %w", key, err)
		}
		params[key] = string(sealed)
	}
	return params, nil
}

func (s *SealedProfileStore) open(ctx context.Context, profile core.ConnectionProfile) (core.ConnectionProfile, error) {
	params := profile.Parameters.Clone()
	for _, key := range s.keys {
		value, ok := params[key]
		if !ok || !IsSealed(value) {
			continue
		}
		plaintext, err := s.secrets.Decrypt(ctx, []byte(value))
		if err != nil {
			return core.ConnectionProfile{}, fmt.Errorf("security: open %s: %w", key, err)
		}
		params[key] = string(plaintext)
	}
	profile.Parameters = params
	return profile, nil
}

var _ core.ProfileStore = (*SealedProfileStore)(nil)
