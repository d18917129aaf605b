package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrProfileNotFound = errors.New("core: connection profile not found")

// ConnectionProfile is a named, persisted parameter set a binding can be
// created from.
type ConnectionProfile struct {
	ID          string
	Name        string
	Description string
	Parameters  Parameters
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type SaveProfileInput struct {
	Name        string
	Description string
	Parameters  Parameters
}

func (in SaveProfileInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("core: profile name is required")
	}
	if len(in.Parameters) == 0 {
		return fmt.Errorf("core: profile parameters are required")
	}
	return nil
}

type ProfileStore interface {
	// Save creates the profile or replaces the parameters of the profile
	// with the same name.
	Save(ctx context.Context, in SaveProfileInput) (ConnectionProfile, error)
	Get(ctx context.Context, id string) (ConnectionProfile, error)
	GetByName(ctx context.Context, name string) (ConnectionProfile, error)
	List(ctx context.Context) ([]ConnectionProfile, error)
	Delete(ctx context.Context, name string) error
}

// SecretProvider seals and opens secret values for storage.
type SecretProvider interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

// SecretParameters lists the parameter keys whose values are sealed before
// a profile is persisted.
func SecretParameters() []string {
	return []string{ParamPassword, ParamAuthToken}
}
