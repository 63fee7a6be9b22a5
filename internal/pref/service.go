package pref

import (
	"context"
	"errors"

	"github.com/vigil-auth/vigil/internal/shared"
)

// Service handles preference reads and writes. Unset keys fall back to
// their built-in defaults.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Get returns the stored value or the default when nothing is stored.
func (s *Service) Get(ctx context.Context, raw string) (Preference, error) {
	key, err := ParseKey(raw)
	if err != nil {
		return Preference{}, err
	}
	value, err := s.repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return Preference{Key: key, Value: Default(key)}, nil
		}
		return Preference{}, err
	}
	return Preference{Key: key, Value: value}, nil
}

// Set stores a value for a known key.
func (s *Service) Set(ctx context.Context, raw, value string) (Preference, error) {
	key, err := ParseKey(raw)
	if err != nil {
		return Preference{}, err
	}
	if err := s.repo.Set(ctx, key, value); err != nil {
		return Preference{}, err
	}
	return Preference{Key: key, Value: value}, nil
}
