package pref

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigil-auth/vigil/internal/shared"
)

type memoryRepo struct {
	values map[Key]string
}

func (m *memoryRepo) Get(ctx context.Context, key Key) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", shared.ErrNotFound
	}
	return value, nil
}

func (m *memoryRepo) Set(ctx context.Context, key Key, value string) error {
	m.values[key] = value
	return nil
}

func TestGetFallsBackToDefault(t *testing.T) {
	service := NewService(&memoryRepo{values: map[Key]string{}})

	preference, err := service.Get(context.Background(), "enable_register")
	require.NoError(t, err)
	assert.Equal(t, KeyEnableRegister, preference.Key)
	assert.Equal(t, "true", preference.Value)
}

func TestGetReturnsStoredValue(t *testing.T) {
	repo := &memoryRepo{values: map[Key]string{KeyEnableRegister: "false"}}
	service := NewService(repo)

	preference, err := service.Get(context.Background(), "enable_register")
	require.NoError(t, err)
	assert.Equal(t, "false", preference.Value)
}

func TestGetRejectsUnknownKey(t *testing.T) {
	service := NewService(&memoryRepo{values: map[Key]string{}})

	_, err := service.Get(context.Background(), "made_up_key")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestSetStoresKnownKey(t *testing.T) {
	repo := &memoryRepo{values: map[Key]string{}}
	service := NewService(repo)

	preference, err := service.Set(context.Background(), "host_message", "welcome")
	require.NoError(t, err)
	assert.Equal(t, "welcome", preference.Value)
	assert.Equal(t, "welcome", repo.values[KeyHostMessage])
}

func TestSetRejectsUnknownKey(t *testing.T) {
	repo := &memoryRepo{values: map[Key]string{}}
	service := NewService(repo)

	_, err := service.Set(context.Background(), "made_up_key", "x")
	assert.ErrorIs(t, err, ErrUnknownKey)
	assert.Empty(t, repo.values)
}
