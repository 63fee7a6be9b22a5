package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigil-auth/vigil/internal/shared"
)

type memoryRepo struct {
	users map[string]*User
}

func (m *memoryRepo) FindByUsername(ctx context.Context, username string) (*User, error) {
	user, ok := m.users[username]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (m *memoryRepo) ListUsers(ctx context.Context) ([]User, error) {
	var list []User
	for _, user := range m.users {
		list = append(list, *user)
	}
	return list, nil
}

func (m *memoryRepo) Create(ctx context.Context, username, passwordHash string, roles []string, locked bool) (*User, error) {
	if _, ok := m.users[username]; ok {
		return nil, ErrUsernameTaken
	}
	user := &User{ID: int64(len(m.users) + 1), Username: username, PasswordHash: passwordHash, Roles: roles, Locked: locked}
	m.users[username] = user
	copied := *user
	return &copied, nil
}

func (m *memoryRepo) UpdateRoles(ctx context.Context, username string, roles []string) error {
	user, ok := m.users[username]
	if !ok {
		return shared.ErrNotFound
	}
	if user.Locked {
		return shared.ErrLockedAccount
	}
	user.Roles = roles
	return nil
}

func TestNormalizeUsername(t *testing.T) {
	cases := map[string]string{
		"Alice":      "alice",
		"  alice  ":  "alice",
		"ALICE":      "alice",
		"Cafe\u0301": "caf\u00e9", // decomposed folds to composed
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeUsername(input), "input %q", input)
	}
}

func TestIdentityNeverCarriesHash(t *testing.T) {
	user := &User{ID: 9, Username: "alice", PasswordHash: "$2a$secret", Roles: []string{"user"}}

	identity := Identity(user)
	assert.Equal(t, int64(9), identity.ID)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, []string{"user"}, identity.Roles)

	// The roles slice is a copy, not an alias.
	identity.Roles[0] = "admin"
	assert.Equal(t, []string{"user"}, user.Roles)
}

func TestFindByUsernameHidesHashByDefault(t *testing.T) {
	repo := &memoryRepo{users: map[string]*User{
		"alice": {ID: 1, Username: "alice", PasswordHash: "$2a$secret", Roles: []string{"user"}},
	}}
	service := NewService(repo)

	_, hash, err := service.FindByUsername(context.Background(), "Alice", false)
	require.NoError(t, err)
	assert.Empty(t, hash)

	_, hash, err = service.FindByUsername(context.Background(), "alice", true)
	require.NoError(t, err)
	assert.Equal(t, "$2a$secret", hash)
}

func TestRegisterNormalisesAndDefaultsRole(t *testing.T) {
	repo := &memoryRepo{users: map[string]*User{}}
	service := NewService(repo)

	user, err := service.Register(context.Background(), "  Alice ", "$2a$hash")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, []string{"user"}, user.Roles)
	assert.False(t, user.Locked)
}

func TestUpdateRolesRefusesLockedAccount(t *testing.T) {
	repo := &memoryRepo{users: map[string]*User{
		"guest": {ID: 2, Username: "guest", Roles: []string{"guest"}, Locked: true},
	}}
	service := NewService(repo)

	err := service.UpdateRoles(context.Background(), "guest", []string{"admin"})
	assert.ErrorIs(t, err, shared.ErrLockedAccount)
}
