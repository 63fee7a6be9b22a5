package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vigil-auth/vigil/internal/authz"
)

func TestBuildRegistryDeclaresEveryRoutedOperation(t *testing.T) {
	reg, err := BuildRegistry()
	require.NoError(t, err)

	operations := []string{
		"info.get",
		"auth.login",
		"auth.register",
		"auth.me",
		"users.list",
		"users.update_roles",
		"roles.list",
		"permissions.list",
		"pref.get",
		"pref.set",
	}
	for _, operation := range operations {
		_, err := reg.Extract(operation)
		assert.NoError(t, err, "operation %s must be declared", operation)
	}
}

func TestBuildRegistryPrefWritesUseGroupDefault(t *testing.T) {
	reg, err := BuildRegistry()
	require.NoError(t, err)

	req, err := reg.Extract("pref.set")
	require.NoError(t, err)
	assert.Equal(t, []authz.Permission{authz.PermPrefWrite}, req.Permissions)

	// Reads narrow the group default explicitly.
	req, err = reg.Extract("pref.get")
	require.NoError(t, err)
	assert.Equal(t, []authz.Permission{authz.PermPrefRead}, req.Permissions)
}

func TestBuildRegistryUnknownOperationIsAnError(t *testing.T) {
	reg, err := BuildRegistry()
	require.NoError(t, err)

	_, err = reg.Extract("images.transmogrify")
	assert.Error(t, err)
}
