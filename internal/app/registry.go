package app

import (
	"github.com/vigil-auth/vigil/internal/authz"
)

// BuildRegistry assembles the static operation requirement table. Every
// routed operation must be declared here; the guard turns anything
// missing into an internal error rather than granting access.
func BuildRegistry() (*authz.Registry, error) {
	reg := authz.NewRegistry()

	declarations := map[string]authz.Requirement{
		"info.get":           authz.NoAuthRequired(),
		"auth.login":         authz.NoAuthRequired(),
		"auth.register":      authz.Require(authz.PermUserRegister),
		"auth.me":            authz.Require(authz.PermUserLogin),
		"users.list":         authz.Require(authz.PermUserView),
		"users.update_roles": authz.Require(authz.PermUserManage),
		"roles.list":         authz.Require(authz.PermRoleView),
		"permissions.list":   authz.Require(authz.PermRoleView),
		"pref.get":           authz.Require(authz.PermPrefRead),
	}
	for operation, req := range declarations {
		if err := reg.RegisterOperation(operation, req); err != nil {
			return nil, err
		}
	}

	// pref.set and any future pref operation fall back to the group
	// default; reads above narrow it explicitly.
	if err := reg.RegisterGroup("pref", authz.Require(authz.PermPrefWrite)); err != nil {
		return nil, err
	}

	reg.Freeze()
	return reg, nil
}
