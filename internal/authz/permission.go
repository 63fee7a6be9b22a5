package authz

import (
	"fmt"
	"sort"
)

// Permission is an atomic capability token drawn from a closed vocabulary.
type Permission string

// The full permission vocabulary. New permissions must be added here and
// nowhere else; anything outside this list is rejected at every boundary.
const (
	PermImageView    Permission = "image.view"
	PermImageUpload  Permission = "image.upload"
	PermImageDelete  Permission = "image.delete"
	PermUserLogin    Permission = "user.login"
	PermUserRegister Permission = "user.register"
	PermUserView     Permission = "user.view"
	PermUserManage   Permission = "user.manage"
	PermRoleView     Permission = "role.view"
	PermRoleManage   Permission = "role.manage"
	PermPrefRead     Permission = "pref.read"
	PermPrefWrite    Permission = "pref.write"
)

var knownPermissions = map[Permission]struct{}{
	PermImageView:    {},
	PermImageUpload:  {},
	PermImageDelete:  {},
	PermUserLogin:    {},
	PermUserRegister: {},
	PermUserView:     {},
	PermUserManage:   {},
	PermRoleView:     {},
	PermRoleManage:   {},
	PermPrefRead:     {},
	PermPrefWrite:    {},
}

// Known reports whether p belongs to the permission vocabulary.
func (p Permission) Known() bool {
	_, ok := knownPermissions[p]
	return ok
}

func (p Permission) String() string { return string(p) }

// ParsePermission converts a raw string into a Permission, rejecting
// anything outside the vocabulary.
func ParsePermission(raw string) (Permission, error) {
	p := Permission(raw)
	if !p.Known() {
		return "", fmt.Errorf("authz: unknown permission %q", raw)
	}
	return p, nil
}

// AllPermissions returns the vocabulary sorted by name.
func AllPermissions() []Permission {
	perms := make([]Permission, 0, len(knownPermissions))
	for p := range knownPermissions {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}

// PermissionSet is a deduplicated collection of permissions.
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given permissions.
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Contains reports whether p is in the set.
func (s PermissionSet) Contains(p Permission) bool {
	_, ok := s[p]
	return ok
}

// ContainsAll reports whether every permission in required is in the set.
func (s PermissionSet) ContainsAll(required []Permission) bool {
	for _, p := range required {
		if !s.Contains(p) {
			return false
		}
	}
	return true
}

// Add inserts p into the set.
func (s PermissionSet) Add(p Permission) {
	s[p] = struct{}{}
}

// Slice returns the set members sorted by name.
func (s PermissionSet) Slice() []Permission {
	perms := make([]Permission, 0, len(s))
	for p := range s {
		perms = append(perms, p)
	}
	sort.Slice(perms, func(i, j int) bool { return perms[i] < perms[j] })
	return perms
}
