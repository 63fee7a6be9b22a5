package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrWrongCredentials indicates login failure. The same value is
	// returned whether the username or the password was wrong.
	ErrWrongCredentials = errors.New("wrong credentials")
	// ErrPermissionDenied indicates an authorization refusal.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrLockedAccount occurs when a mutation targets a system-reserved account.
	ErrLockedAccount = errors.New("account is locked")
)
