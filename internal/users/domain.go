package users

import "time"

// User represents a user account. Locked accounts are system-reserved:
// their role assignment cannot be altered through ordinary operations.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Roles        []string
	Locked       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Reserved system accounts created at seed time.
const (
	SystemGuestUsername = "guest"
	SystemAdminUsername = "admin"
)
