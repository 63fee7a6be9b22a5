package roles

import "time"

// Role is a named permission bundle assignable to users.
type Role struct {
	Name        string
	Permissions []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Built-in roles created at seed time. The guest role doubles as the
// implicit role for identities without any assignment.
const (
	RoleGuest = "guest"
	RoleUser  = "user"
	RoleAdmin = "admin"
)
