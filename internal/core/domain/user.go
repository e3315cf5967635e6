package domain

import "time"

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// KnownRole reports whether role is one of the fixed role set.
func KnownRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User models an authenticated actor in the system. PasswordHash is opaque
// to everything except the password hasher and is never serialized.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// AuthResponse is the payload returned once per successful login.
type AuthResponse struct {
	AccessToken  string    `json:"access_token"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	ExpiresAtUTC time.Time `json:"expires_at_utc"`
}
