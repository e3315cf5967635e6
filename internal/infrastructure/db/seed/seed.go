// Package seed defines the canonical bootstrap accounts shared by every
// store backend that self-seeds.
package seed

import (
	"fmt"
	"time"

	"github.com/timetrack/auth-service/internal/core/domain"
	"github.com/timetrack/auth-service/internal/core/password"
)

// accounts are the two canonical users provisioned when a store is empty.
var accounts = []struct {
	username string
	plain    string
	role     string
}{
	{"admin@example.com", "Admin123!", domain.RoleAdmin},
	{"user@example.com", "User123!", domain.RoleUser},
}

// Users returns the canonical accounts with freshly hashed passwords. IDs
// are left empty; each backend assigns its native identifier.
func Users(hasher password.Hasher) ([]domain.User, error) {
	now := time.Now().UTC()
	users := make([]domain.User, 0, len(accounts))
	for _, a := range accounts {
		hash, err := hasher.Hash(a.plain)
		if err != nil {
			return nil, fmt.Errorf("seed: hash password for %s: %w", a.username, err)
		}
		users = append(users, domain.User{
			Username:     a.username,
			Role:         a.role,
			PasswordHash: hash,
			CreatedAt:    now,
		})
	}
	return users, nil
}
