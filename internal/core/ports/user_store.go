package ports

import (
	"context"

	"github.com/timetrack/auth-service/internal/core/domain"
)

// UserStore is the persistence contract for user credentials. One backend
// (mongo, postgres, redis, in-memory) is selected at startup; all
// implementations must be safe for concurrent use.
type UserStore interface {
	// ValidateCredentials resolves the user by case-insensitive username and
	// verifies the password against the stored hash. Unknown username and
	// wrong password both return domain.ErrUserNotFound; connectivity
	// failures return an error wrapping domain.ErrStoreUnavailable.
	ValidateCredentials(ctx context.Context, username, password string) (*domain.User, error)

	// GetUser resolves the user by case-insensitive username without any
	// password check. It enriches responses on protected endpoints and is
	// not itself a security decision.
	GetUser(ctx context.Context, username string) (*domain.User, error)
}
