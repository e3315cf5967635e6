package ports

import (
	"context"

	"github.com/timetrack/auth-service/internal/core/domain"
)

// AuthService turns a login request into a signed token response.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.AuthResponse, error)
}
