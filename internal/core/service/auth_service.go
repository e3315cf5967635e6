package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/timetrack/auth-service/internal/core/domain"
	"github.com/timetrack/auth-service/internal/core/ports"
)

// AuthService implements the login flow: credential validation followed by
// token issuance. It holds no per-request state and is safe for concurrent
// use.
type AuthService struct {
	store  ports.UserStore
	tokens *TokenService
}

func NewAuthService(store ports.UserStore, tokens *TokenService) *AuthService {
	return &AuthService{store: store, tokens: tokens}
}

// Login validates the credentials against the active store and, on success,
// returns a signed token response. Unknown username and wrong password both
// surface as domain.ErrInvalidCredentials; store connectivity failures pass
// through unmodified so the caller can report 5xx instead of 401.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.AuthResponse, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.store.ValidateCredentials(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	resp, err := s.tokens.CreateToken(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return resp, nil
}
