// Package memory provides a map-backed UserStore for tests and for running
// the service without external infrastructure.
package memory

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/timetrack/auth-service/internal/core/domain"
	"github.com/timetrack/auth-service/internal/core/password"
	"github.com/timetrack/auth-service/internal/infrastructure/db/seed"
)

// UserStore keeps users in memory, keyed by lowercased username.
type UserStore struct {
	mu     sync.RWMutex
	hasher password.Hasher
	users  map[string]*domain.User
}

// NewUserStore returns a store seeded with the canonical accounts.
func NewUserStore(hasher password.Hasher) (*UserStore, error) {
	users, err := seed.Users(hasher)
	if err != nil {
		return nil, err
	}

	s := &UserStore{hasher: hasher, users: make(map[string]*domain.User, len(users))}
	for i := range users {
		u := users[i]
		u.ID = strconv.Itoa(i + 1)
		s.users[strings.ToLower(u.Username)] = &u
	}
	return s, nil
}

func (s *UserStore) ValidateCredentials(ctx context.Context, username, pass string) (*domain.User, error) {
	user, err := s.GetUser(ctx, username)
	if err != nil {
		return nil, err
	}

	result, err := s.hasher.Verify(user.PasswordHash, pass)
	if err != nil {
		return nil, fmt.Errorf("verify credentials: %w", err)
	}
	if result == password.VerifyFailed {
		// Collapses to the same outcome as an unknown username.
		return nil, domain.ErrUserNotFound
	}
	// VerifySuccessRehashNeeded is accepted as a match; there is no
	// password-change flow to persist an upgraded hash through.
	return user, nil
}

func (s *UserStore) GetUser(_ context.Context, username string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[strings.ToLower(username)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}
