package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/timetrack/auth-service/internal/core/domain"
	"github.com/timetrack/auth-service/internal/core/password"
	"github.com/timetrack/auth-service/internal/infrastructure/db/seed"
)

// userKey formats the Redis key for a username. Keys are lowercased, which
// gives the backend its case-insensitive lookup.
func userKey(username string) string {
	return "user:" + strings.ToLower(username)
}

type userRecord struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Role         string `json:"role"`
	PasswordHash string `json:"password_hash"`
	CreatedAt    int64  `json:"created_at"`
}

// UserStore is the key-value backend, holding one JSON record per user.
type UserStore struct {
	client *redis.Client
	hasher password.Hasher
}

// NewUserStore seeds the canonical accounts with SET NX, so concurrent
// startups never overwrite each other and re-running the bootstrap is a
// no-op.
func NewUserStore(ctx context.Context, client *redis.Client, hasher password.Hasher) (*UserStore, error) {
	s := &UserStore{client: client, hasher: hasher}

	users, err := seed.Users(hasher)
	if err != nil {
		return nil, err
	}
	for i, u := range users {
		rec := userRecord{
			ID:           fmt.Sprintf("%d", i+1),
			Username:     u.Username,
			Role:         u.Role,
			PasswordHash: u.PasswordHash,
			CreatedAt:    u.CreatedAt.Unix(),
		}
		payload, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("seed users: %w", err)
		}
		if err := client.SetNX(ctx, userKey(u.Username), payload, 0).Err(); err != nil {
			return nil, fmt.Errorf("%w: seed users: %v", domain.ErrStoreUnavailable, err)
		}
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
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *UserStore) GetUser(ctx context.Context, username string) (*domain.User, error) {
	payload, err := s.client.Get(ctx, userKey(username)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", domain.ErrStoreUnavailable, err)
	}

	var rec userRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode user record: %w", err)
	}

	return &domain.User{
		ID:           rec.ID,
		Username:     rec.Username,
		Role:         rec.Role,
		PasswordHash: rec.PasswordHash,
		CreatedAt:    unixToTime(rec.CreatedAt),
	}, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
