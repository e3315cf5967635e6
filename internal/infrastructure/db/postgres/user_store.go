package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/timetrack/auth-service/internal/core/domain"
	"github.com/timetrack/auth-service/internal/core/password"
)

// UserStore is the relational backend. Case-insensitive matching is done in
// SQL so it follows the database's collation rules.
type UserStore struct {
	db     *sql.DB
	hasher password.Hasher
}

func NewUserStore(db *sql.DB, hasher password.Hasher) *UserStore {
	return &UserStore{db: db, hasher: hasher}
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
	const q = `SELECT id, username, role, password_hash, created_at
		FROM users WHERE LOWER(username) = LOWER($1)`

	var (
		id   int64
		user domain.User
	)
	row := s.db.QueryRowContext(ctx, q, username)
	if err := row.Scan(&id, &user.Username, &user.Role, &user.PasswordHash, &user.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", domain.ErrStoreUnavailable, err)
	}
	user.ID = strconv.FormatInt(id, 10)
	return &user, nil
}
