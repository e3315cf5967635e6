package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/timetrack/auth-service/internal/core/domain"
	"github.com/timetrack/auth-service/internal/core/password"
	"github.com/timetrack/auth-service/internal/infrastructure/db/seed"
)

const usersCollection = "users"

// UserStore is the document-store backend. Usernames are matched
// case-insensitively via a stored lowercased field with a unique index.
type UserStore struct {
	coll   *mongo.Collection
	hasher password.Hasher
}

type userDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Username      string             `bson:"username"`
	UsernameLower string             `bson:"username_lower"`
	Role          string             `bson:"role"`
	PasswordHash  string             `bson:"password_hash"`
	CreatedAt     int64              `bson:"created_at"`
}

// NewUserStore prepares the collection and seeds the canonical accounts if
// it is empty. The seed is an idempotent check-then-insert: safe to run on
// every startup, with a harmless duplicate-insert window under concurrent
// process startup that the unique index closes.
func NewUserStore(ctx context.Context, db *mongo.Database, hasher password.Hasher) (*UserStore, error) {
	s := &UserStore{coll: db.Collection(usersCollection), hasher: hasher}

	if err := s.ensureIndexes(ctx); err != nil {
		return nil, err
	}
	if err := s.seedIfEmpty(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *UserStore) ensureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username_lower", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure username index: %w", err)
	}
	return nil
}

func (s *UserStore) seedIfEmpty(ctx context.Context) error {
	count, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	users, err := seed.Users(s.hasher)
	if err != nil {
		return err
	}

	docs := make([]interface{}, 0, len(users))
	for _, u := range users {
		docs = append(docs, userDoc{
			Username:      u.Username,
			UsernameLower: strings.ToLower(u.Username),
			Role:          u.Role,
			PasswordHash:  u.PasswordHash,
			CreatedAt:     u.CreatedAt.Unix(),
		})
	}

	if _, err := s.coll.InsertMany(ctx, docs); err != nil {
		// Another process won the seed race; the data is already there.
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("seed users: %w", err)
	}
	return nil
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
	var doc userDoc
	err := s.coll.FindOne(ctx, bson.M{"username_lower": strings.ToLower(username)}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: find user: %v", domain.ErrStoreUnavailable, err)
	}

	return &domain.User{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		Role:         doc.Role,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    unixToTime(doc.CreatedAt),
	}, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
