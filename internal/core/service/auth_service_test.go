package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/timetrack/auth-service/internal/core/domain"
)

type stubUserStore struct {
	validateFn func(ctx context.Context, username, password string) (*domain.User, error)
	getFn      func(ctx context.Context, username string) (*domain.User, error)
}

func (s *stubUserStore) ValidateCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	return s.validateFn(ctx, username, password)
}

func (s *stubUserStore) GetUser(ctx context.Context, username string) (*domain.User, error) {
	return s.getFn(ctx, username)
}

func TestAuthService_Login_Success(t *testing.T) {
	store := &stubUserStore{
		validateFn: func(_ context.Context, username, password string) (*domain.User, error) {
			if username != "admin@example.com" || password != "Admin123!" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &domain.User{ID: "1", Username: "admin@example.com", Role: domain.RoleAdmin}, nil
		},
	}
	svc := NewAuthService(store, testTokenService(t, time.Hour))

	resp, err := svc.Login(context.Background(), "admin@example.com", "Admin123!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.AccessToken == "" {
		t.Fatalf("expected non-empty token")
	}
	if resp.Username != "admin@example.com" || resp.Role != domain.RoleAdmin {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthService_Login_UnknownUserAndWrongPasswordCollapse(t *testing.T) {
	// The store reports both cases as ErrUserNotFound; the flow must turn
	// either into the same invalid-credentials outcome.
	store := &stubUserStore{
		validateFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	svc := NewAuthService(store, testTokenService(t, time.Hour))

	_, err := svc.Login(context.Background(), "ghost@example.com", "whatever")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	store := &stubUserStore{
		validateFn: func(context.Context, string, string) (*domain.User, error) {
			t.Fatalf("store should not be called for empty input")
			return nil, nil
		},
	}
	svc := NewAuthService(store, testTokenService(t, time.Hour))

	if _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty username, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "user@example.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthService_Login_StoreUnavailablePassesThrough(t *testing.T) {
	store := &stubUserStore{
		validateFn: func(context.Context, string, string) (*domain.User, error) {
			return nil, fmt.Errorf("%w: connection refused", domain.ErrStoreUnavailable)
		},
	}
	svc := NewAuthService(store, testTokenService(t, time.Hour))

	_, err := svc.Login(context.Background(), "admin@example.com", "Admin123!")
	if !errors.Is(err, domain.ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
	if errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("store failure must not be reported as invalid credentials")
	}
}
