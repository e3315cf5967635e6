package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/timetrack/auth-service/internal/core/domain"
	"github.com/timetrack/auth-service/internal/core/password"
)

func newTestStore(t *testing.T) *UserStore {
	t.Helper()
	store, err := NewUserStore(password.NewArgon2Hasher(1, 1024, 1))
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestUserStore_SeededAccounts(t *testing.T) {
	store := newTestStore(t)

	admin, err := store.GetUser(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("get admin: %v", err)
	}
	if admin.Role != domain.RoleAdmin {
		t.Fatalf("expected Admin role, got %s", admin.Role)
	}
	if admin.PasswordHash == "" {
		t.Fatalf("persisted user must have a password hash")
	}

	user, err := store.GetUser(context.Background(), "user@example.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected User role, got %s", user.Role)
	}
}

func TestUserStore_ValidateCredentials_CaseInsensitive(t *testing.T) {
	store := newTestStore(t)

	for _, username := range []string{
		"admin@example.com",
		"ADMIN@EXAMPLE.COM",
		"Admin@Example.Com",
	} {
		got, err := store.ValidateCredentials(context.Background(), username, "Admin123!")
		if err != nil {
			t.Fatalf("%s: %v", username, err)
		}
		if got.Username != "admin@example.com" {
			t.Fatalf("%s: resolved wrong user %s", username, got.Username)
		}
	}
}

func TestUserStore_ValidateCredentials_WrongPassword(t *testing.T) {
	store := newTestStore(t)

	for _, username := range []string{"admin@example.com", "ADMIN@EXAMPLE.COM"} {
		_, err := store.ValidateCredentials(context.Background(), username, "wrong")
		if !errors.Is(err, domain.ErrUserNotFound) {
			t.Fatalf("%s: expected ErrUserNotFound, got %v", username, err)
		}
	}
}

func TestUserStore_ValidateCredentials_UnknownUserSameOutcome(t *testing.T) {
	store := newTestStore(t)

	_, unknownErr := store.ValidateCredentials(context.Background(), "ghost@example.com", "whatever")
	_, wrongPassErr := store.ValidateCredentials(context.Background(), "admin@example.com", "wrong")

	// Both failure modes must be indistinguishable at the contract boundary.
	if !errors.Is(unknownErr, domain.ErrUserNotFound) || !errors.Is(wrongPassErr, domain.ErrUserNotFound) {
		t.Fatalf("expected identical not-found outcomes, got %v / %v", unknownErr, wrongPassErr)
	}
}

func TestUserStore_GetUser_CaseInsensitive(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetUser(context.Background(), "USER@example.COM")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Username != "user@example.com" {
		t.Fatalf("resolved wrong user: %s", got.Username)
	}

	if _, err := store.GetUser(context.Background(), "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserStore_ReturnsCopies(t *testing.T) {
	store := newTestStore(t)

	first, err := store.GetUser(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	first.Role = "tampered"

	second, err := store.GetUser(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if second.Role != domain.RoleAdmin {
		t.Fatalf("store state mutated through returned value")
	}
}
