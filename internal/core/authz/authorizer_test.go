package authz

import (
	"errors"
	"testing"
	"time"

	"github.com/timetrack/auth-service/internal/core/domain"
	"github.com/timetrack/auth-service/internal/core/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func tokenService(t *testing.T, ttl time.Duration) *service.TokenService {
	t.Helper()
	svc, err := service.NewTokenService(service.TokenConfig{
		Secret:     testSecret,
		Issuer:     "auth-service",
		Audience:   "auth-service-clients",
		Expiration: ttl,
	})
	if err != nil {
		t.Fatalf("new token service: %v", err)
	}
	return svc
}

func signedToken(t *testing.T, svc *service.TokenService, username, role string) string {
	t.Helper()
	resp, err := svc.CreateToken(&domain.User{Username: username, Role: role})
	if err != nil {
		t.Fatalf("create token: %v", err)
	}
	return resp.AccessToken
}

func TestAuthorizer_UserRoleForbiddenOnAdminPolicy(t *testing.T) {
	tokens := tokenService(t, time.Hour)
	a := NewAuthorizer(tokens)
	token := signedToken(t, tokens, "user@example.com", domain.RoleUser)

	_, err := a.Authorize(token, PolicyAdmin)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// The same token satisfies the any-authenticated-user policy.
	claims, err := a.Authorize(token, PolicyAuthenticated)
	if err != nil {
		t.Fatalf("authenticated policy: %v", err)
	}
	if claims.Subject != "user@example.com" || claims.Role != domain.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthorizer_AdminSatisfiesBothPolicies(t *testing.T) {
	tokens := tokenService(t, time.Hour)
	a := NewAuthorizer(tokens)
	token := signedToken(t, tokens, "admin@example.com", domain.RoleAdmin)

	for _, policy := range []string{PolicyAdmin, PolicyUser} {
		claims, err := a.Authorize(token, policy)
		if err != nil {
			t.Fatalf("policy %s: %v", policy, err)
		}
		if claims.Role != domain.RoleAdmin {
			t.Fatalf("policy %s: unexpected role %s", policy, claims.Role)
		}
	}
}

func TestAuthorizer_UserSatisfiesUserPolicy(t *testing.T) {
	tokens := tokenService(t, time.Hour)
	a := NewAuthorizer(tokens)
	token := signedToken(t, tokens, "user@example.com", domain.RoleUser)

	if _, err := a.Authorize(token, PolicyUser); err != nil {
		t.Fatalf("expected User role to satisfy UserPolicy: %v", err)
	}
}

func TestAuthorizer_MissingOrMalformedToken(t *testing.T) {
	a := NewAuthorizer(tokenService(t, time.Hour))

	if _, err := a.Authorize("", PolicyAuthenticated); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for empty token, got %v", err)
	}
	if _, err := a.Authorize("not-a-token", PolicyAuthenticated); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for garbage token, got %v", err)
	}
}

func TestAuthorizer_ExpiredTokenUnauthenticated(t *testing.T) {
	expired := tokenService(t, -2*time.Minute)
	a := NewAuthorizer(expired)
	token := signedToken(t, expired, "admin@example.com", domain.RoleAdmin)

	_, err := a.Authorize(token, PolicyAdmin)
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated for expired token, got %v", err)
	}
	// Authentication precedes authorization: even an Admin token must not
	// reach the role check once expired.
	if errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expired token must not produce a forbidden outcome")
	}
}

func TestAuthorizer_UnknownRoleRejected(t *testing.T) {
	tokens := tokenService(t, time.Hour)
	a := NewAuthorizer(tokens)

	// A correctly signed token carrying a role outside the fixed set must
	// not pass any policy, the default one included.
	token := signedToken(t, tokens, "intruder@example.com", "SuperUser")

	for _, policy := range []string{PolicyAuthenticated, PolicyUser, PolicyAdmin} {
		_, err := a.Authorize(token, policy)
		if !errors.Is(err, domain.ErrUnauthenticated) {
			t.Fatalf("policy %s: expected ErrUnauthenticated, got %v", policy, err)
		}
	}
}

func TestAuthorizer_UnknownPolicy(t *testing.T) {
	tokens := tokenService(t, time.Hour)
	a := NewAuthorizer(tokens)
	token := signedToken(t, tokens, "admin@example.com", domain.RoleAdmin)

	_, err := a.Authorize(token, "NoSuchPolicy")
	if err == nil {
		t.Fatalf("expected error for unknown policy")
	}
	if errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("unknown policy is a wiring bug, not an auth outcome: %v", err)
	}
}
