package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/timetrack/auth-service/internal/core/authz"
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

func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := mw(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthorize_ValidToken(t *testing.T) {
	tokens := tokenService(t, time.Hour)
	a := authz.NewAuthorizer(tokens)
	token := signedToken(t, tokens, "admin@example.com", domain.RoleAdmin)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Authorize(a, authz.PolicyAdmin)(func(c echo.Context) error {
		called = true
		if c.Get("username") != "admin@example.com" {
			t.Fatalf("username not injected")
		}
		if c.Get("role") != domain.RoleAdmin {
			t.Fatalf("role not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthorize_MissingHeader(t *testing.T) {
	a := authz.NewAuthorizer(tokenService(t, time.Hour))

	rec, called := invoke(t, Authorize(a, authz.PolicyAuthenticated), "")
	if called {
		t.Fatalf("next should not run without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthorize_WrongScheme(t *testing.T) {
	tokens := tokenService(t, time.Hour)
	a := authz.NewAuthorizer(tokens)
	token := signedToken(t, tokens, "admin@example.com", domain.RoleAdmin)

	rec, called := invoke(t, Authorize(a, authz.PolicyAuthenticated), "Token "+token)
	if called {
		t.Fatalf("next should not run for a non-bearer scheme")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthorize_ForbiddenRole(t *testing.T) {
	tokens := tokenService(t, time.Hour)
	a := authz.NewAuthorizer(tokens)
	token := signedToken(t, tokens, "user@example.com", domain.RoleUser)

	rec, called := invoke(t, Authorize(a, authz.PolicyAdmin), "Bearer "+token)
	if called {
		t.Fatalf("next should not run for a forbidden role")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestAuthorize_ExpiredToken(t *testing.T) {
	expired := tokenService(t, -2*time.Minute)
	a := authz.NewAuthorizer(expired)
	token := signedToken(t, expired, "admin@example.com", domain.RoleAdmin)

	rec, called := invoke(t, Authorize(a, authz.PolicyAdmin), "Bearer "+token)
	if called {
		t.Fatalf("next should not run for an expired token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
