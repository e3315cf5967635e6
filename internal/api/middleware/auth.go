package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/timetrack/auth-service/internal/api/metrics"
	"github.com/timetrack/auth-service/internal/core/authz"
	"github.com/timetrack/auth-service/internal/core/domain"
)

// Authorize enforces the named policy on a route: it extracts the bearer
// token, runs the full authentication + authorization decision, and injects
// the verified claims into the echo context for the handler. Anonymous
// routes simply omit this middleware.
func Authorize(a *authz.Authorizer, policyName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request().Header.Get("Authorization"))

			claims, err := a.Authorize(token, policyName)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrForbidden):
					metrics.AuthzDecisionsTotal.WithLabelValues(policyName, "forbidden").Inc()
					return echo.NewHTTPError(http.StatusForbidden, "forbidden")
				case errors.Is(err, domain.ErrUnauthenticated):
					metrics.AuthzDecisionsTotal.WithLabelValues(policyName, "unauthenticated").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
				default:
					return err
				}
			}

			metrics.AuthzDecisionsTotal.WithLabelValues(policyName, "allowed").Inc()
			c.Set("username", claims.Subject)
			c.Set("role", claims.Role)

			return next(c)
		}
	}
}

// bearerToken pulls the token out of an Authorization header. Returns ""
// when the header is missing or not a bearer scheme; the empty token fails
// authentication downstream.
func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}
