package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxClaims extracts the claims injected by the Authorize middleware. A
// missing username means the middleware did not run on this route, which is
// a wiring bug surfaced as 401 rather than a panic.
func ctxClaims(c echo.Context) (username, role string, err error) {
	username, _ = c.Get("username").(string)
	if username == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	role, _ = c.Get("role").(string)
	return username, role, nil
}
