package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/timetrack/auth-service/internal/core/ports"
)

type UserHandler struct {
	store ports.UserStore
}

func NewUserHandler(store ports.UserStore) *UserHandler {
	return &UserHandler{store: store}
}

type profileResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Profile returns the authenticated caller's identity, re-resolved from the
// store so the response reflects the persisted record, not just the token.
//
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	username, _, err := ctxClaims(c)
	if err != nil {
		return err
	}

	user, err := h.store.GetUser(c.Request().Context(), username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{Username: user.Username, Role: user.Role})
}
