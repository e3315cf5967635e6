package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/timetrack/auth-service/internal/core/domain"
	"github.com/timetrack/auth-service/internal/core/ports"
)

// ReportHandler serves the two protected report endpoints. The reports
// themselves are fixed payloads; the point of the endpoints is the policy
// gate in front of them.
type ReportHandler struct {
	store ports.UserStore
}

func NewReportHandler(store ports.UserStore) *ReportHandler {
	return &ReportHandler{store: store}
}

type adminReportResponse struct {
	Owner          string    `json:"owner"`
	Role           string    `json:"role"`
	GeneratedAtUTC time.Time `json:"generated_at_utc"`
	Items          []string  `json:"items"`
}

type dailyReportItem struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// AdminReports is restricted to AdminPolicy. The role is enriched from the
// store rather than echoed from the token.
//
// @Summary      Admin reports
// @Tags         reports
// @Produce      json
// @Success      200  {object}  adminReportResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/reports [get]
func (h *ReportHandler) AdminReports(c echo.Context) error {
	username, role, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if user, err := h.store.GetUser(c.Request().Context(), username); err == nil {
		role = user.Role
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	return c.JSON(http.StatusOK, adminReportResponse{
		Owner:          username,
		Role:           role,
		GeneratedAtUTC: time.Now().UTC(),
		Items:          []string{"Quarterly financials", "Infrastructure status"},
	})
}

// DailyReports is gated by UserPolicy, which admits both User and Admin.
//
// @Summary      Daily reports
// @Tags         reports
// @Produce      json
// @Success      200  {array}  dailyReportItem
// @Failure      403  {object}  map[string]string
// @Router       /api/reports/daily [get]
func (h *ReportHandler) DailyReports(c echo.Context) error {
	if _, _, err := ctxClaims(c); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, []dailyReportItem{
		{ID: 1, Title: "Daily sales summary"},
		{ID: 2, Title: "Active sessions"},
	})
}
