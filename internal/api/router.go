package api

import (
	"context"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/timetrack/auth-service/internal/api/handler"
	"github.com/timetrack/auth-service/internal/api/middleware"
	"github.com/timetrack/auth-service/internal/core/authz"
	"github.com/timetrack/auth-service/internal/core/ports"
)

// Deps carries the wired collaborators the router needs. The store backend
// and token configuration are decided in main; the router only declares
// routes and the policy required by each.
type Deps struct {
	AuthService ports.AuthService
	Store       ports.UserStore
	Authorizer  *authz.Authorizer
	// StoreBackend and StorePing feed the readiness probe for whichever
	// backend is active.
	StoreBackend string
	StorePing    func(ctx context.Context) error
	Log          zerolog.Logger
}

// NewRouter builds the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	userHandler := handler.NewUserHandler(deps.Store)
	reportHandler := handler.NewReportHandler(deps.Store)
	healthHandler := handler.NewHealthHandler(deps.StoreBackend, deps.StorePing)

	// --- API routes ---
	g := e.Group("/api")
	g.POST("/auth/login", authHandler.Login) // anonymous by design
	g.GET("/users/profile", userHandler.Profile, middleware.Authorize(deps.Authorizer, authz.PolicyAuthenticated))
	g.GET("/admin/reports", reportHandler.AdminReports, middleware.Authorize(deps.Authorizer, authz.PolicyAdmin))
	g.GET("/reports/daily", reportHandler.DailyReports, middleware.Authorize(deps.Authorizer, authz.PolicyUser))

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
