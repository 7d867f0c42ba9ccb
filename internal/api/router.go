package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/usermgmt/users-api/docs"
	"github.com/usermgmt/users-api/internal/api/handler"
	"github.com/usermgmt/users-api/internal/api/middleware"
	"github.com/usermgmt/users-api/internal/core/domain"
	"github.com/usermgmt/users-api/internal/core/ports"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Sessions ports.SessionService
	Users    ports.UserService
	Gate     ports.AccessGate
	Audit    ports.AuditSink // optional
	Checks   map[string]handler.DependencyCheck
	Log      zerolog.Logger
	// Metrics enables HTTP request metrics and GET /metrics when non-nil.
	Metrics prometheus.Registerer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Log))
	if deps.Metrics != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "users_api",
			Registerer: deps.Metrics,
		}))
		e.GET("/metrics", echoprometheus.NewHandler())
	}

	access := middleware.NewAccess(deps.Gate, deps.Audit, deps.Log)
	sessionHandler := handler.NewSessionHandler(deps.Sessions)
	userHandler := handler.NewUserHandler(deps.Users)

	// --- Session ---
	e.POST("/session", sessionHandler.Create, access.Public())

	// --- Users ---
	e.POST("/users", userHandler.Create, access.Public())
	e.GET("/users", userHandler.List, access.RoleAtLeast(domain.RoleAdmin))
	e.GET("/users/:id", userHandler.Get, access.Authenticated())
	e.DELETE("/users/:id", userHandler.Delete, access.RoleAtLeast(domain.RoleAdmin))

	// --- Health probes (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(deps.Checks).Readiness)

	// --- API docs ---
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			log.Info().
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Msg("request")
			return nil
		},
	})
}
