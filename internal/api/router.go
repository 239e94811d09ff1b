package api

import (
	"fmt"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/classroom/scheduler/docs"
	"github.com/classroom/scheduler/internal/api/handler"
	"github.com/classroom/scheduler/internal/api/middleware"
	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
	"github.com/classroom/scheduler/internal/infrastructure/http/handlers"
)

// Dependencies is everything the router needs. OAuth and Redis are optional.
type Dependencies struct {
	Logger   zerolog.Logger
	Auth     ports.AuthService
	Sessions ports.SessionService
	Classes  ports.ClassService
	Profiles ports.ProfileService
	Users    ports.UserService
	OAuth    ports.OAuthProvider

	Backend string
	Store   handlers.StorePinger
	Redis   *redis.Client

	// SecureCookies marks session cookies Secure. Off for local http.
	SecureCookies bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// HTTP metrics go to a per-router registry. /metrics serves it together
	// with the default registry holding the domain counters.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "scheduler",
		Subsystem:  "http",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Sessions, deps.SecureCookies)
	classHandler := handler.NewClassHandler(deps.Classes)
	profileHandler := handler.NewProfileHandler(deps.Profiles)
	userHandler := handler.NewUserHandler(deps.Users)
	session := middleware.Session(deps.Sessions)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/session", authHandler.Session, session)
	auth.POST("/logout", authHandler.Logout, session)

	if deps.OAuth != nil {
		oauthHandler := handler.NewOAuthHandler(deps.OAuth, deps.Auth, deps.SecureCookies)
		base := fmt.Sprintf("/oauth/%s", deps.OAuth.Name())
		auth.GET(base, oauthHandler.Start)
		auth.GET(base+"/callback", oauthHandler.Callback)
	}

	// --- Authenticated API ---
	v1 := e.Group("/v1", session)

	v1.GET("/classes", classHandler.List)
	v1.POST("/classes", classHandler.Create, middleware.RBAC(domain.RoleAdmin, domain.RoleTeacher))
	v1.GET("/classes/:id", classHandler.Get)
	v1.PUT("/classes/:id", classHandler.Update)
	v1.DELETE("/classes/:id", classHandler.Delete)

	v1.GET("/profile", profileHandler.Get)
	v1.PUT("/profile", profileHandler.Update)

	admin := v1.Group("/users", middleware.RBAC(domain.RoleAdmin))
	admin.GET("", userHandler.List)
	admin.PATCH("/:id/role", userHandler.ChangeRole)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Backend, deps.Store, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one access log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency.Round(time.Microsecond)).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
