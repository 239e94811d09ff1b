package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

// HealthHandler serves the GET /health liveness probe.
// Returns 200 immediately; confirms the process is alive.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// StorePinger is implemented by the store handle.
type StorePinger interface {
	Configured() bool
	Ping(ctx context.Context) error
}

// HealthDependenciesHandler serves the GET /health/ready readiness probe.
// A process running without a store is ready but reports the database as
// "not_configured". Redis is only checked when a client is present.
type HealthDependenciesHandler struct {
	backend string
	store   StorePinger
	redis   *redis.Client
}

func NewHealthDependenciesHandler(backend string, store StorePinger, rdb *redis.Client) *HealthDependenciesHandler {
	return &HealthDependenciesHandler{
		backend: backend,
		store:   store,
		redis:   rdb,
	}
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

func (h *HealthDependenciesHandler) Readiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	deps := make(map[string]dependencyStatus)
	healthy := true

	// --- database ---
	switch {
	case !h.store.Configured():
		deps["database"] = dependencyStatus{Status: "not_configured"}
	default:
		if err := h.store.Ping(ctx); err != nil {
			deps[h.backend] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps[h.backend] = dependencyStatus{Status: "ok"}
		}
	}

	// --- Redis ping ---
	if h.redis != nil {
		if _, err := h.redis.Ping(ctx).Result(); err != nil {
			deps["redis"] = dependencyStatus{Status: "unhealthy", Error: err.Error()}
			healthy = false
		} else {
			deps["redis"] = dependencyStatus{Status: "ok"}
		}
	}

	status := "ok"
	httpStatus := http.StatusOK
	if !healthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	return c.JSON(httpStatus, readinessResponse{
		Status:       status,
		Dependencies: deps,
	})
}
