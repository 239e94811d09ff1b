package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/classroom/scheduler/internal/api/middleware"
	"github.com/classroom/scheduler/internal/core/domain"
)

// ctxSession returns the claim injected by the Session middleware. Routes
// mounted without the middleware get domain.ErrUnauthorized, so a routing
// mistake fails closed.
func ctxSession(c echo.Context) (*domain.SessionClaim, error) {
	claim := middleware.SessionFrom(c)
	if claim == nil || claim.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	return claim, nil
}
