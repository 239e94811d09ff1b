package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

// UserHandler serves the admin user-management endpoints. Routes must be
// mounted behind RBAC(ADMIN).
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List returns all users, optionally filtered by role.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role  query     string  false  "Role filter"  Enums(ADMIN, TEACHER, STUDENT)
// @Success      200   {object}  userListResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/users [get]
func (h *UserHandler) List(c echo.Context) error {
	var filter ports.UserFilter
	if raw := c.QueryParam("role"); raw != "" {
		role, err := domain.NormalizeRole(raw)
		if err != nil {
			return err
		}
		filter.Role = role
	}

	users, err := h.service.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}
	if users == nil {
		users = []*domain.User{}
	}
	return c.JSON(http.StatusOK, userListResponse{Users: users})
}

// ChangeRole sets a user's role.
//
// @Summary      Change user role
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User ID"
// @Param        body  body      changeRoleRequest  true  "New role"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/users/{id}/role [patch]
func (h *UserHandler) ChangeRole(c echo.Context) error {
	var req changeRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	role, err := domain.NormalizeRole(req.Role)
	if err != nil {
		return err
	}

	user, err := h.service.ChangeRole(c.Request().Context(), c.Param("id"), role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}
