package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

// ClassHandler handles HTTP requests for class operations.
type ClassHandler struct {
	service ports.ClassService
}

func NewClassHandler(service ports.ClassService) *ClassHandler {
	return &ClassHandler{service: service}
}

// List returns the classes visible to the caller: all of them for an admin,
// the caller's own otherwise.
//
// @Summary      List classes
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  classListResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/classes [get]
func (h *ClassHandler) List(c echo.Context) error {
	claim, err := ctxSession(c)
	if err != nil {
		return err
	}

	classes, err := h.service.List(c.Request().Context(), claim)
	if err != nil {
		return err
	}
	if classes == nil {
		classes = []*domain.Class{}
	}
	return c.JSON(http.StatusOK, classListResponse{Classes: classes})
}

// Get returns a single class.
//
// @Summary      Get class
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Class ID"
// @Success      200  {object}  classResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/classes/{id} [get]
func (h *ClassHandler) Get(c echo.Context) error {
	claim, err := ctxSession(c)
	if err != nil {
		return err
	}

	class, err := h.service.Get(c.Request().Context(), claim, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classResponse{Class: class})
}

// Create schedules a class owned by the caller.
//
// @Summary      Create class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClassRequest  true  "Class"
// @Success      201   {object}  classResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /v1/classes [post]
func (h *ClassHandler) Create(c echo.Context) error {
	claim, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	class, err := h.service.Create(c.Request().Context(), claim, ports.CreateClassInput{
		Name:        req.Name,
		Description: req.Description,
		DayOfWeek:   *req.DayOfWeek,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, classResponse{Class: class})
}

// Update applies a partial update to a class.
//
// @Summary      Update class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Class ID"
// @Param        body  body      updateClassRequest  true  "Fields to change"
// @Success      200   {object}  classResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/classes/{id} [put]
func (h *ClassHandler) Update(c echo.Context) error {
	claim, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	class, err := h.service.Update(c.Request().Context(), claim, c.Param("id"), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classResponse{Class: class})
}

// Delete removes a class.
//
// @Summary      Delete class
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Class ID"
// @Success      200  {object}  okResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/classes/{id} [delete]
func (h *ClassHandler) Delete(c echo.Context) error {
	claim, err := ctxSession(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), claim, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, okResponse{OK: true})
}
