package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/classroom/scheduler/internal/api/middleware"
	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

type AuthHandler struct {
	authService  ports.AuthService
	sessions     ports.SessionService
	secureCookie bool
}

// NewAuthHandler wires the auth endpoints. secureCookie marks the session
// cookie Secure and should be true outside local development.
func NewAuthHandler(authService ports.AuthService, sessions ports.SessionService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions, secureCookie: secureCookie}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))
	req.Email = strings.TrimSpace(req.Email)
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{User: user, Message: "User created successfully"})
}

// Login authenticates a user and returns a session token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, res.Token, res.Claim.ExpiresAt)
	return c.JSON(http.StatusOK, sessionResponse{Token: res.Token, User: res.Claim})
}

// Session returns the caller's refreshed claim together with a re-signed token.
//
// @Summary      Current session
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	claim, err := ctxSession(c)
	if err != nil {
		return err
	}

	token, reissued, err := h.sessions.Reissue(c.Request().Context(), *claim)
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token, reissued.ExpiresAt)
	return c.JSON(http.StatusOK, sessionResponse{Token: token, User: reissued})
}

// Logout revokes the caller's session token.
//
// @Summary      Logout
// @Tags         auth
// @Security     BearerAuth
// @Success      204
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	claim, err := ctxSession(c)
	if err != nil {
		return err
	}
	if err := h.authService.Logout(c.Request().Context(), *claim); err != nil {
		return err
	}

	h.setSessionCookie(c, "", time.Unix(0, 0))
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, expires time.Time) {
	c.SetCookie(sessionCookie(token, expires, h.secureCookie))
}

func sessionCookie(token string, expires time.Time, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
