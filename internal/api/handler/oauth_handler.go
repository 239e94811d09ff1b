package handler

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateTTL    = 10 * time.Minute
)

// OAuthHandler runs the authorization-code sign-in against one provider.
type OAuthHandler struct {
	provider     ports.OAuthProvider
	authService  ports.AuthService
	secureCookie bool
}

func NewOAuthHandler(provider ports.OAuthProvider, authService ports.AuthService, secureCookie bool) *OAuthHandler {
	return &OAuthHandler{provider: provider, authService: authService, secureCookie: secureCookie}
}

// Start redirects the browser to the provider's consent page.
//
// @Summary      Start OAuth sign-in
// @Tags         auth
// @Success      302
// @Router       /auth/oauth/google [get]
func (h *OAuthHandler) Start(c echo.Context) error {
	state := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/auth/oauth",
		Expires:  time.Now().Add(oauthStateTTL),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// Callback completes the sign-in and returns a session token.
//
// @Summary      OAuth callback
// @Tags         auth
// @Produce      json
// @Param        code   query     string  true  "Authorization code"
// @Param        state  query     string  true  "State issued by Start"
// @Success      200    {object}  sessionResponse
// @Failure      401    {object}  errorResponse
// @Router       /auth/oauth/google/callback [get]
func (h *OAuthHandler) Callback(c echo.Context) error {
	ck, err := c.Cookie(oauthStateCookie)
	state := c.QueryParam("state")
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(ck.Value), []byte(state)) != 1 {
		return domain.ErrUnauthorized
	}
	c.SetCookie(&http.Cookie{Name: oauthStateCookie, Path: "/auth/oauth", MaxAge: -1})

	ctx := c.Request().Context()
	profile, err := h.provider.Exchange(ctx, c.QueryParam("code"))
	if err != nil {
		return err
	}

	res, err := h.authService.OAuthLogin(ctx, profile)
	if err != nil {
		return err
	}

	c.SetCookie(sessionCookie(res.Token, res.Claim.ExpiresAt, h.secureCookie))
	return c.JSON(http.StatusOK, sessionResponse{Token: res.Token, User: res.Claim})
}
