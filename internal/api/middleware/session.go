package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

// SessionCookie is the cookie login sets for browser clients.
const SessionCookie = "session_token"

const sessionKey = "session"

// Session decodes the request's session token, refreshes its claim against
// the credential store and stores the result on the context. Requests without
// a usable token are rejected with domain.ErrUnauthorized.
func Session(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := TokenFrom(c)
			if token == "" {
				return domain.ErrUnauthorized
			}

			ctx := c.Request().Context()
			claim, err := sessions.Decode(ctx, token)
			if err != nil {
				return err
			}
			claim, err = sessions.Refresh(ctx, claim)
			if err != nil {
				return err
			}

			SetSession(c, claim)
			return next(c)
		}
	}
}

// TokenFrom returns the bearer token from the Authorization header, falling
// back to the session cookie. Empty when neither is present.
func TokenFrom(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return ""
		}
		return strings.TrimSpace(parts[1])
	}
	if ck, err := c.Cookie(SessionCookie); err == nil {
		return ck.Value
	}
	return ""
}

// SetSession stores claim on c.
func SetSession(c echo.Context, claim domain.SessionClaim) {
	c.Set(sessionKey, &claim)
}

// SessionFrom returns the claim stored by Session, or nil.
func SessionFrom(c echo.Context) *domain.SessionClaim {
	claim, _ := c.Get(sessionKey).(*domain.SessionClaim)
	return claim
}
