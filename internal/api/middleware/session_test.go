package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/classroom/scheduler/internal/core/domain"
)

// stubSessions accepts the single token "good" and upgrades its role on
// refresh, the way a store-backed refresh picks up a role change.
type stubSessions struct {
	refreshErr error
	refreshed  int
}

func (s *stubSessions) Issue(context.Context, domain.Identity) (string, domain.SessionClaim, error) {
	return "", domain.SessionClaim{}, errors.New("not used")
}

func (s *stubSessions) Decode(_ context.Context, token string) (domain.SessionClaim, error) {
	if token != "good" {
		return domain.SessionClaim{}, domain.ErrInvalidToken
	}
	return domain.SessionClaim{ID: "u1", Email: "ann@x.io", Role: domain.RoleStudent}, nil
}

func (s *stubSessions) Refresh(_ context.Context, claim domain.SessionClaim) (domain.SessionClaim, error) {
	s.refreshed++
	if s.refreshErr != nil {
		return domain.SessionClaim{}, s.refreshErr
	}
	claim.Role = domain.RoleTeacher
	return claim, nil
}

func (s *stubSessions) Reissue(context.Context, domain.SessionClaim) (string, domain.SessionClaim, error) {
	return "", domain.SessionClaim{}, errors.New("not used")
}

func (s *stubSessions) Revoke(context.Context, domain.SessionClaim) error { return nil }

func runSession(t *testing.T, sessions *stubSessions, prepare func(*http.Request)) (*domain.SessionClaim, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	prepare(req)
	c := e.NewContext(req, httptest.NewRecorder())

	var got *domain.SessionClaim
	err := Session(sessions)(func(c echo.Context) error {
		got = SessionFrom(c)
		return c.NoContent(http.StatusOK)
	})(c)
	return got, err
}

func TestSession_BearerToken(t *testing.T) {
	sessions := &stubSessions{}
	claim, err := runSession(t, sessions, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer good")
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claim == nil || claim.ID != "u1" {
		t.Fatalf("claim not stored: %+v", claim)
	}
	if claim.Role != domain.RoleTeacher {
		t.Fatalf("expected refreshed role TEACHER, got %s", claim.Role)
	}
	if sessions.refreshed != 1 {
		t.Fatalf("expected one refresh, got %d", sessions.refreshed)
	}
}

func TestSession_CookieFallback(t *testing.T) {
	claim, err := runSession(t, &stubSessions{}, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good"})
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claim == nil || claim.ID != "u1" {
		t.Fatalf("claim not stored: %+v", claim)
	}
}

func TestSession_MissingToken(t *testing.T) {
	_, err := runSession(t, &stubSessions{}, func(*http.Request) {})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSession_InvalidHeaderFormat(t *testing.T) {
	_, err := runSession(t, &stubSessions{}, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Token good")
	})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSession_InvalidToken(t *testing.T) {
	_, err := runSession(t, &stubSessions{}, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer forged")
	})
	if !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSession_RefreshError(t *testing.T) {
	boom := errors.New("store down")
	_, err := runSession(t, &stubSessions{refreshErr: boom}, func(r *http.Request) {
		r.Header.Set(echo.HeaderAuthorization, "Bearer good")
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected refresh error, got %v", err)
	}
}
