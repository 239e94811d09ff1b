package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/classroom/scheduler/internal/api/middleware"
	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	oauthFn    func(ctx context.Context, p domain.ExternalProfile) (*ports.LoginResult, error)
	loggedOut  []domain.SessionClaim
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) OAuthLogin(ctx context.Context, p domain.ExternalProfile) (*ports.LoginResult, error) {
	return s.oauthFn(ctx, p)
}

func (s *stubAuthService) Logout(_ context.Context, claim domain.SessionClaim) error {
	s.loggedOut = append(s.loggedOut, claim)
	return nil
}

type stubSessionService struct {
	reissueFn func(ctx context.Context, claim domain.SessionClaim) (string, domain.SessionClaim, error)
}

func (s *stubSessionService) Issue(context.Context, domain.Identity) (string, domain.SessionClaim, error) {
	panic("not used")
}

func (s *stubSessionService) Decode(context.Context, string) (domain.SessionClaim, error) {
	panic("not used")
}

func (s *stubSessionService) Refresh(_ context.Context, claim domain.SessionClaim) (domain.SessionClaim, error) {
	return claim, nil
}

func (s *stubSessionService) Reissue(ctx context.Context, claim domain.SessionClaim) (string, domain.SessionClaim, error) {
	return s.reissueFn(ctx, claim)
}

func (s *stubSessionService) Revoke(context.Context, domain.SessionClaim) error { return nil }

type stubClassService struct {
	listFn   func(ctx context.Context, claim *domain.SessionClaim) ([]*domain.Class, error)
	getFn    func(ctx context.Context, claim *domain.SessionClaim, id string) (*domain.Class, error)
	createFn func(ctx context.Context, claim *domain.SessionClaim, in ports.CreateClassInput) (*domain.Class, error)
	updateFn func(ctx context.Context, claim *domain.SessionClaim, id string, upd domain.ClassUpdate) (*domain.Class, error)
	deleteFn func(ctx context.Context, claim *domain.SessionClaim, id string) error
}

func (s *stubClassService) List(ctx context.Context, claim *domain.SessionClaim) ([]*domain.Class, error) {
	return s.listFn(ctx, claim)
}

func (s *stubClassService) Get(ctx context.Context, claim *domain.SessionClaim, id string) (*domain.Class, error) {
	return s.getFn(ctx, claim, id)
}

func (s *stubClassService) Create(ctx context.Context, claim *domain.SessionClaim, in ports.CreateClassInput) (*domain.Class, error) {
	return s.createFn(ctx, claim, in)
}

func (s *stubClassService) Update(ctx context.Context, claim *domain.SessionClaim, id string, upd domain.ClassUpdate) (*domain.Class, error) {
	return s.updateFn(ctx, claim, id, upd)
}

func (s *stubClassService) Delete(ctx context.Context, claim *domain.SessionClaim, id string) error {
	return s.deleteFn(ctx, claim, id)
}

type stubProfileService struct {
	getFn    func(ctx context.Context, claim *domain.SessionClaim) (*domain.User, error)
	updateFn func(ctx context.Context, claim *domain.SessionClaim, upd domain.ProfileUpdate) (*domain.User, error)
}

func (s *stubProfileService) Get(ctx context.Context, claim *domain.SessionClaim) (*domain.User, error) {
	return s.getFn(ctx, claim)
}

func (s *stubProfileService) Update(ctx context.Context, claim *domain.SessionClaim, upd domain.ProfileUpdate) (*domain.User, error) {
	return s.updateFn(ctx, claim, upd)
}

type stubUserService struct {
	listFn       func(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error)
	changeRoleFn func(ctx context.Context, id string, role domain.Role) (*domain.User, error)
}

func (s *stubUserService) List(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	return s.listFn(ctx, filter)
}

func (s *stubUserService) ChangeRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	return s.changeRoleFn(ctx, id, role)
}

// newContext builds an echo context with the validator installed and, when
// claim is non-nil, a session already attached.
func newContext(method, target, body string, claim *domain.SessionClaim) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claim != nil {
		middleware.SetSession(c, *claim)
	}
	return c, rec
}

var (
	teacherClaim = domain.SessionClaim{ID: "t1", Email: "tia@school.io", Name: "Tia", Role: domain.RoleTeacher}
	adminClaim   = domain.SessionClaim{ID: "a1", Email: "root@school.io", Name: "Root", Role: domain.RoleAdmin}
)

var monday9 = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC)
