package ports

import (
	"context"

	"github.com/classroom/scheduler/internal/core/domain"
)

// RegisterInput is a validated sign-up request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// LoginResult is what a successful login hands back to the transport layer.
type LoginResult struct {
	Token string
	Claim domain.SessionClaim
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	OAuthLogin(ctx context.Context, profile domain.ExternalProfile) (*LoginResult, error)
	Logout(ctx context.Context, claim domain.SessionClaim) error
}

// Authenticator verifies credentials. ok is false when the pair does not
// identify a user; err is reserved for unexpected store failures.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (identity domain.Identity, ok bool, err error)
}
