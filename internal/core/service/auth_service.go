package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/classroom/scheduler/internal/api/metrics"
	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

// AuthService implements registration, login and logout.
type AuthService struct {
	users         ports.UserRepository
	authenticator ports.Authenticator
	sessions      ports.SessionService
	demo          domain.DemoConfig
	bcryptCost    int
	logger        zerolog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	users ports.UserRepository,
	authenticator ports.Authenticator,
	sessions ports.SessionService,
	demo domain.DemoConfig,
	bcryptCost int,
	logger zerolog.Logger,
) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		users:         users,
		authenticator: authenticator,
		sessions:      sessions,
		demo:          demo,
		bcryptCost:    bcryptCost,
		logger:        logger,
	}
}

// Register creates a password account. The returned user never carries the
// hash in its JSON form. The demo email counts as taken while demo login is on.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrInvalidInput)
	}
	if !in.Role.SelfRegistrable() {
		return nil, fmt.Errorf("%w: role must be STUDENT or TEACHER", domain.ErrInvalidInput)
	}

	if s.demo.Reserved(in.Email) {
		return nil, domain.ErrUserExists
	}

	// The unique email index still decides concurrent registrations.
	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues(created.Role.String()).Inc()
	s.logger.Info().Str("user_id", created.ID).Str("role", created.Role.String()).Msg("user registered")
	return created, nil
}

// Login authenticates the pair and issues a session token. Any credential
// failure is reported as domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	identity, ok, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	if !ok {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, claim, err := s.sessions.Issue(ctx, identity)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	result := "success"
	if identity.ID == domain.DemoUserID {
		result = "demo"
	}
	metrics.LoginAttemptsTotal.WithLabelValues(result).Inc()
	s.logger.Info().Str("user_id", claim.ID).Str("role", claim.Role.String()).Msg("user logged in")

	return &ports.LoginResult{Token: token, Claim: claim}, nil
}

// OAuthLogin signs in a user vouched for by an external provider, creating a
// password-less STUDENT account on first sign-in.
func (s *AuthService) OAuthLogin(ctx context.Context, profile domain.ExternalProfile) (*ports.LoginResult, error) {
	if profile.Email == "" || s.demo.Reserved(profile.Email) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now().UTC()
	user, err := s.users.UpsertOAuthUser(ctx, &domain.User{
		Name:      profile.Name,
		Email:     profile.Email,
		Image:     profile.Image,
		Role:      domain.RoleStudent,
		CreatedAt: now,
		UpdatedAt: now,
	})

	var identity domain.Identity
	switch {
	case err == nil:
		identity = user.Identity()
	case errors.Is(err, domain.ErrStoreNotConfigured):
		identity = domain.Identity{
			ID:    profile.Subject,
			Email: profile.Email,
			Name:  profile.Name,
			Role:  domain.RoleStudent,
		}
	default:
		return nil, fmt.Errorf("oauth sign-in: %w", err)
	}

	token, claim, err := s.sessions.Issue(ctx, identity)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", claim.ID).Str("provider", profile.Provider).Msg("user signed in with oauth")
	return &ports.LoginResult{Token: token, Claim: claim}, nil
}

// Logout revokes the session token.
func (s *AuthService) Logout(ctx context.Context, claim domain.SessionClaim) error {
	return s.sessions.Revoke(ctx, claim)
}
