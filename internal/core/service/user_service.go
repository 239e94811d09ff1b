package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

// UserService backs the admin user management endpoints. Callers are
// expected to have passed the ADMIN role check already.
type UserService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

var _ ports.UserService = (*UserService)(nil)

func NewUserService(users ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) List(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	return s.users.List(ctx, filter)
}

// ChangeRole updates a user's role. Active sessions of that user pick the
// new role up on their next request.
func (s *UserService) ChangeRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, domain.ErrInvalidRole
	}
	user, err := s.users.UpdateRole(ctx, id, role)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", id).Str("role", role.String()).Msg("user role changed")
	return user, nil
}
