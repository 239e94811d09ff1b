package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

type ProfileService struct {
	users  ports.UserRepository
	logger zerolog.Logger
}

var _ ports.ProfileService = (*ProfileService)(nil)

func NewProfileService(users ports.UserRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{users: users, logger: logger}
}

// Get returns the stored profile. Sessions with no stored record (storeless
// mode, the demo user) get a profile built from the claim.
func (s *ProfileService) Get(ctx context.Context, claim *domain.SessionClaim) (*domain.User, error) {
	if claim == nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByID(ctx, claim.ID)
	if errors.Is(err, domain.ErrStoreNotConfigured) || errors.Is(err, domain.ErrUserNotFound) {
		return &domain.User{
			ID:    claim.ID,
			Name:  claim.Name,
			Email: claim.Email,
			Role:  claim.Role,
		}, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Update edits the stored profile. A session whose profile Get builds from the
// claim has nothing to edit and gets ErrInvalidInput rather than a not-found.
func (s *ProfileService) Update(ctx context.Context, claim *domain.SessionClaim, upd domain.ProfileUpdate) (*domain.User, error) {
	if claim == nil {
		return nil, domain.ErrUnauthorized
	}
	if upd.Empty() {
		return s.Get(ctx, claim)
	}

	user, err := s.users.UpdateProfile(ctx, claim.ID, upd)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: this account has no stored profile to edit", domain.ErrInvalidInput)
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("user_id", claim.ID).Msg("profile updated")
	return user, nil
}
