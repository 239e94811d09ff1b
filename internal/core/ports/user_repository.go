package ports

import (
	"context"

	"github.com/classroom/scheduler/internal/core/domain"
)

// UserFilter narrows an admin user listing. A zero Role lists everyone.
type UserFilter struct {
	Role domain.Role
}

// UserRepository is the credential store.
type UserRepository interface {
	// Create inserts a user. A duplicate email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpsertOAuthUser inserts a password-less user on first sign-in and
	// returns the stored record unchanged on later ones.
	UpsertOAuthUser(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
}
