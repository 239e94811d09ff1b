package ports

import (
	"context"

	"github.com/classroom/scheduler/internal/core/domain"
)

type ProfileService interface {
	Get(ctx context.Context, claim *domain.SessionClaim) (*domain.User, error)
	Update(ctx context.Context, claim *domain.SessionClaim, upd domain.ProfileUpdate) (*domain.User, error)
}

// UserService holds the admin-only user management operations.
type UserService interface {
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	ChangeRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
}
