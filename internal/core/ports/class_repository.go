package ports

import (
	"context"

	"github.com/classroom/scheduler/internal/core/domain"
)

// ListClassesFilter carries the ownership scope for a listing.
// TeacherID is always set by the service layer from the session.
type ListClassesFilter struct {
	TeacherID string // empty = no filter (admin); non-empty = scoped to owner
}

// ClassRepository defines persistence operations for classes.
type ClassRepository interface {
	Create(ctx context.Context, class *domain.Class) (*domain.Class, error)
	// FindByID returns domain.ErrClassNotFound for unknown or malformed ids.
	FindByID(ctx context.Context, id string) (*domain.Class, error)
	// List returns classes newest first.
	List(ctx context.Context, filter ListClassesFilter) ([]*domain.Class, error)
	Update(ctx context.Context, id string, upd domain.ClassUpdate) (*domain.Class, error)
	Delete(ctx context.Context, id string) error
}
