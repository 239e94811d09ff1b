package ports

import (
	"context"
	"time"

	"github.com/classroom/scheduler/internal/core/domain"
)

// CreateClassInput carries a validated class creation request.
type CreateClassInput struct {
	Name        string
	Description string
	DayOfWeek   int
	StartTime   time.Time
	EndTime     time.Time
}

// ClassService defines use-case operations for classes. Every method takes
// the caller's session claim; a nil claim is rejected as unauthenticated.
type ClassService interface {
	List(ctx context.Context, claim *domain.SessionClaim) ([]*domain.Class, error)
	Get(ctx context.Context, claim *domain.SessionClaim, id string) (*domain.Class, error)
	Create(ctx context.Context, claim *domain.SessionClaim, in CreateClassInput) (*domain.Class, error)
	Update(ctx context.Context, claim *domain.SessionClaim, id string, upd domain.ClassUpdate) (*domain.Class, error)
	Delete(ctx context.Context, claim *domain.SessionClaim, id string) error
}
