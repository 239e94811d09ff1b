package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/classroom/scheduler/internal/api/metrics"
	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

type ClassService struct {
	repo   ports.ClassRepository
	logger zerolog.Logger
}

var _ ports.ClassService = (*ClassService)(nil)

func NewClassService(repo ports.ClassRepository, logger zerolog.Logger) *ClassService {
	return &ClassService{repo: repo, logger: logger}
}

// List returns every class for admins and only owned classes otherwise. The
// scope is part of the query.
func (s *ClassService) List(ctx context.Context, claim *domain.SessionClaim) ([]*domain.Class, error) {
	ownerID, err := OwnerScope(claim)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, ports.ListClassesFilter{TeacherID: ownerID})
}

// Get returns a single class the session is allowed to see.
func (s *ClassService) Get(ctx context.Context, claim *domain.SessionClaim, id string) (*domain.Class, error) {
	if claim == nil {
		return nil, domain.ErrUnauthorized
	}
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(claim, domain.ActionRead, class.OwnerID()); err != nil {
		return nil, err
	}
	return class, nil
}

// Create stores a class owned by the session user.
func (s *ClassService) Create(ctx context.Context, claim *domain.SessionClaim, in ports.CreateClassInput) (*domain.Class, error) {
	if claim == nil || claim.ID == "" {
		return nil, domain.ErrUnauthorized
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if err := validateSchedule(in.DayOfWeek, in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Class{
		Name:        in.Name,
		Description: in.Description,
		DayOfWeek:   in.DayOfWeek,
		StartTime:   in.StartTime.UTC(),
		EndTime:     in.EndTime.UTC(),
		TeacherID:   claim.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create class")
		return nil, err
	}

	metrics.ClassMutationsTotal.WithLabelValues("create").Inc()
	s.logger.Info().Str("class_id", created.ID).Str("teacher_id", claim.ID).Msg("class created")
	return created, nil
}

// Update applies upd after the existence and ownership checks.
func (s *ClassService) Update(ctx context.Context, claim *domain.SessionClaim, id string, upd domain.ClassUpdate) (*domain.Class, error) {
	existing, err := s.mutable(ctx, claim, id, domain.ActionUpdate)
	if err != nil {
		return nil, err
	}

	merged := *existing
	upd.Apply(&merged)
	if err := validateSchedule(merged.DayOfWeek, merged.StartTime, merged.EndTime); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	metrics.ClassMutationsTotal.WithLabelValues("update").Inc()
	s.logger.Info().Str("class_id", id).Str("user_id", claim.ID).Msg("class updated")
	return updated, nil
}

// Delete removes a class after the existence and ownership checks.
func (s *ClassService) Delete(ctx context.Context, claim *domain.SessionClaim, id string) error {
	if _, err := s.mutable(ctx, claim, id, domain.ActionDelete); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	metrics.ClassMutationsTotal.WithLabelValues("delete").Inc()
	s.logger.Info().Str("class_id", id).Str("user_id", claim.ID).Msg("class deleted")
	return nil
}

// mutable runs the shared checks for writes: session, existence, guard.
func (s *ClassService) mutable(ctx context.Context, claim *domain.SessionClaim, id string, action domain.Action) (*domain.Class, error) {
	if claim == nil {
		return nil, domain.ErrUnauthorized
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(claim, action, existing.OwnerID()); err != nil {
		return nil, err
	}
	return existing, nil
}

func validateSchedule(day int, start, end time.Time) error {
	if day < 0 || day > 6 {
		return fmt.Errorf("%w: day_of_week must be between 0 and 6", domain.ErrInvalidInput)
	}
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: start_time and end_time are required", domain.ErrInvalidInput)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: end_time must be after start_time", domain.ErrInvalidInput)
	}
	return nil
}
