package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

// RefreshStrategy re-derives a session claim. login is non-nil only on the
// request that performs the login.
type RefreshStrategy interface {
	Name() string
	Refresh(ctx context.Context, existing domain.SessionClaim, login *domain.Identity) (domain.SessionClaim, error)
}

// NewRefreshStrategy picks the strategy for this process. It is called once
// at startup.
func NewRefreshStrategy(demo domain.DemoConfig, users ports.UserRepository, storeConfigured bool) RefreshStrategy {
	var s RefreshStrategy = storelessStrategy{}
	if storeConfigured {
		s = storeBackedStrategy{users: users}
	}
	if demo.Enabled {
		s = demoStrategy{demo: demo, next: s}
	}
	return s
}

// demoStrategy pins the demo session to configuration, whatever the token or
// the store say.
type demoStrategy struct {
	demo domain.DemoConfig
	next RefreshStrategy
}

func (s demoStrategy) Name() string { return "demo" }

func (s demoStrategy) Refresh(ctx context.Context, existing domain.SessionClaim, login *domain.Identity) (domain.SessionClaim, error) {
	if existing.Email == s.demo.Email {
		return s.demo.Claim(), nil
	}
	return s.next.Refresh(ctx, existing, login)
}

// storelessStrategy trusts the claim as set at login time.
type storelessStrategy struct{}

func (storelessStrategy) Name() string { return "storeless" }

func (storelessStrategy) Refresh(_ context.Context, existing domain.SessionClaim, login *domain.Identity) (domain.SessionClaim, error) {
	if login == nil {
		return existing, nil
	}
	existing.ID = login.ID
	existing.Name = login.Name
	existing.Email = login.Email
	existing.Role = login.Role
	if !existing.Role.Valid() {
		existing.Role = domain.RoleStudent
	}
	return existing, nil
}

// storeBackedStrategy re-reads the user on every refresh so that role and
// name changes apply on the next request.
type storeBackedStrategy struct {
	users ports.UserRepository
}

func (storeBackedStrategy) Name() string { return "store" }

func (s storeBackedStrategy) Refresh(ctx context.Context, existing domain.SessionClaim, login *domain.Identity) (domain.SessionClaim, error) {
	user, err := s.users.FindByEmail(ctx, existing.Email)
	if errors.Is(err, domain.ErrUserNotFound) {
		if login != nil {
			existing.ID = login.ID
		}
		return existing, nil
	}
	if err != nil {
		return existing, fmt.Errorf("refresh session: %w", err)
	}

	existing.ID = user.ID
	existing.Name = user.Name
	existing.Email = user.Email
	existing.Role = user.Role
	return existing, nil
}
