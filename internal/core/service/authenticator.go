package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

// Authenticator verifies an email/password pair against the demo identity
// and the credential store, in that order.
type Authenticator struct {
	users ports.UserRepository
	demo  domain.DemoConfig
}

var _ ports.Authenticator = (*Authenticator)(nil)

func NewAuthenticator(users ports.UserRepository, demo domain.DemoConfig) *Authenticator {
	return &Authenticator{users: users, demo: demo}
}

// Authenticate returns ok=false for an unknown email, an account without a
// local password, or a password mismatch. It never says which. The demo email
// only ever authenticates with the demo password.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (domain.Identity, bool, error) {
	if email == "" || password == "" {
		return domain.Identity{}, false, nil
	}

	if a.demo.Matches(email, password) {
		return a.demo.Identity(), true, nil
	}
	if a.demo.Reserved(email) {
		return domain.Identity{}, false, nil
	}

	user, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Identity{}, false, nil
		}
		return domain.Identity{}, false, fmt.Errorf("authenticate: %w", err)
	}

	if !user.HasPassword() {
		return domain.Identity{}, false, nil
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.Identity{}, false, nil
	}

	return user.Identity(), true, nil
}
