package store

import (
	"context"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

var errStoreNotConfigured = domain.ErrStoreNotConfigured

// Storeless returns the handle used when no database is configured. Reads
// report nothing found, writes fail with domain.ErrStoreNotConfigured.
func Storeless() *Store {
	return &Store{
		Backend: BackendNone,
		Users:   storelessUsers{},
		Classes: storelessClasses{},
	}
}

type storelessUsers struct{}

var _ ports.UserRepository = storelessUsers{}

func (storelessUsers) Create(context.Context, *domain.User) (*domain.User, error) {
	return nil, errStoreNotConfigured
}

func (storelessUsers) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (storelessUsers) FindByID(context.Context, string) (*domain.User, error) {
	return nil, errStoreNotConfigured
}

func (storelessUsers) UpsertOAuthUser(context.Context, *domain.User) (*domain.User, error) {
	return nil, errStoreNotConfigured
}

func (storelessUsers) UpdateProfile(context.Context, string, domain.ProfileUpdate) (*domain.User, error) {
	return nil, errStoreNotConfigured
}

func (storelessUsers) UpdateRole(context.Context, string, domain.Role) (*domain.User, error) {
	return nil, errStoreNotConfigured
}

func (storelessUsers) List(context.Context, ports.UserFilter) ([]*domain.User, error) {
	return nil, errStoreNotConfigured
}

type storelessClasses struct{}

var _ ports.ClassRepository = storelessClasses{}

func (storelessClasses) Create(context.Context, *domain.Class) (*domain.Class, error) {
	return nil, errStoreNotConfigured
}

func (storelessClasses) FindByID(context.Context, string) (*domain.Class, error) {
	return nil, errStoreNotConfigured
}

// List reports an empty schedule so read-only pages work without a store.
func (storelessClasses) List(context.Context, ports.ListClassesFilter) ([]*domain.Class, error) {
	return []*domain.Class{}, nil
}

func (storelessClasses) Update(context.Context, string, domain.ClassUpdate) (*domain.Class, error) {
	return nil, errStoreNotConfigured
}

func (storelessClasses) Delete(context.Context, string) error {
	return errStoreNotConfigured
}
