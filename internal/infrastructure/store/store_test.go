package store

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

func TestOpen_EmptyURLIsStoreless(t *testing.T) {
	s, err := Open(context.Background(), Config{}, zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, s.Configured())
	assert.Equal(t, BackendNone, s.Backend)
	assert.ErrorIs(t, s.Ping(context.Background()), domain.ErrStoreNotConfigured)
	assert.NoError(t, s.Close(context.Background()))
}

func TestOpen_Memory(t *testing.T) {
	s, err := Open(context.Background(), Config{URL: "memory://"}, zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, s.Configured())
	assert.Equal(t, BackendMemory, s.Backend)
	assert.NoError(t, s.Ping(context.Background()))

	ctx := context.Background()
	u, err := s.Users.Create(ctx, &domain.User{Email: "a@example.com", Role: domain.RoleStudent})
	require.NoError(t, err)
	got, err := s.Users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)
}

func TestOpen_UnknownScheme(t *testing.T) {
	_, err := Open(context.Background(), Config{URL: "mysql://root@localhost/app"}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"mysql"`)
}

func TestStoreless(t *testing.T) {
	s := Storeless()
	ctx := context.Background()

	_, err := s.Users.FindByEmail(ctx, "a@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = s.Users.Create(ctx, &domain.User{Email: "a@example.com"})
	assert.ErrorIs(t, err, domain.ErrStoreNotConfigured)

	_, err = s.Users.UpdateProfile(ctx, "id", domain.ProfileUpdate{})
	assert.ErrorIs(t, err, domain.ErrStoreNotConfigured)

	classes, err := s.Classes.List(ctx, ports.ListClassesFilter{TeacherID: "t"})
	require.NoError(t, err)
	assert.NotNil(t, classes)
	assert.Empty(t, classes)

	_, err = s.Classes.Create(ctx, &domain.Class{})
	assert.ErrorIs(t, err, domain.ErrStoreNotConfigured)
	_, err = s.Classes.FindByID(ctx, "c1")
	assert.ErrorIs(t, err, domain.ErrStoreNotConfigured)
	assert.ErrorIs(t, s.Classes.Delete(ctx, "c1"), domain.ErrStoreNotConfigured)
}
