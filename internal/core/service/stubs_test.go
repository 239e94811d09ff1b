package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

type stubUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int

	// findErr, when set, is returned by every lookup.
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) put(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		r.nextID++
		u.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	r.users[u.ID] = cloneUser(u)
	return cloneUser(u)
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	for _, u := range r.users {
		if u.Email == user.Email {
			r.mu.Unlock()
			return nil, domain.ErrUserExists
		}
	}
	r.mu.Unlock()
	return r.put(cloneUser(user)), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpsertOAuthUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if existing, err := r.FindByEmail(ctx, user.Email); err == nil {
		return existing, nil
	}
	return r.put(cloneUser(user)), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.School != nil {
		u.School = *upd.School
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Role = role
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.User{}
	for _, u := range r.users {
		if filter.Role == "" || u.Role == filter.Role {
			out = append(out, cloneUser(u))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type stubClassRepo struct {
	classes map[string]*domain.Class
	nextID  int

	lastFilter ports.ListClassesFilter
	writes     int
}

func newStubClassRepo() *stubClassRepo {
	return &stubClassRepo{classes: make(map[string]*domain.Class)}
}

func (r *stubClassRepo) seed(c domain.Class) *domain.Class {
	r.classes[c.ID] = &c
	return &c
}

func (r *stubClassRepo) Create(_ context.Context, class *domain.Class) (*domain.Class, error) {
	r.writes++
	r.nextID++
	c := *class
	c.ID = fmt.Sprintf("class-%d", r.nextID)
	r.classes[c.ID] = &c
	out := c
	return &out, nil
}

func (r *stubClassRepo) FindByID(_ context.Context, id string) (*domain.Class, error) {
	c, ok := r.classes[id]
	if !ok {
		return nil, domain.ErrClassNotFound
	}
	out := *c
	return &out, nil
}

func (r *stubClassRepo) List(_ context.Context, filter ports.ListClassesFilter) ([]*domain.Class, error) {
	r.lastFilter = filter
	out := []*domain.Class{}
	for _, c := range r.classes {
		if filter.TeacherID == "" || c.TeacherID == filter.TeacherID {
			cc := *c
			out = append(out, &cc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubClassRepo) Update(_ context.Context, id string, upd domain.ClassUpdate) (*domain.Class, error) {
	r.writes++
	c, ok := r.classes[id]
	if !ok {
		return nil, domain.ErrClassNotFound
	}
	upd.Apply(c)
	out := *c
	return &out, nil
}

func (r *stubClassRepo) Delete(_ context.Context, id string) error {
	r.writes++
	if _, ok := r.classes[id]; !ok {
		return domain.ErrClassNotFound
	}
	delete(r.classes, id)
	return nil
}

type memRevoker struct {
	revoked map[string]time.Duration
	err     error
}

func newMemRevoker() *memRevoker {
	return &memRevoker{revoked: make(map[string]time.Duration)}
}

func (m *memRevoker) Revoke(_ context.Context, id string, ttl time.Duration) error {
	m.revoked[id] = ttl
	return nil
}

func (m *memRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[id]
	return ok, nil
}
