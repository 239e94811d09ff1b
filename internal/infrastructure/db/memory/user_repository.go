package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

type UserRepository struct {
	db *DB
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return r.insertLocked(user)
}

func (r *UserRepository) insertLocked(user *domain.User) (*domain.User, error) {
	if _, taken := r.db.emails[user.Email]; taken {
		return nil, domain.ErrUserExists
	}
	rec := &userRecord{user: *user, seq: r.db.next()}
	rec.user.ID = uuid.NewString()
	r.db.users[rec.user.ID] = rec
	r.db.emails[rec.user.Email] = rec.user.ID

	out := rec.user
	return &out, nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	id, ok := r.db.emails[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := r.db.users[id].user
	return &out, nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rec, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := rec.user
	return &out, nil
}

func (r *UserRepository) UpsertOAuthUser(_ context.Context, user *domain.User) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if id, ok := r.db.emails[user.Email]; ok {
		out := r.db.users[id].user
		return &out, nil
	}
	u := *user
	u.PasswordHash = ""
	if !u.Role.Valid() {
		u.Role = domain.RoleStudent
	}
	return r.insertLocked(&u)
}

func (r *UserRepository) UpdateProfile(_ context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	return r.update(id, func(u *domain.User) {
		if upd.Name != nil {
			u.Name = *upd.Name
		}
		if upd.Image != nil {
			u.Image = *upd.Image
		}
		if upd.School != nil {
			u.School = *upd.School
		}
		if upd.ProfileClass != nil {
			u.ProfileClass = *upd.ProfileClass
		}
		if upd.Bio != nil {
			u.Bio = *upd.Bio
		}
	})
}

func (r *UserRepository) UpdateRole(_ context.Context, id string, role domain.Role) (*domain.User, error) {
	return r.update(id, func(u *domain.User) { u.Role = role })
}

func (r *UserRepository) update(id string, fn func(*domain.User)) (*domain.User, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rec, ok := r.db.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	fn(&rec.user)
	rec.user.UpdatedAt = time.Now().UTC()

	out := rec.user
	return &out, nil
}

// List returns users newest first.
func (r *UserRepository) List(_ context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	recs := make([]*userRecord, 0, len(r.db.users))
	for _, rec := range r.db.users {
		if filter.Role == "" || rec.user.Role == filter.Role {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })

	out := make([]*domain.User, 0, len(recs))
	for _, rec := range recs {
		u := rec.user
		out = append(out, &u)
	}
	return out, nil
}
