package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

const userColumns = `id, name, email, password_hash, role, image, school, profile_class, bio, created_at, updated_at`

type UserRepository struct {
	db DBTX
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role,
		&u.Image, &u.School, &u.ProfileClass, &u.Bio, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `INSERT INTO users (id, name, email, password_hash, role, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), user.Name, user.Email, user.PasswordHash, user.Role.String(),
		user.Image, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", translate(err, domain.ErrUserNotFound))
	}
	return created, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, translate(err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(err, domain.ErrUserNotFound)
	}
	return u, nil
}

// UpsertOAuthUser relies on the no-op DO UPDATE so that RETURNING yields the
// existing row on conflict.
func (r *UserRepository) UpsertOAuthUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `INSERT INTO users (id, name, email, role, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING ` + userColumns

	role := user.Role
	if !role.Valid() {
		role = domain.RoleStudent
	}
	u, err := scanUser(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), user.Name, user.Email, role.String(), user.Image, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert oauth user: %w", translate(err, domain.ErrUserNotFound))
	}
	return u, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id string, upd domain.ProfileUpdate) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	const query = `UPDATE users SET
			name = COALESCE($2, name),
			image = COALESCE($3, image),
			school = COALESCE($4, school),
			profile_class = COALESCE($5, profile_class),
			bio = COALESCE($6, bio),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id, upd.Name, upd.Image, upd.School, upd.ProfileClass, upd.Bio))
	if err != nil {
		return nil, translate(err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrUserNotFound
	}
	const query = `UPDATE users SET role = $2, updated_at = NOW() WHERE id = $1 RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id, role.String()))
	if err != nil {
		return nil, translate(err, domain.ErrUserNotFound)
	}
	return u, nil
}

func (r *UserRepository) List(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`
	var args []any
	if filter.Role != "" {
		query += ` WHERE role = $1`
		args = append(args, filter.Role.String())
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
