package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

const classColumns = `id, name, description, day_of_week, start_time, end_time, teacher_id, created_at, updated_at`

type ClassRepository struct {
	db DBTX
}

var _ ports.ClassRepository = (*ClassRepository)(nil)

func NewClassRepository(db DBTX) *ClassRepository {
	return &ClassRepository{db: db}
}

func scanClass(row rowScanner) (*domain.Class, error) {
	var c domain.Class
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.DayOfWeek, &c.StartTime, &c.EndTime,
		&c.TeacherID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *ClassRepository) Create(ctx context.Context, class *domain.Class) (*domain.Class, error) {
	const query = `INSERT INTO classes (id, name, description, day_of_week, start_time, end_time, teacher_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + classColumns

	c, err := scanClass(r.db.QueryRowContext(ctx, query,
		uuid.NewString(), class.Name, class.Description, class.DayOfWeek,
		class.StartTime, class.EndTime, class.TeacherID, class.CreatedAt, class.UpdatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("insert class: %w", translate(err, domain.ErrClassNotFound))
	}
	return c, nil
}

func (r *ClassRepository) FindByID(ctx context.Context, id string) (*domain.Class, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrClassNotFound
	}
	const query = `SELECT ` + classColumns + ` FROM classes WHERE id = $1`

	c, err := scanClass(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, translate(err, domain.ErrClassNotFound)
	}
	return c, nil
}

// List applies the owner filter in the query itself.
func (r *ClassRepository) List(ctx context.Context, filter ports.ListClassesFilter) ([]*domain.Class, error) {
	query := `SELECT ` + classColumns + ` FROM classes`
	var args []any
	if filter.TeacherID != "" {
		query += ` WHERE teacher_id = $1`
		args = append(args, filter.TeacherID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer rows.Close()

	classes := []*domain.Class{}
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			return nil, fmt.Errorf("scan class: %w", err)
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	return classes, nil
}

func (r *ClassRepository) Update(ctx context.Context, id string, upd domain.ClassUpdate) (*domain.Class, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrClassNotFound
	}
	const query = `UPDATE classes SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			day_of_week = COALESCE($4, day_of_week),
			start_time = COALESCE($5, start_time),
			end_time = COALESCE($6, end_time),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + classColumns

	c, err := scanClass(r.db.QueryRowContext(ctx, query,
		id, upd.Name, upd.Description, upd.DayOfWeek, upd.StartTime, upd.EndTime,
	))
	if err != nil {
		return nil, translate(err, domain.ErrClassNotFound)
	}
	return c, nil
}

func (r *ClassRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrClassNotFound
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	if n == 0 {
		return domain.ErrClassNotFound
	}
	return nil
}
