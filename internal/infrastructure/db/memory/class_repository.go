package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

type ClassRepository struct {
	db *DB
}

var _ ports.ClassRepository = (*ClassRepository)(nil)

func NewClassRepository(db *DB) *ClassRepository {
	return &ClassRepository{db: db}
}

func (r *ClassRepository) Create(_ context.Context, class *domain.Class) (*domain.Class, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rec := &classRecord{class: *class, seq: r.db.next()}
	rec.class.ID = uuid.NewString()
	r.db.classes[rec.class.ID] = rec

	out := rec.class
	return &out, nil
}

func (r *ClassRepository) FindByID(_ context.Context, id string) (*domain.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rec, ok := r.db.classes[id]
	if !ok {
		return nil, domain.ErrClassNotFound
	}
	out := rec.class
	return &out, nil
}

func (r *ClassRepository) List(_ context.Context, filter ports.ListClassesFilter) ([]*domain.Class, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	recs := make([]*classRecord, 0, len(r.db.classes))
	for _, rec := range r.db.classes {
		if filter.TeacherID == "" || rec.class.TeacherID == filter.TeacherID {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].seq > recs[j].seq })

	out := make([]*domain.Class, 0, len(recs))
	for _, rec := range recs {
		c := rec.class
		out = append(out, &c)
	}
	return out, nil
}

func (r *ClassRepository) Update(_ context.Context, id string, upd domain.ClassUpdate) (*domain.Class, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	rec, ok := r.db.classes[id]
	if !ok {
		return nil, domain.ErrClassNotFound
	}
	upd.Apply(&rec.class)
	rec.class.UpdatedAt = time.Now().UTC()

	out := rec.class
	return &out, nil
}

func (r *ClassRepository) Delete(_ context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.classes[id]; !ok {
		return domain.ErrClassNotFound
	}
	delete(r.db.classes, id)
	return nil
}
