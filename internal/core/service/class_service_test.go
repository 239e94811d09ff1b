package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

var (
	monday9  = time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)
	monday10 = time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)

	teacherA = &domain.SessionClaim{ID: "tA", Email: "a@example.com", Role: domain.RoleTeacher}
	teacherB = &domain.SessionClaim{ID: "tB", Email: "b@example.com", Role: domain.RoleTeacher}
	admin    = &domain.SessionClaim{ID: "admin", Email: "root@example.com", Role: domain.RoleAdmin}
)

func validClassInput() ports.CreateClassInput {
	return ports.CreateClassInput{Name: "Algebra", DayOfWeek: 1, StartTime: monday9, EndTime: monday10}
}

func TestClassService_Create(t *testing.T) {
	repo := newStubClassRepo()
	svc := NewClassService(repo, zerolog.Nop())

	class, err := svc.Create(context.Background(), teacherA, validClassInput())
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if class.TeacherID != teacherA.ID {
		t.Fatalf("expected owner %q, got %q", teacherA.ID, class.TeacherID)
	}
	if class.ID == "" {
		t.Fatalf("expected an assigned id")
	}
}

func TestClassService_Create_Validation(t *testing.T) {
	repo := newStubClassRepo()
	svc := NewClassService(repo, zerolog.Nop())

	cases := map[string]func(*ports.CreateClassInput){
		"empty name":    func(in *ports.CreateClassInput) { in.Name = "" },
		"day too large": func(in *ports.CreateClassInput) { in.DayOfWeek = 7 },
		"negative day":  func(in *ports.CreateClassInput) { in.DayOfWeek = -1 },
		"end before":    func(in *ports.CreateClassInput) { in.EndTime = monday9.Add(-time.Minute) },
		"zero length":   func(in *ports.CreateClassInput) { in.EndTime = monday9 },
		"missing start": func(in *ports.CreateClassInput) { in.StartTime = time.Time{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validClassInput()
			mutate(&in)
			if _, err := svc.Create(context.Background(), teacherA, in); !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
	if repo.writes != 0 {
		t.Fatalf("expected no writes, got %d", repo.writes)
	}
}

func TestClassService_Create_RequiresSession(t *testing.T) {
	svc := NewClassService(newStubClassRepo(), zerolog.Nop())
	if _, err := svc.Create(context.Background(), nil, validClassInput()); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClassService_List_ScopedByRole(t *testing.T) {
	repo := newStubClassRepo()
	repo.seed(domain.Class{ID: "c1", TeacherID: "tA"})
	repo.seed(domain.Class{ID: "c2", TeacherID: "tB"})
	repo.seed(domain.Class{ID: "c3", TeacherID: "tA"})
	svc := NewClassService(repo, zerolog.Nop())
	ctx := context.Background()

	got, err := svc.List(ctx, teacherA)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if repo.lastFilter.TeacherID != "tA" {
		t.Fatalf("expected owner filter in query, got %+v", repo.lastFilter)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 classes for tA, got %d", len(got))
	}
	for _, c := range got {
		if c.TeacherID != "tA" {
			t.Fatalf("leaked class %s of %s", c.ID, c.TeacherID)
		}
	}

	all, err := svc.List(ctx, admin)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 classes for admin, got %d", len(all))
	}

	if _, err := svc.List(ctx, nil); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClassService_Update(t *testing.T) {
	newName := "Geometry"

	t.Run("owner", func(t *testing.T) {
		repo := newStubClassRepo()
		repo.seed(domain.Class{ID: "c1", Name: "Algebra", TeacherID: "tA", DayOfWeek: 1, StartTime: monday9, EndTime: monday10})
		svc := NewClassService(repo, zerolog.Nop())

		got, err := svc.Update(context.Background(), teacherA, "c1", domain.ClassUpdate{Name: &newName})
		if err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
		if got.Name != newName || got.TeacherID != "tA" {
			t.Fatalf("unexpected class: %+v", got)
		}
	})

	t.Run("admin on foreign class", func(t *testing.T) {
		repo := newStubClassRepo()
		repo.seed(domain.Class{ID: "c1", TeacherID: "tA", DayOfWeek: 1, StartTime: monday9, EndTime: monday10})
		svc := NewClassService(repo, zerolog.Nop())

		if _, err := svc.Update(context.Background(), admin, "c1", domain.ClassUpdate{Name: &newName}); err != nil {
			t.Fatalf("Update returned error: %v", err)
		}
	})

	t.Run("other teacher is forbidden and nothing is written", func(t *testing.T) {
		repo := newStubClassRepo()
		repo.seed(domain.Class{ID: "c1", Name: "Algebra", TeacherID: "tA", DayOfWeek: 1, StartTime: monday9, EndTime: monday10})
		svc := NewClassService(repo, zerolog.Nop())

		if _, err := svc.Update(context.Background(), teacherB, "c1", domain.ClassUpdate{Name: &newName}); !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("expected ErrForbidden, got %v", err)
		}
		if repo.writes != 0 || repo.classes["c1"].Name != "Algebra" {
			t.Fatalf("class was modified")
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := NewClassService(newStubClassRepo(), zerolog.Nop())
		if _, err := svc.Update(context.Background(), admin, "missing", domain.ClassUpdate{Name: &newName}); !errors.Is(err, domain.ErrClassNotFound) {
			t.Fatalf("expected ErrClassNotFound, got %v", err)
		}
	})

	t.Run("merged times must stay ordered", func(t *testing.T) {
		repo := newStubClassRepo()
		repo.seed(domain.Class{ID: "c1", TeacherID: "tA", DayOfWeek: 1, StartTime: monday9, EndTime: monday10})
		svc := NewClassService(repo, zerolog.Nop())

		early := monday9.Add(-time.Hour)
		if _, err := svc.Update(context.Background(), teacherA, "c1", domain.ClassUpdate{EndTime: &early}); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestClassService_Delete(t *testing.T) {
	repo := newStubClassRepo()
	repo.seed(domain.Class{ID: "c1", TeacherID: "tA"})
	repo.seed(domain.Class{ID: "c2", TeacherID: "tA"})
	svc := NewClassService(repo, zerolog.Nop())
	ctx := context.Background()

	if err := svc.Delete(ctx, teacherB, "c1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, ok := repo.classes["c1"]; !ok {
		t.Fatalf("class deleted by non-owner")
	}
	if err := svc.Delete(ctx, teacherA, "c1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, admin, "c2"); err != nil {
		t.Fatalf("admin Delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, teacherA, "c1"); !errors.Is(err, domain.ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, nil, "c1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestClassService_Get(t *testing.T) {
	repo := newStubClassRepo()
	repo.seed(domain.Class{ID: "c1", TeacherID: "tA"})
	svc := NewClassService(repo, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Get(ctx, teacherA, "c1"); err != nil {
		t.Fatalf("owner Get returned error: %v", err)
	}
	if _, err := svc.Get(ctx, teacherB, "c1"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Get(ctx, admin, "nope"); !errors.Is(err, domain.ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}
