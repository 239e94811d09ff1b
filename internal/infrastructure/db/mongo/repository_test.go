package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

func toBsonD(t *testing.T, v any) bson.D {
	t.Helper()
	raw, err := bson.Marshal(v)
	require.NoError(t, err)
	var d bson.D
	require.NoError(t, bson.Unmarshal(raw, &d))
	return d
}

func sampleUser(role string) mongoUser {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return mongoUser{
		ID:           primitive.NewObjectID(),
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "test.users"

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewUserRepository(mt.DB)

		u, err := repo.Create(context.Background(), &domain.User{Name: "Alice", Email: "alice@example.com", Role: domain.RoleTeacher})
		require.NoError(mt, err)
		assert.Len(mt, u.ID, 24)
		assert.Equal(mt, domain.RoleTeacher, u.Role)
	})

	mt.Run("create duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: test.users index: email_1",
		}))
		repo := NewUserRepository(mt.DB)

		_, err := repo.Create(context.Background(), &domain.User{Email: "alice@example.com", Role: domain.RoleStudent})
		assert.ErrorIs(mt, err, domain.ErrUserExists)
	})

	mt.Run("find by email", func(mt *mtest.T) {
		doc := sampleUser("STUDENT")
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, toBsonD(mt.T, doc)))
		repo := NewUserRepository(mt.DB)

		u, err := repo.FindByEmail(context.Background(), "alice@example.com")
		require.NoError(mt, err)
		assert.Equal(mt, doc.ID.Hex(), u.ID)
		assert.Equal(mt, "hash", u.PasswordHash)
		assert.Equal(mt, domain.RoleStudent, u.Role)
	})

	mt.Run("find by email not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))
		repo := NewUserRepository(mt.DB)

		_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("find by malformed id", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)

		_, err := repo.FindByID(context.Background(), domain.DemoUserID)
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("upsert oauth keeps existing role", func(mt *mtest.T) {
		existing := sampleUser("TEACHER")
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toBsonD(mt.T, existing)}))
		repo := NewUserRepository(mt.DB)

		u, err := repo.UpsertOAuthUser(context.Background(), &domain.User{Email: "alice@example.com", Name: "Alice"})
		require.NoError(mt, err)
		assert.Equal(mt, existing.ID.Hex(), u.ID)
		assert.Equal(mt, domain.RoleTeacher, u.Role)
	})

	mt.Run("update role", func(mt *mtest.T) {
		doc := sampleUser("ADMIN")
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: toBsonD(mt.T, doc)}))
		repo := NewUserRepository(mt.DB)

		u, err := repo.UpdateRole(context.Background(), doc.ID.Hex(), domain.RoleAdmin)
		require.NoError(mt, err)
		assert.Equal(mt, domain.RoleAdmin, u.Role)
	})

	mt.Run("update profile missing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))
		repo := NewUserRepository(mt.DB)

		name := "New"
		_, err := repo.UpdateProfile(context.Background(), primitive.NewObjectID().Hex(), domain.ProfileUpdate{Name: &name})
		assert.ErrorIs(mt, err, domain.ErrUserNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, toBsonD(mt.T, sampleUser("TEACHER")))
		killCursors := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, killCursors)
		repo := NewUserRepository(mt.DB)

		users, err := repo.List(context.Background(), ports.UserFilter{Role: domain.RoleTeacher})
		require.NoError(mt, err)
		assert.Len(mt, users, 1)
	})
}

func TestClassRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ns := "test.classes"
	start := time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)

	sample := func(teacherID string) mongoClass {
		return mongoClass{
			ID:        primitive.NewObjectID(),
			Name:      "Algebra",
			DayOfWeek: 1,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			TeacherID: teacherID,
			CreatedAt: start,
			UpdatedAt: start,
		}
	}

	mt.Run("create", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := NewClassRepository(mt.DB)

		c, err := repo.Create(context.Background(), &domain.Class{Name: "Algebra", DayOfWeek: 1, StartTime: start, EndTime: start.Add(time.Hour), TeacherID: "tA"})
		require.NoError(mt, err)
		assert.NotEmpty(mt, c.ID)
		assert.Equal(mt, "tA", c.TeacherID)
	})

	mt.Run("find by id", func(mt *mtest.T) {
		doc := sample("tA")
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, toBsonD(mt.T, doc)))
		repo := NewClassRepository(mt.DB)

		c, err := repo.FindByID(context.Background(), doc.ID.Hex())
		require.NoError(mt, err)
		assert.Equal(mt, doc.ID.Hex(), c.ID)
		assert.Equal(mt, start, c.StartTime)
	})

	mt.Run("find by malformed id", func(mt *mtest.T) {
		repo := NewClassRepository(mt.DB)

		_, err := repo.FindByID(context.Background(), "123")
		assert.ErrorIs(mt, err, domain.ErrClassNotFound)
	})

	mt.Run("list scoped", func(mt *mtest.T) {
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, toBsonD(mt.T, sample("tA")), toBsonD(mt.T, sample("tA")))
		killCursors := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, killCursors)
		repo := NewClassRepository(mt.DB)

		classes, err := repo.List(context.Background(), ports.ListClassesFilter{TeacherID: "tA"})
		require.NoError(mt, err)
		assert.Len(mt, classes, 2)
	})

	mt.Run("delete", func(mt *mtest.T) {
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}),
			mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}),
		)
		repo := NewClassRepository(mt.DB)
		id := primitive.NewObjectID().Hex()

		require.NoError(mt, repo.Delete(context.Background(), id))
		assert.ErrorIs(mt, repo.Delete(context.Background(), id), domain.ErrClassNotFound)
	})
}
