package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/classroom/scheduler/internal/core/domain"
	"github.com/classroom/scheduler/internal/core/ports"
)

const collectionClasses = "classes"

type ClassRepository struct {
	col *mongo.Collection
}

var _ ports.ClassRepository = (*ClassRepository)(nil)

func NewClassRepository(db *mongo.Database) *ClassRepository {
	return &ClassRepository{col: db.Collection(collectionClasses)}
}

type mongoClass struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	DayOfWeek   int                `bson:"day_of_week"`
	StartTime   time.Time          `bson:"start_time"`
	EndTime     time.Time          `bson:"end_time"`
	TeacherID   string             `bson:"teacher_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (m mongoClass) toDomain() *domain.Class {
	return &domain.Class{
		ID:          m.ID.Hex(),
		Name:        m.Name,
		Description: m.Description,
		DayOfWeek:   m.DayOfWeek,
		StartTime:   m.StartTime.UTC(),
		EndTime:     m.EndTime.UTC(),
		TeacherID:   m.TeacherID,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

// Create inserts a new class document.
func (r *ClassRepository) Create(ctx context.Context, c *domain.Class) (*domain.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoClass{
		ID:          primitive.NewObjectID(),
		Name:        c.Name,
		Description: c.Description,
		DayOfWeek:   c.DayOfWeek,
		StartTime:   c.StartTime,
		EndTime:     c.EndTime,
		TeacherID:   c.TeacherID,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert class: %w", err)
	}
	return doc.toDomain(), nil
}

// FindByID treats ids that are not valid ObjectIDs as missing.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*domain.Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClassNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mc mongoClass
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClassNotFound
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return mc.toDomain(), nil
}

// List returns classes newest first. When TeacherID is non-empty the owner
// filter is part of the query.
func (r *ClassRepository) List(ctx context.Context, filter ports.ListClassesFilter) ([]*domain.Class, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	q := bson.M{}
	if filter.TeacherID != "" {
		q["teacher_id"] = filter.TeacherID
	}
	cur, err := r.col.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer cur.Close(ctx)

	var docs []mongoClass
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode classes: %w", err)
	}
	classes := make([]*domain.Class, 0, len(docs))
	for _, d := range docs {
		classes = append(classes, d.toDomain())
	}
	return classes, nil
}

func (r *ClassRepository) Update(ctx context.Context, id string, upd domain.ClassUpdate) (*domain.Class, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrClassNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.DayOfWeek != nil {
		set["day_of_week"] = *upd.DayOfWeek
	}
	if upd.StartTime != nil {
		set["start_time"] = *upd.StartTime
	}
	if upd.EndTime != nil {
		set["end_time"] = *upd.EndTime
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mc mongoClass
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClassNotFound
		}
		return nil, fmt.Errorf("update class: %w", err)
	}
	return mc.toDomain(), nil
}

func (r *ClassRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrClassNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrClassNotFound
	}
	return nil
}

// EnsureIndexes creates the owner listing index on the classes collection.
func (r *ClassRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "teacher_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
