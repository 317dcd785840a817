package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/osc-dev/contest-api/internal/models"
)

// RunRepository manages the singleton contest-run document. The singleton is
// enforced by always targeting the first match, never by a unique index.
type RunRepository struct {
	collection *mongo.Collection
}

// NewRunRepository constructs a RunRepository over the runs collection.
func NewRunRepository(db *mongo.Database) *RunRepository {
	return &RunRepository{collection: db.Collection("runs")}
}

// Get returns the current run. Returns mongo.ErrNoDocuments when no run has
// been configured yet.
func (r *RunRepository) Get(ctx context.Context) (*models.Run, error) {
	var run models.Run
	if err := r.collection.FindOne(ctx, bson.M{}).Decode(&run); err != nil {
		return nil, err
	}
	return &run, nil
}

// Upsert overwrites the run, creating it on first use, and returns the
// stored document.
func (r *RunRepository) Upsert(ctx context.Context, title string, deadline *time.Time) (*models.Run, error) {
	now := time.Now().UTC()
	update := bson.M{
		"$set":         bson.M{"title": title, "deadline": deadline, "updatedAt": now},
		"$setOnInsert": bson.M{"createdAt": now},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var run models.Run
	if err := r.collection.FindOneAndUpdate(ctx, bson.M{}, update, opts).Decode(&run); err != nil {
		return nil, err
	}
	return &run, nil
}
