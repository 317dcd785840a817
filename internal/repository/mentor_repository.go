package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/osc-dev/contest-api/internal/models"
)

// MentorRepository manages persistence for mentor documents.
type MentorRepository struct {
	collection *mongo.Collection
}

// NewMentorRepository constructs a MentorRepository over the mentors
// collection.
func NewMentorRepository(db *mongo.Database) *MentorRepository {
	return &MentorRepository{collection: db.Collection("mentors")}
}

// FindByID fetches a mentor by id. Returns mongo.ErrNoDocuments when absent.
func (r *MentorRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Mentor, error) {
	var mentor models.Mentor
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&mentor); err != nil {
		return nil, err
	}
	return &mentor, nil
}

// FindByEmailUID fetches a mentor by the identity-provider (email, uid) pair
// used at login.
func (r *MentorRepository) FindByEmailUID(ctx context.Context, email, uid string) (*models.Mentor, error) {
	var mentor models.Mentor
	if err := r.collection.FindOne(ctx, bson.M{"email": email, "uid": uid}).Decode(&mentor); err != nil {
		return nil, err
	}
	return &mentor, nil
}

// FindByEmail fetches a mentor by email, used for duplicate detection.
func (r *MentorRepository) FindByEmail(ctx context.Context, email string) (*models.Mentor, error) {
	var mentor models.Mentor
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&mentor); err != nil {
		return nil, err
	}
	return &mentor, nil
}

// All returns every mentor.
func (r *MentorRepository) All(ctx context.Context) ([]models.Mentor, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find mentors: %w", err)
	}

	var mentors []models.Mentor
	if err := cursor.All(ctx, &mentors); err != nil {
		return nil, fmt.Errorf("decode mentors: %w", err)
	}
	return mentors, nil
}

// Insert stores a new mentor and returns its generated id.
func (r *MentorRepository) Insert(ctx context.Context, mentor *models.Mentor) (primitive.ObjectID, error) {
	if mentor.ID.IsZero() {
		mentor.ID = primitive.NewObjectID()
	}
	if mentor.CreatedTasks == nil {
		mentor.CreatedTasks = []primitive.ObjectID{}
	}
	if _, err := r.collection.InsertOne(ctx, mentor); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert mentor: %w", err)
	}
	return mentor.ID, nil
}

// PushCreatedTask appends a task id to the mentor's createdTasks list.
func (r *MentorRepository) PushCreatedTask(ctx context.Context, id, taskID primitive.ObjectID) error {
	update := bson.M{"$push": bson.M{"createdTasks": taskID}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("push created task: %w", err)
	}
	return nil
}

// PullCreatedTask removes a task id from the mentor's createdTasks list.
func (r *MentorRepository) PullCreatedTask(ctx context.Context, id, taskID primitive.ObjectID) error {
	update := bson.M{"$pull": bson.M{"createdTasks": taskID}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("pull created task: %w", err)
	}
	return nil
}

// SetRights overwrites the verification and admin flags.
func (r *MentorRepository) SetRights(ctx context.Context, id primitive.ObjectID, isVerified, isAdmin bool) error {
	update := bson.M{"$set": bson.M{"isVerified": isVerified, "isAdmin": isAdmin}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("set mentor rights: %w", err)
	}
	return nil
}
