package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/osc-dev/contest-api/internal/models"
)

// StudentRepository manages persistence for student documents.
type StudentRepository struct {
	collection *mongo.Collection
}

// NewStudentRepository constructs a StudentRepository over the students
// collection.
func NewStudentRepository(db *mongo.Database) *StudentRepository {
	return &StudentRepository{collection: db.Collection("students")}
}

// FindByID fetches a student by id. Returns mongo.ErrNoDocuments when absent.
func (r *StudentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Student, error) {
	var student models.Student
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&student); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByEmailUID fetches a student by the identity-provider (email, uid)
// pair used at login.
func (r *StudentRepository) FindByEmailUID(ctx context.Context, email, uid string) (*models.Student, error) {
	var student models.Student
	if err := r.collection.FindOne(ctx, bson.M{"email": email, "uid": uid}).Decode(&student); err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByEmail fetches a student by email, used for duplicate detection.
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	var student models.Student
	if err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&student); err != nil {
		return nil, err
	}
	return &student, nil
}

// All returns every student.
func (r *StudentRepository) All(ctx context.Context) ([]models.Student, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find students: %w", err)
	}

	var students []models.Student
	if err := cursor.All(ctx, &students); err != nil {
		return nil, fmt.Errorf("decode students: %w", err)
	}
	return students, nil
}

// Insert stores a new student and returns its generated id.
func (r *StudentRepository) Insert(ctx context.Context, student *models.Student) (primitive.ObjectID, error) {
	if student.ID.IsZero() {
		student.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, student); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert student: %w", err)
	}
	return student.ID, nil
}

// SetRegisteredTask records the student's single registered task.
func (r *StudentRepository) SetRegisteredTask(ctx context.Context, id, taskID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"registeredTask": taskID}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("set registered task: %w", err)
	}
	return nil
}

// ClearRegisteredTask drops the student's task reference.
func (r *StudentRepository) ClearRegisteredTask(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"registeredTask": nil}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("clear registered task: %w", err)
	}
	return nil
}
