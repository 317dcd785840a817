package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/osc-dev/contest-api/internal/models"
)

// TaskRepository manages persistence for task documents.
type TaskRepository struct {
	collection *mongo.Collection
}

// NewTaskRepository constructs a TaskRepository over the tasks collection.
func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{collection: db.Collection("tasks")}
}

// FindByID fetches a task by id. Returns mongo.ErrNoDocuments when absent.
func (r *TaskRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByIDs fetches the tasks for the given ids, preserving the input order.
func (r *TaskRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Task, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find tasks by ids: %w", err)
	}

	var found []models.Task
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	byID := make(map[primitive.ObjectID]models.Task, len(found))
	for _, task := range found {
		byID[task.ID] = task
	}

	ordered := make([]models.Task, 0, len(found))
	for _, id := range ids {
		if task, ok := byID[id]; ok {
			ordered = append(ordered, task)
		}
	}
	return ordered, nil
}

// All returns every task.
func (r *TaskRepository) All(ctx context.Context) ([]models.Task, error) {
	return r.find(ctx, bson.M{})
}

// Free returns tasks without a registered student.
func (r *TaskRepository) Free(ctx context.Context) ([]models.Task, error) {
	return r.find(ctx, bson.M{"registeredStudent": nil})
}

// Taken returns tasks with a registered student.
func (r *TaskRepository) Taken(ctx context.Context) ([]models.Task, error) {
	return r.find(ctx, bson.M{"registeredStudent": bson.M{"$ne": nil}})
}

func (r *TaskRepository) find(ctx context.Context, filter bson.M) ([]models.Task, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

// Insert stores a new task and returns its generated id.
func (r *TaskRepository) Insert(ctx context.Context, task *models.Task) (primitive.ObjectID, error) {
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, task); err != nil {
		return primitive.NilObjectID, fmt.Errorf("insert task: %w", err)
	}
	return task.ID, nil
}

// UpdateDetails overwrites title, details and link.
func (r *TaskRepository) UpdateDetails(ctx context.Context, id primitive.ObjectID, title, details, link string) error {
	update := bson.M{"$set": bson.M{"title": title, "details": details, "link": link}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("update task details: %w", err)
	}
	return nil
}

// SetRegisteredStudent marks the task as taken by the given student.
func (r *TaskRepository) SetRegisteredStudent(ctx context.Context, id, studentID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"registeredStudent": studentID}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("set registered student: %w", err)
	}
	return nil
}

// ClearRegistration frees the task and resets its progress flags.
func (r *TaskRepository) ClearRegistration(ctx context.Context, id primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{
		"registeredStudent": nil,
		"isSolved":          false,
		"isBeingSolved":     false,
	}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("clear task registration: %w", err)
	}
	return nil
}

// SetProgress overwrites both progress flags.
func (r *TaskRepository) SetProgress(ctx context.Context, id primitive.ObjectID, isSolved, isBeingSolved bool) error {
	update := bson.M{"$set": bson.M{"isSolved": isSolved, "isBeingSolved": isBeingSolved}}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("set task progress: %w", err)
	}
	return nil
}

// Delete removes the task document.
func (r *TaskRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	if _, err := r.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
