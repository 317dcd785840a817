package service

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/osc-dev/contest-api/internal/models"
	appErrors "github.com/osc-dev/contest-api/pkg/errors"
)

// TaskView is a task with its references materialized one level deep.
type TaskView struct {
	Task              models.Task
	Creator           *models.Mentor
	RegisteredStudent *models.Student
}

// MentorView is a mentor with created tasks materialized one level deep.
type MentorView struct {
	Mentor       models.Mentor
	CreatedTasks []models.Task
}

// StudentView is a student with the registered task (and its creator, so the
// nested task stays complete) materialized one level deep.
type StudentView struct {
	Student        models.Student
	RegisteredTask *models.Task
	TaskCreator    *models.Mentor
}

// transactionRunner runs a callback inside one storage transaction so paired
// cross-document writes commit together.
type transactionRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

func parseID(raw, label string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, appErrors.Clonef(appErrors.ErrValidation, "invalid %s id", label)
	}
	return id, nil
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
