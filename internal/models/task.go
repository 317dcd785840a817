package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Task is a unit of contributable work authored by a mentor. A task is
// "free" while RegisteredStudent is unset and "taken" once a student
// registers; IsSolved and IsBeingSolved track progress while taken and are
// never both true.
type Task struct {
	ID                primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Title             string              `bson:"title" json:"title"`
	Details           string              `bson:"details" json:"details"`
	Link              string              `bson:"link,omitempty" json:"link,omitempty"`
	IsSolved          bool                `bson:"isSolved" json:"isSolved"`
	IsBeingSolved     bool                `bson:"isBeingSolved" json:"isBeingSolved"`
	Creator           primitive.ObjectID  `bson:"creator" json:"creator"`
	RegisteredStudent *primitive.ObjectID `bson:"registeredStudent" json:"registeredStudent,omitempty"`
}

// TaskInput carries task fields for createTask and updateTask. ID is only
// consulted by updateTask.
type TaskInput struct {
	ID      string `json:"_id"`
	Title   string `json:"title" validate:"required"`
	Details string `json:"details" validate:"required"`
	Link    string `json:"link"`
}
