package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Student holds at most one registered task at any time.
type Student struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"_id"`
	Email          string              `bson:"email" json:"email"`
	UID            string              `bson:"uid" json:"uid"`
	RegisteredTask *primitive.ObjectID `bson:"registeredTask" json:"registeredTask,omitempty"`
}

// StudentInput carries the self-registration payload.
type StudentInput struct {
	Email string `json:"email" validate:"required,email"`
	UID   string `json:"uid" validate:"required"`
}
