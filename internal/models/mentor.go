package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Mentor authors tasks. New mentors start unverified; only verified mentors
// may create tasks and only admins may grant rights.
type Mentor struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"_id"`
	Email        string               `bson:"email" json:"email"`
	UID          string               `bson:"uid" json:"uid"`
	IsVerified   bool                 `bson:"isVerified" json:"isVerified"`
	IsAdmin      bool                 `bson:"isAdmin" json:"isAdmin"`
	CreatedTasks []primitive.ObjectID `bson:"createdTasks" json:"createdTasks"`
}

// MentorInput carries the self-registration payload.
type MentorInput struct {
	Email string `json:"email" validate:"required,email"`
	UID   string `json:"uid" validate:"required"`
}
