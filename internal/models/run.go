package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Run is the singleton record describing the current contest cycle. At most
// one document exists; setRun always upserts the first match.
type Run struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title     string             `bson:"title" json:"title"`
	Deadline  *time.Time         `bson:"deadline" json:"deadline,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RunInput carries the setRun payload. Deadline is an RFC 3339 timestamp or
// empty.
type RunInput struct {
	Title    string `json:"title" validate:"required"`
	Deadline string `json:"deadline"`
}
