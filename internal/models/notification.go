package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification categories.
const (
	NotificationTypeApplication = "Application"
	NotificationTypeJob         = "Job"
	NotificationTypeSystem      = "System"
)

// Notification is a one-way message addressed to exactly one account:
// either SeekerID or FinderID is set, never both. Created only as a side
// effect of application or job state changes; the read flag is the only
// field mutated afterwards.
type Notification struct {
	ID        primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	SeekerID  *primitive.ObjectID `json:"seeker_id,omitempty" bson:"seeker_id,omitempty"`
	FinderID  *primitive.ObjectID `json:"finder_id,omitempty" bson:"finder_id,omitempty"`
	Title     string              `json:"title" bson:"title"`
	Message   string              `json:"message" bson:"message"`
	Read      bool                `json:"read" bson:"read"`
	Type      string              `json:"type" bson:"type"`
	CreatedAt time.Time           `json:"created_at" bson:"created_at"`
}

// MarkReadRequest defines the request body for marking a single notification read.
type MarkReadRequest struct {
	ID string `json:"id" form:"id" validate:"required"`
}
