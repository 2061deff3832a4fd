package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Application represents a seeker's application to a job. At most one
// application exists per (seeker, job) pair. The finder reference is
// denormalized from the job so recruiter views need no join.
type Application struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SeekerID   primitive.ObjectID `json:"seeker_id" bson:"seeker_id"`
	FinderID   primitive.ObjectID `json:"finder_id" bson:"finder_id"`
	JobID      primitive.ObjectID `json:"job_id" bson:"job_id"`
	Status     string             `json:"status" bson:"status"`
	MatchScore int                `json:"match_score" bson:"match_score"`
	Date       time.Time          `json:"date" bson:"date"`
}

// ChangeStatusRequest defines the request body for changing an application's status.
type ChangeStatusRequest struct {
	ID     string `json:"id" form:"id" validate:"required"`
	Status string `json:"status" form:"status" validate:"required"`
}
