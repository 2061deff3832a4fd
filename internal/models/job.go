package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Job status values. A job opens as Open and is closed through the workflow;
// jobs are never deleted.
const (
	JobStatusOpen  = "Open"
	JobStatusClose = "Close"
)

// Job represents a job posting owned by a single finder, stored in MongoDB.
type Job struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title           string             `json:"title" bson:"title"`
	Description     string             `json:"description" bson:"description"`
	Location        string             `json:"location" bson:"location"`
	Level           string             `json:"level" bson:"level"`
	Salary          float64            `json:"salary" bson:"salary"`
	Category        string             `json:"category" bson:"category"`
	FinderID        primitive.ObjectID `json:"finder_id" bson:"finder_id"`
	Date            time.Time          `json:"date" bson:"date"`
	Visible         bool               `json:"visible" bson:"visible"`
	Status          string             `json:"status" bson:"status"`
	ApplicantsCount int                `json:"applicants_count" bson:"applicants_count"`
}

// PostJobRequest defines the request body for posting a new job.
type PostJobRequest struct {
	Title       string  `json:"title" form:"title" validate:"required"`
	Description string  `json:"description" form:"description" validate:"required"`
	Location    string  `json:"location" form:"location" validate:"required"`
	Level       string  `json:"level" form:"level" validate:"required"`
	Salary      float64 `json:"salary" form:"salary" validate:"required,gte=0"`
	Category    string  `json:"category" form:"category" validate:"required"`
}

// JobCompact is the subset of job fields embedded in application views.
type JobCompact struct {
	ID       primitive.ObjectID `json:"id"`
	Title    string             `json:"title"`
	Location string             `json:"location"`
	Level    string             `json:"level"`
	Category string             `json:"category"`
	Salary   float64            `json:"salary,omitempty"`
}

// ToCompact converts a Job to its compact embedded form.
func (j *Job) ToCompact() JobCompact {
	return JobCompact{
		ID:       j.ID,
		Title:    j.Title,
		Location: j.Location,
		Level:    j.Level,
		Category: j.Category,
		Salary:   j.Salary,
	}
}
