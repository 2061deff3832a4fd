package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Seeker represents a talent-seeker (candidate) account stored in MongoDB.
type Seeker struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"-" bson:"password"` // bcrypt hash, never serialized
	Image     string             `json:"image" bson:"image"`
	Resume    string             `json:"resume,omitempty" bson:"resume,omitempty"`
	Skills    []string           `json:"skills" bson:"skills"`
	Bio       string             `json:"bio,omitempty" bson:"bio,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// SeekerCompact is the subset of seeker fields embedded in applicant views.
type SeekerCompact struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Image  string             `json:"image"`
	Resume string             `json:"resume,omitempty"`
	Skills []string           `json:"skills"`
	Bio    string             `json:"bio,omitempty"`
}

// ToCompact converts a Seeker to its compact applicant-view form.
func (s *Seeker) ToCompact() SeekerCompact {
	return SeekerCompact{
		ID:     s.ID,
		Name:   s.Name,
		Image:  s.Image,
		Resume: s.Resume,
		Skills: s.Skills,
		Bio:    s.Bio,
	}
}

// LoginRequest defines the request body for seeker and finder login.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// ApplyJobRequest defines the request body for applying to a job.
type ApplyJobRequest struct {
	JobID string `json:"jobId" form:"jobId" validate:"required"`
}
