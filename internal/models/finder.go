package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Finder represents a talent-finder (company/recruiter) account stored in MongoDB.
type Finder struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Email       string             `json:"email" bson:"email"`
	Password    string             `json:"-" bson:"password"` // bcrypt hash, never serialized
	Image       string             `json:"image" bson:"image"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Website     string             `json:"website,omitempty" bson:"website,omitempty"`
	Location    string             `json:"location,omitempty" bson:"location,omitempty"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// FinderCompact is the subset of finder fields embedded in job and application views.
type FinderCompact struct {
	ID    primitive.ObjectID `json:"id"`
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Image string             `json:"image"`
}

// ToCompact converts a Finder to its compact embedded form.
func (f *Finder) ToCompact() FinderCompact {
	return FinderCompact{ID: f.ID, Name: f.Name, Email: f.Email, Image: f.Image}
}
