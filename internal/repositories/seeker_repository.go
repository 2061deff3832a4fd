package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/talenthub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SeekerRepository defines the interface for seeker account operations
type SeekerRepository interface {
	CreateSeeker(ctx context.Context, seeker *models.Seeker) error
	GetSeekerByID(ctx context.Context, id string) (*models.Seeker, error)
	GetSeekerByEmail(ctx context.Context, email string) (*models.Seeker, error)
	UpdateResume(ctx context.Context, id string, resumeURL string) error
	ListAllSeekers(ctx context.Context) ([]models.Seeker, error)
}

// MongoSeekerRepository implements SeekerRepository for MongoDB
type MongoSeekerRepository struct {
	collection *mongo.Collection
}

// NewMongoSeekerRepository creates a new MongoSeekerRepository
func NewMongoSeekerRepository(db *mongo.Database) *MongoSeekerRepository {
	return &MongoSeekerRepository{collection: db.Collection("seekers")}
}

// CreateSeeker creates a new seeker account in MongoDB
func (r *MongoSeekerRepository) CreateSeeker(ctx context.Context, seeker *models.Seeker) error {
	seeker.ID = primitive.NewObjectID()
	seeker.CreatedAt = time.Now()
	seeker.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, seeker)
	return err
}

// GetSeekerByID retrieves a seeker by ID from MongoDB
func (r *MongoSeekerRepository) GetSeekerByID(ctx context.Context, id string) (*models.Seeker, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid seeker ID format: %w", err)
	}

	var seeker models.Seeker
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&seeker)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &seeker, nil
}

// GetSeekerByEmail retrieves a seeker by email from MongoDB
func (r *MongoSeekerRepository) GetSeekerByEmail(ctx context.Context, email string) (*models.Seeker, error) {
	var seeker models.Seeker
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&seeker)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &seeker, nil
}

// UpdateResume sets the seeker's resume URL
func (r *MongoSeekerRepository) UpdateResume(ctx context.Context, id string, resumeURL string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid seeker ID format: %w", err)
	}

	update := bson.M{"$set": bson.M{"resume": resumeURL, "updated_at": time.Now()}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAllSeekers retrieves all seeker accounts, newest first
func (r *MongoSeekerRepository) ListAllSeekers(ctx context.Context) ([]models.Seeker, error) {
	var seekers []models.Seeker
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &seekers); err != nil {
		return nil, err
	}
	return seekers, nil
}
