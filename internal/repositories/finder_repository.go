package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/talenthub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FinderRepository defines the interface for finder account operations
type FinderRepository interface {
	CreateFinder(ctx context.Context, finder *models.Finder) error
	GetFinderByID(ctx context.Context, id string) (*models.Finder, error)
	GetFinderByEmail(ctx context.Context, email string) (*models.Finder, error)
}

// MongoFinderRepository implements FinderRepository for MongoDB
type MongoFinderRepository struct {
	collection *mongo.Collection
}

// NewMongoFinderRepository creates a new MongoFinderRepository
func NewMongoFinderRepository(db *mongo.Database) *MongoFinderRepository {
	return &MongoFinderRepository{collection: db.Collection("finders")}
}

// CreateFinder creates a new finder account in MongoDB
func (r *MongoFinderRepository) CreateFinder(ctx context.Context, finder *models.Finder) error {
	finder.ID = primitive.NewObjectID()
	finder.CreatedAt = time.Now()
	finder.UpdatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, finder)
	return err
}

// GetFinderByID retrieves a finder by ID from MongoDB
func (r *MongoFinderRepository) GetFinderByID(ctx context.Context, id string) (*models.Finder, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid finder ID format: %w", err)
	}

	var finder models.Finder
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&finder)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &finder, nil
}

// GetFinderByEmail retrieves a finder by email from MongoDB
func (r *MongoFinderRepository) GetFinderByEmail(ctx context.Context, email string) (*models.Finder, error) {
	var finder models.Finder
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&finder)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &finder, nil
}
