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

// ApplicationRepository defines the interface for job application operations
type ApplicationRepository interface {
	CreateApplication(ctx context.Context, app *models.Application) error
	GetApplicationByID(ctx context.Context, id string) (*models.Application, error)
	GetBySeekerAndJob(ctx context.Context, seekerID, jobID primitive.ObjectID) (*models.Application, error)
	ListBySeeker(ctx context.Context, seekerID primitive.ObjectID) ([]models.Application, error)
	ListByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error)
	ListJobIDsBySeeker(ctx context.Context, seekerID primitive.ObjectID) ([]primitive.ObjectID, error)
	ListByFinderAndStatuses(ctx context.Context, finderID primitive.ObjectID, statuses []string) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error
	CloseAllForJob(ctx context.Context, jobID primitive.ObjectID) (int64, error)
}

// MongoApplicationRepository implements ApplicationRepository for MongoDB
type MongoApplicationRepository struct {
	collection *mongo.Collection
}

// NewMongoApplicationRepository creates a new MongoApplicationRepository
func NewMongoApplicationRepository(db *mongo.Database) *MongoApplicationRepository {
	return &MongoApplicationRepository{collection: db.Collection("applications")}
}

// CreateApplication creates a new application in MongoDB
func (r *MongoApplicationRepository) CreateApplication(ctx context.Context, app *models.Application) error {
	app.ID = primitive.NewObjectID()
	app.Date = time.Now()
	_, err := r.collection.InsertOne(ctx, app)
	return err
}

// GetApplicationByID retrieves an application by ID from MongoDB
func (r *MongoApplicationRepository) GetApplicationByID(ctx context.Context, id string) (*models.Application, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid application ID format: %w", err)
	}

	var app models.Application
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&app)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// GetBySeekerAndJob retrieves the application for a (seeker, job) pair, if any
func (r *MongoApplicationRepository) GetBySeekerAndJob(ctx context.Context, seekerID, jobID primitive.ObjectID) (*models.Application, error) {
	var app models.Application
	err := r.collection.FindOne(ctx, bson.M{"seeker_id": seekerID, "job_id": jobID}).Decode(&app)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// ListBySeeker retrieves all applications submitted by a seeker, newest first
func (r *MongoApplicationRepository) ListBySeeker(ctx context.Context, seekerID primitive.ObjectID) ([]models.Application, error) {
	var apps []models.Application
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"seeker_id": seekerID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListByJob retrieves all applications referencing a job
func (r *MongoApplicationRepository) ListByJob(ctx context.Context, jobID primitive.ObjectID) ([]models.Application, error) {
	var apps []models.Application
	cursor, err := r.collection.Find(ctx, bson.M{"job_id": jobID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// ListJobIDsBySeeker retrieves the distinct job IDs a seeker has applied to
func (r *MongoApplicationRepository) ListJobIDsBySeeker(ctx context.Context, seekerID primitive.ObjectID) ([]primitive.ObjectID, error) {
	values, err := r.collection.Distinct(ctx, "job_id", bson.M{"seeker_id": seekerID})
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// ListByFinderAndStatuses retrieves a finder's applications filtered by status set
func (r *MongoApplicationRepository) ListByFinderAndStatuses(ctx context.Context, finderID primitive.ObjectID, statuses []string) ([]models.Application, error) {
	filter := bson.M{"finder_id": finderID}
	if len(statuses) == 1 {
		filter["status"] = statuses[0]
	} else if len(statuses) > 1 {
		filter["status"] = bson.M{"$in": statuses}
	}

	var apps []models.Application
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateStatus overwrites the status of a single application
func (r *MongoApplicationRepository) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CloseAllForJob sets every application referencing a job to the Close status
// in one bulk update, returning the number of matched applications
func (r *MongoApplicationRepository) CloseAllForJob(ctx context.Context, jobID primitive.ObjectID) (int64, error) {
	res, err := r.collection.UpdateMany(ctx, bson.M{"job_id": jobID}, bson.M{"$set": bson.M{"status": "Close"}})
	if err != nil {
		return 0, err
	}
	return res.MatchedCount, nil
}
