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

// JobRepository defines the interface for job posting operations
type JobRepository interface {
	CreateJob(ctx context.Context, job *models.Job) error
	GetJobByID(ctx context.Context, id string) (*models.Job, error)
	ListJobsByFinder(ctx context.Context, finderID primitive.ObjectID) ([]models.Job, error)
	ListVisibleJobs(ctx context.Context, search, category string) ([]models.Job, error)
	ListVisibleJobsExcluding(ctx context.Context, excluded []primitive.ObjectID) ([]models.Job, error)
	IncrementApplicantsCount(ctx context.Context, jobID primitive.ObjectID) error
	CloseJob(ctx context.Context, jobID primitive.ObjectID) error
}

// MongoJobRepository implements JobRepository for MongoDB
type MongoJobRepository struct {
	collection *mongo.Collection
}

// NewMongoJobRepository creates a new MongoJobRepository
func NewMongoJobRepository(db *mongo.Database) *MongoJobRepository {
	return &MongoJobRepository{collection: db.Collection("jobs")}
}

// CreateJob creates a new job posting in MongoDB
func (r *MongoJobRepository) CreateJob(ctx context.Context, job *models.Job) error {
	job.ID = primitive.NewObjectID()
	job.Date = time.Now()
	job.Visible = true
	job.Status = models.JobStatusOpen
	_, err := r.collection.InsertOne(ctx, job)
	return err
}

// GetJobByID retrieves a job by ID from MongoDB
func (r *MongoJobRepository) GetJobByID(ctx context.Context, id string) (*models.Job, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid job ID format: %w", err)
	}

	var job models.Job
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&job)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// ListJobsByFinder retrieves all jobs posted by a finder, newest first
func (r *MongoJobRepository) ListJobsByFinder(ctx context.Context, finderID primitive.ObjectID) ([]models.Job, error) {
	var jobs []models.Job
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"finder_id": finderID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListVisibleJobs retrieves visible jobs with optional case-insensitive title
// substring search and exact category match, newest first
func (r *MongoJobRepository) ListVisibleJobs(ctx context.Context, search, category string) ([]models.Job, error) {
	filter := bson.M{"visible": true}
	if search != "" {
		filter["title"] = primitive.Regex{Pattern: search, Options: "i"}
	}
	if category != "" {
		filter["category"] = category
	}

	var jobs []models.Job
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListVisibleJobsExcluding retrieves visible jobs whose IDs are not in excluded
func (r *MongoJobRepository) ListVisibleJobsExcluding(ctx context.Context, excluded []primitive.ObjectID) ([]models.Job, error) {
	filter := bson.M{"visible": true}
	if len(excluded) > 0 {
		filter["_id"] = bson.M{"$nin": excluded}
	}

	var jobs []models.Job
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// IncrementApplicantsCount atomically increments the applicant counter of a job
func (r *MongoJobRepository) IncrementApplicantsCount(ctx context.Context, jobID primitive.ObjectID) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": jobID}, bson.M{"$inc": bson.M{"applicants_count": 1}})
	return err
}

// CloseJob flips a job to its closed terminal state
func (r *MongoJobRepository) CloseJob(ctx context.Context, jobID primitive.ObjectID) error {
	update := bson.M{"$set": bson.M{"visible": false, "status": models.JobStatusClose}}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": jobID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
