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

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, n *models.Notification) error
	CreateNotifications(ctx context.Context, ns []models.Notification) error
	ListByRecipient(ctx context.Context, kind models.AccountKind, accountID primitive.ObjectID) ([]models.Notification, error)
	CountUnread(ctx context.Context, kind models.AccountKind, accountID primitive.ObjectID) (int64, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context, kind models.AccountKind, accountID primitive.ObjectID) error
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

func recipientFilter(kind models.AccountKind, accountID primitive.ObjectID) bson.M {
	if kind == models.KindFinder {
		return bson.M{"finder_id": accountID}
	}
	return bson.M{"seeker_id": accountID}
}

// CreateNotification creates a single notification in MongoDB
func (r *MongoNotificationRepository) CreateNotification(ctx context.Context, n *models.Notification) error {
	n.ID = primitive.NewObjectID()
	n.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, n)
	return err
}

// CreateNotifications inserts a batch of notifications in one call
func (r *MongoNotificationRepository) CreateNotifications(ctx context.Context, ns []models.Notification) error {
	if len(ns) == 0 {
		return nil
	}
	docs := make([]interface{}, len(ns))
	for i := range ns {
		ns[i].ID = primitive.NewObjectID()
		ns[i].CreatedAt = time.Now()
		docs[i] = ns[i]
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// ListByRecipient retrieves an account's notifications, newest first
func (r *MongoNotificationRepository) ListByRecipient(ctx context.Context, kind models.AccountKind, accountID primitive.ObjectID) ([]models.Notification, error) {
	var notifications []models.Notification
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, recipientFilter(kind, accountID), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountUnread counts an account's unread notifications
func (r *MongoNotificationRepository) CountUnread(ctx context.Context, kind models.AccountKind, accountID primitive.ObjectID) (int64, error) {
	filter := recipientFilter(kind, accountID)
	filter["read"] = false
	return r.collection.CountDocuments(ctx, filter)
}

// MarkAsRead flips a single notification's read flag
func (r *MongoNotificationRepository) MarkAsRead(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid notification ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllAsRead flips the read flag on every unread notification of an account
func (r *MongoNotificationRepository) MarkAllAsRead(ctx context.Context, kind models.AccountKind, accountID primitive.ObjectID) error {
	filter := recipientFilter(kind, accountID)
	filter["read"] = false
	_, err := r.collection.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"read": true}})
	return err
}
