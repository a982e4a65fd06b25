package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/devhasib/buzznet/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NotificationRepository defines the interface for notification rows. Rows
// are written directly by the action that triggers them and never deleted;
// only the read flag is ever mutated afterwards.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	GetByID(ctx context.Context, id string) (*models.Notification, error)
	GetByUserID(ctx context.Context, userID string) ([]models.Notification, error)
	GetUnreadCount(ctx context.Context, userID string) (int64, error)
	MarkAsRead(ctx context.Context, id string) error
	MarkAllAsRead(ctx context.Context, userID string) error
}

// MongoNotificationRepository implements NotificationRepository for MongoDB
type MongoNotificationRepository struct {
	collection *mongo.Collection
}

// NewMongoNotificationRepository creates a new MongoNotificationRepository
func NewMongoNotificationRepository(db *mongo.Database) *MongoNotificationRepository {
	return &MongoNotificationRepository{collection: db.Collection("notifications")}
}

// Create inserts a new unread notification row
func (r *MongoNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = primitive.NewObjectID()
	notification.Read = false
	notification.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, notification)
	return err
}

// GetByID retrieves a single notification row by ID
func (r *MongoNotificationRepository) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid notification ID format: %w", err)
	}

	var notification models.Notification
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&notification)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &notification, nil
}

// GetByUserID retrieves a user's notifications, newest first
func (r *MongoNotificationRepository) GetByUserID(ctx context.Context, userID string) ([]models.Notification, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notifications := []models.Notification{}
	if err = cursor.All(ctx, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// GetUnreadCount counts the user's unread notifications, recomputed on demand
func (r *MongoNotificationRepository) GetUnreadCount(ctx context.Context, userID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"user_id": userID, "read": false})
}

// MarkAsRead sets the read flag on a single notification
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

// MarkAllAsRead marks every unread notification for the user as read. This is
// a fan-out of single-document updates, not one atomic operation; a failure
// partway through leaves earlier rows marked.
func (r *MongoNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID, "read": false})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	var unread []models.Notification
	if err = cursor.All(ctx, &unread); err != nil {
		return err
	}

	for _, n := range unread {
		if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": n.ID}, bson.M{"$set": bson.M{"read": true}}); err != nil {
			return err
		}
	}
	return nil
}
