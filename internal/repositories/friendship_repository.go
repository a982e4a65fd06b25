package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/devhasib/buzznet/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FriendshipRepository defines the interface for friend request lifecycle
// operations. The friends sets themselves live on the user documents and are
// mutated through UserRepository.
type FriendshipRepository interface {
	CreateRequest(ctx context.Context, req *models.FriendRequest) error
	GetRequestByID(ctx context.Context, id string) (*models.FriendRequest, error)
	GetPendingRequests(ctx context.Context, toUserID string) ([]models.FriendRequest, error)
	UpdateStatus(ctx context.Context, id, status string) error
	DeleteRequest(ctx context.Context, id string) error
}

// MongoFriendshipRepository implements FriendshipRepository for MongoDB
type MongoFriendshipRepository struct {
	collection *mongo.Collection
}

// NewMongoFriendshipRepository creates a new MongoFriendshipRepository
func NewMongoFriendshipRepository(db *mongo.Database) *MongoFriendshipRepository {
	return &MongoFriendshipRepository{collection: db.Collection("friendRequests")}
}

// CreateRequest inserts a friend request after checking that no request for
// the same ordered (from, to) pair exists in any status. The check and the
// insert are two separate operations; two near-simultaneous sends can both
// pass the check.
func (r *MongoFriendshipRepository) CreateRequest(ctx context.Context, req *models.FriendRequest) error {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"from_user_id": req.FromUserID,
		"to_user_id":   req.ToUserID,
	})
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateRequest
	}

	req.ID = primitive.NewObjectID()
	req.Status = models.FriendRequestPending
	req.CreatedAt = time.Now()
	_, err = r.collection.InsertOne(ctx, req)
	return err
}

// GetRequestByID retrieves a friend request by ID
func (r *MongoFriendshipRepository) GetRequestByID(ctx context.Context, id string) (*models.FriendRequest, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid request ID format: %w", err)
	}

	var req models.FriendRequest
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&req)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &req, nil
}

// GetPendingRequests retrieves all pending requests addressed to a user
func (r *MongoFriendshipRepository) GetPendingRequests(ctx context.Context, toUserID string) ([]models.FriendRequest, error) {
	cursor, err := r.collection.Find(ctx, bson.M{
		"to_user_id": toUserID,
		"status":     models.FriendRequestPending,
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	requests := []models.FriendRequest{}
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

// UpdateStatus sets the status of a friend request
func (r *MongoFriendshipRepository) UpdateStatus(ctx context.Context, id, status string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid request ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRequest hard-deletes a friend request row
func (r *MongoFriendshipRepository) DeleteRequest(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid request ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
