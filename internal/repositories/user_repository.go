package repositories

import (
	"context"
	"strings"
	"time"

	"github.com/devhasib/buzznet/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository defines the interface for user profile operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUID(ctx context.Context, uid string) (*models.User, error)
	UpdateProfile(ctx context.Context, uid string, fields map[string]string) error
	SearchUsers(ctx context.Context, term string) ([]models.User, error)
	AddFriend(ctx context.Context, uid, friendUID string) error
	RemoveFriend(ctx context.Context, uid, friendUID string) error
}

// MongoUserRepository implements UserRepository for MongoDB
type MongoUserRepository struct {
	collection *mongo.Collection
}

// NewMongoUserRepository creates a new MongoUserRepository
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{collection: db.Collection("users")}
}

// CreateUser inserts a new user profile document keyed by the Firebase UID
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if user.Friends == nil {
		user.Friends = []string{}
	}
	user.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, user)
	return err
}

// GetUserByUID retrieves a user profile by Firebase UID
func (r *MongoUserRepository) GetUserByUID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": uid}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile merges the given fields into the user document. Fields not
// present in the map are left untouched.
func (r *MongoUserRepository) UpdateProfile(ctx context.Context, uid string, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SearchUsers scans the user collection and matches the term case-insensitively
// against username or display name. The scan-and-filter approach mirrors the
// store contract: no text index is assumed to exist.
func (r *MongoUserRepository) SearchUsers(ctx context.Context, term string) ([]models.User, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var all []models.User
	if err = cursor.All(ctx, &all); err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	matched := []models.User{}
	for _, u := range all {
		if strings.Contains(strings.ToLower(u.Username), needle) ||
			strings.Contains(strings.ToLower(u.Name), needle) {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

// AddFriend adds friendUID to the user's friends set. Re-adding an existing
// friend is a no-op.
func (r *MongoUserRepository) AddFriend(ctx context.Context, uid, friendUID string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$addToSet": bson.M{"friends": friendUID}})
	return err
}

// RemoveFriend removes friendUID from the user's friends set
func (r *MongoUserRepository) RemoveFriend(ctx context.Context, uid, friendUID string) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": uid}, bson.M{"$pull": bson.M{"friends": friendUID}})
	return err
}
