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

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetAllPosts(ctx context.Context) ([]models.Post, error)
	GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error)
	DeletePost(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, postID, userID string) (liked bool, err error)
	IncrementCommentsCount(ctx context.Context, postID string) error
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// CreatePost creates a new post with zeroed counters and an empty likes set
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.Likes = []string{}
	post.LikesCount = 0
	post.CommentsCount = 0
	post.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid post ID format: %w", err)
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves the full post collection, newest first
func (r *MongoPostRepository) GetAllPosts(ctx context.Context) ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// GetPostsByUserID retrieves all posts authored by the given user. Ordering,
// if any, is imposed by the caller.
func (r *MongoPostRepository) GetPostsByUserID(ctx context.Context, userID string) ([]models.Post, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// DeletePost hard-deletes a post by ID. Comments, replies and reaction
// buckets attached to the post are left in place.
func (r *MongoPostRepository) DeletePost(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
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

// ToggleLike adds or removes userID from the post's likes set and adjusts
// likes_count in the same update, so the count cannot drift from the set
// within one call. The membership check and the write are still two round
// trips; concurrent togglers of the same post race on the check.
func (r *MongoPostRepository) ToggleLike(ctx context.Context, postID, userID string) (bool, error) {
	post, err := r.GetPostByID(ctx, postID)
	if err != nil {
		return false, err
	}

	alreadyLiked := false
	for _, uid := range post.Likes {
		if uid == userID {
			alreadyLiked = true
			break
		}
	}

	var update bson.M
	if alreadyLiked {
		update = bson.M{
			"$pull": bson.M{"likes": userID},
			"$inc":  bson.M{"likes_count": -1},
		}
	} else {
		update = bson.M{
			"$addToSet": bson.M{"likes": userID},
			"$inc":      bson.M{"likes_count": 1},
		}
	}

	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": post.ID}, update)
	if err != nil {
		return false, err
	}
	return !alreadyLiked, nil
}

// IncrementCommentsCount bumps the post's top-level comment counter. Replies
// do not go through this path.
func (r *MongoPostRepository) IncrementCommentsCount(ctx context.Context, postID string) error {
	objID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		return fmt.Errorf("invalid post ID format: %w", err)
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"comments_count": 1}})
	return err
}
