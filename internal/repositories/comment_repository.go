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

// CommentRepository defines the interface for comment and reply operations.
// Comments and replies are immutable once created; there is no update or
// delete path.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	CreateReply(ctx context.Context, reply *models.Reply) error
	GetRepliesByCommentIDs(ctx context.Context, commentIDs []string) (map[string][]models.Reply, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	comments *mongo.Collection
	replies  *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{
		comments: db.Collection("comments"),
		replies:  db.Collection("replies"),
	}
}

// CreateComment inserts a new comment row. The owning post's comment counter
// is maintained separately by the caller; the two writes are not atomic.
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.ID = primitive.NewObjectID()
	comment.CreatedAt = time.Now()
	_, err := r.comments.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a single comment by ID
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID format: %w", err)
	}

	var comment models.Comment
	err = r.comments.FindOne(ctx, bson.M{"_id": objID}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByPostID retrieves all comments for a post, newest first
func (r *MongoCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.comments.Find(ctx, bson.M{"post_id": postID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// CreateReply inserts a new reply row attached to one comment. Replies do
// not touch the post's comment counter.
func (r *MongoCommentRepository) CreateReply(ctx context.Context, reply *models.Reply) error {
	reply.ID = primitive.NewObjectID()
	reply.CreatedAt = time.Now()
	_, err := r.replies.InsertOne(ctx, reply)
	return err
}

// GetRepliesByCommentIDs retrieves the replies for a batch of comments in one
// query, grouped by comment ID and ordered oldest first within each comment.
func (r *MongoCommentRepository) GetRepliesByCommentIDs(ctx context.Context, commentIDs []string) (map[string][]models.Reply, error) {
	grouped := make(map[string][]models.Reply)
	if len(commentIDs) == 0 {
		return grouped, nil
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.replies.Find(ctx, bson.M{"comment_id": bson.M{"$in": commentIDs}}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var replies []models.Reply
	if err = cursor.All(ctx, &replies); err != nil {
		return nil, err
	}

	for _, reply := range replies {
		grouped[reply.CommentID] = append(grouped[reply.CommentID], reply)
	}
	return grouped, nil
}
