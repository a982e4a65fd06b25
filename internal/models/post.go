package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a social media post stored in MongoDB.
// LikesCount mirrors len(Likes) and is maintained atomically together with
// the likes array in a single update. CommentsCount counts top-level comments
// only; replies are excluded from the counter.
type Post struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID        string             `json:"user_id" bson:"user_id"` // Firebase UID of the author
	Username      string             `json:"username" bson:"username"`
	Avatar        string             `json:"avatar" bson:"avatar"`
	Content       string             `json:"content" bson:"content"`
	Likes         []string           `json:"likes" bson:"likes"` // UIDs of users who liked the post
	LikesCount    int                `json:"likes_count" bson:"likes_count"`
	CommentsCount int                `json:"comments_count" bson:"comments_count"`
	CreatedAt     time.Time          `json:"created_at" bson:"created_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
