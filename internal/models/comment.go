package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a post. Comments are immutable once
// created. Replies live in their own collection and are stitched in when
// listing; they never appear in the stored comment document.
type Comment struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostID    string             `json:"post_id" bson:"post_id"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Username  string             `json:"username" bson:"username"`
	Avatar    string             `json:"avatar" bson:"avatar"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	Replies   []Reply            `json:"replies" bson:"-"`
}

// Reply represents a reply attached to exactly one comment
type Reply struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PostID    string             `json:"post_id" bson:"post_id"`
	CommentID string             `json:"comment_id" bson:"comment_id"`
	UserID    string             `json:"user_id" bson:"user_id"`
	Username  string             `json:"username" bson:"username"`
	Avatar    string             `json:"avatar" bson:"avatar"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// CreateCommentRequest defines the request body for commenting on a post
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}

// CreateReplyRequest defines the request body for replying to a comment
type CreateReplyRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
