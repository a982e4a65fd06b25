package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification types
const (
	NotificationFriendRequest = "friend_request"
	NotificationFriendAccept  = "friend_accept"
	NotificationLike          = "like"
	NotificationComment       = "comment"
)

// Notification represents a per-user notification row, written directly by
// the action that triggers it and owned by the recipient for read-state.
// Notifications are never deleted.
type Notification struct {
	ID             primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID         string             `json:"user_id" bson:"user_id"` // recipient UID
	Type           string             `json:"type" bson:"type"`
	FromUserID     string             `json:"from_user_id" bson:"from_user_id"`
	FromUsername   string             `json:"from_username" bson:"from_username"`
	FromAvatar     string             `json:"from_avatar" bson:"from_avatar"`
	Message        string             `json:"message" bson:"message"`
	PostPreview    string             `json:"post_preview,omitempty" bson:"post_preview,omitempty"`
	CommentPreview string             `json:"comment_preview,omitempty" bson:"comment_preview,omitempty"`
	Read           bool               `json:"read" bson:"read"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
}
