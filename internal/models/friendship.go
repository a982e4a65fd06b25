package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Friend request lifecycle states. Declined requests are deleted outright,
// so no "declined" status exists.
const (
	FriendRequestPending  = "pending"
	FriendRequestAccepted = "accepted"
)

// FriendRequest represents a friend request between two users. At most one
// request may exist per ordered (from, to) pair; the check happens before
// insert rather than through a storage constraint.
type FriendRequest struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FromUserID   string             `json:"from_user_id" bson:"from_user_id"`
	ToUserID     string             `json:"to_user_id" bson:"to_user_id"`
	FromUsername string             `json:"from_username" bson:"from_username"`
	FromAvatar   string             `json:"from_avatar" bson:"from_avatar"`
	Status       string             `json:"status" bson:"status"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

// SendFriendRequestRequest defines the request body for sending a friend request
type SendFriendRequestRequest struct {
	ToUserID string `json:"to_user_id" validate:"required"`
}
