package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a user profile document keyed by the Firebase UID
type User struct {
	UID       string    `json:"uid" bson:"_id"`
	Email     string    `json:"email" bson:"email"`
	Username  string    `json:"username" bson:"username"`
	Name      string    `json:"name" bson:"name"`
	Bio       string    `json:"bio" bson:"bio"`
	Avatar    string    `json:"avatar" bson:"avatar"`
	Friends   []string  `json:"friends" bson:"friends"` // UIDs of accepted friends, kept symmetric
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// SignupRequest defines the request body for creating a new account
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=2,max=30"`
	Name     string `json:"name" validate:"required,min=1,max=50"`
}

// LoginRequest defines the request body for exchanging a Firebase ID token for a session token
type LoginRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// UpdateProfileRequest defines the request body for partial profile updates.
// Only fields present in the payload are merged into the user document; there
// is no uniqueness check on username.
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,min=1,max=50"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=2,max=30"`
	Bio      *string `json:"bio,omitempty" validate:"omitempty,max=200"`
	Avatar   *string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// Fields returns the profile fields actually present in the request
func (r *UpdateProfileRequest) Fields() map[string]string {
	fields := make(map[string]string)
	if r.Name != nil {
		fields["name"] = *r.Name
	}
	if r.Username != nil {
		fields["username"] = *r.Username
	}
	if r.Bio != nil {
		fields["bio"] = *r.Bio
	}
	if r.Avatar != nil {
		fields["avatar"] = *r.Avatar
	}
	return fields
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UID   string `json:"uid"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}
