package auth

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered user in the system
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Password  string             `bson:"password,omitempty" json:"-"`
	GoogleID  string             `bson:"googleId,omitempty" json:"-"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RegisterRequest represents user registration data
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"anna@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"hunter2hunter2"`
	Name     string `json:"name" binding:"required" example:"Anna"`
}

// LoginRequest represents user login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"anna@example.com"`
	Password string `json:"password" binding:"required" example:"hunter2hunter2"`
}

// GoogleAuthRequest represents the payload for Google sign-in
type GoogleAuthRequest struct {
	GoogleIDToken string `json:"googleIdToken" binding:"required"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
