// Package models holds the user account and its session claims.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dhairyash-1/videotube-api/internal/storage/media"
)

// User is a channel owner and viewer. Password and RefreshToken never leave the server.
type User struct {
	ID           primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Username     string               `json:"username" bson:"username" index:"unique"`
	Email        string               `json:"email" bson:"email" index:"unique"`
	FullName     string               `json:"fullName" bson:"fullName" index:"single"`
	Avatar       media.Ref            `json:"avatar" bson:"avatar"`
	CoverImage   *media.Ref           `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	WatchHistory []primitive.ObjectID `json:"watchHistory" bson:"watchHistory,omitempty"`
	Password     string               `json:"-" bson:"password,omitempty"`
	RefreshToken string               `json:"-" bson:"refreshToken,omitempty"`
	CreatedAt    int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt    int64                `json:"updatedAt" bson:"updatedAt"`
}

// PublicFields is the projection used whenever a user document is read for a response.
var PublicFields = map[string]interface{}{
	"password":     0,
	"refreshToken": 0,
}
