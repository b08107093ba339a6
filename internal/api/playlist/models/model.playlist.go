// Package models holds the playlist document.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Playlist is an owned set of videos.
type Playlist struct {
	ID          primitive.ObjectID   `json:"_id" bson:"_id,omitempty"`
	Name        string               `json:"name" bson:"name"`
	Description string               `json:"description" bson:"description"`
	Videos      []primitive.ObjectID `json:"videos" bson:"videos,omitempty" index:"single"`
	Owner       primitive.ObjectID   `json:"owner" bson:"owner" index:"single"`
	CreatedAt   int64                `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64                `json:"updatedAt" bson:"updatedAt"`
}
