// Package models holds the comment document.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Comment is a viewer's comment on a video.
type Comment struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content"`
	Video     primitive.ObjectID `json:"video" bson:"video" index:"compound:comment_video_recent"`
	Owner     primitive.ObjectID `json:"owner" bson:"owner" index:"single"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt" index:"compound:comment_video_recent,order:-1"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
