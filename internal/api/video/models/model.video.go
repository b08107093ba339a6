// Package models holds the video document.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dhairyash-1/videotube-api/internal/storage/media"
)

// Video is an uploaded video. Views only ever grow.
type Video struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	VideoFile   media.Ref          `json:"videoFile" bson:"videoFile"`
	Thumbnail   media.Ref          `json:"thumbnail" bson:"thumbnail"`
	Owner       primitive.ObjectID `json:"owner" bson:"owner" index:"single;compound:video_owner_recent"`
	Title       string             `json:"title" bson:"title" index:"text,compound:video_search_text"`
	Description string             `json:"description" bson:"description" index:"text,compound:video_search_text"`
	Duration    float64            `json:"duration" bson:"duration"` // seconds
	Views       int64              `json:"views" bson:"views" index:"single,order:-1"`
	IsPublished bool               `json:"isPublished" bson:"isPublished" index:"single"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt" index:"compound:video_owner_recent,order:-1"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
