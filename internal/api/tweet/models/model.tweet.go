// Package models holds the tweet document.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Tweet is a short post on a channel.
type Tweet struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Content   string             `json:"content" bson:"content"`
	Owner     primitive.ObjectID `json:"owner" bson:"owner" index:"compound:tweet_owner_recent"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt" index:"compound:tweet_owner_recent,order:-1"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}
