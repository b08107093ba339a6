// Package models holds the read-only projections composed by the view service.
// None of them carries password, refreshToken or watchHistory.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dhairyash-1/videotube-api/internal/storage/media"
)

// OwnerSummary is the public part of a user embedded in other projections.
type OwnerSummary struct {
	ID       primitive.ObjectID `json:"_id" bson:"_id"`
	Username string             `json:"username" bson:"username"`
	FullName string             `json:"fullName" bson:"fullName"`
	Avatar   media.Ref          `json:"avatar" bson:"avatar"`
}

// ChannelProfile is a user seen as a channel.
type ChannelProfile struct {
	ID                        primitive.ObjectID `json:"_id" bson:"_id"`
	Username                  string             `json:"username" bson:"username"`
	Email                     string             `json:"email" bson:"email"`
	FullName                  string             `json:"fullName" bson:"fullName"`
	Avatar                    media.Ref          `json:"avatar" bson:"avatar"`
	CoverImage                *media.Ref         `json:"coverImage,omitempty" bson:"coverImage,omitempty"`
	SubscribersCount          int64              `json:"subscribersCount" bson:"subscribersCount"`
	ChannelsSubscribedToCount int64              `json:"channelsSubscribedToCount" bson:"channelsSubscribedToCount"`
	IsSubscribed              bool               `json:"isSubscribed" bson:"isSubscribed"`
	CreatedAt                 int64              `json:"createdAt" bson:"createdAt"`
}

// VideoOwner is the owner block of a video detail.
type VideoOwner struct {
	OwnerSummary     `bson:",inline"`
	SubscribersCount int64 `json:"subscribersCount" bson:"subscribersCount"`
	IsSubscribed     bool  `json:"isSubscribed" bson:"isSubscribed"`
}

// VideoDetail is a single video as shown on its watch page.
type VideoDetail struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	VideoFile   media.Ref          `json:"videoFile" bson:"videoFile"`
	Thumbnail   media.Ref          `json:"thumbnail" bson:"thumbnail"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Duration    float64            `json:"duration" bson:"duration"`
	Views       int64              `json:"views" bson:"views"`
	IsPublished bool               `json:"isPublished" bson:"isPublished"`
	Owner       VideoOwner         `json:"owner" bson:"owner"`
	LikesCount  int64              `json:"likesCount" bson:"likesCount"`
	IsLiked     bool               `json:"isLiked" bson:"isLiked"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}

// VideoCard is a video in a list.
type VideoCard struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	VideoFile   media.Ref          `json:"videoFile" bson:"videoFile"`
	Thumbnail   media.Ref          `json:"thumbnail" bson:"thumbnail"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Duration    float64            `json:"duration" bson:"duration"`
	Views       int64              `json:"views" bson:"views"`
	IsPublished bool               `json:"isPublished" bson:"isPublished"`
	Owner       *OwnerSummary      `json:"owner,omitempty" bson:"owner,omitempty"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
}

// ChannelVideo is one of the viewer's own videos on the dashboard.
type ChannelVideo struct {
	VideoCard  `bson:",inline"`
	LikesCount int64 `json:"likesCount" bson:"likesCount"`
	UpdatedAt  int64 `json:"updatedAt" bson:"updatedAt"`
}

// CommentView is a comment with its author and likes.
type CommentView struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Content    string             `json:"content" bson:"content"`
	Video      primitive.ObjectID `json:"video" bson:"video"`
	Owner      OwnerSummary       `json:"owner" bson:"owner"`
	LikesCount int64              `json:"likesCount" bson:"likesCount"`
	IsLiked    bool               `json:"isLiked" bson:"isLiked"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}

// TweetView is a tweet with its author and likes.
type TweetView struct {
	ID         primitive.ObjectID `json:"_id" bson:"_id"`
	Content    string             `json:"content" bson:"content"`
	Owner      OwnerSummary       `json:"owner" bson:"owner"`
	LikesCount int64              `json:"likesCount" bson:"likesCount"`
	IsLiked    bool               `json:"isLiked" bson:"isLiked"`
	CreatedAt  int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64              `json:"updatedAt" bson:"updatedAt"`
}

// PlaylistSummary is a playlist without its videos. Totals cover published videos only.
type PlaylistSummary struct {
	ID          primitive.ObjectID `json:"_id" bson:"_id"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	TotalVideos int64              `json:"totalVideos" bson:"totalVideos"`
	TotalViews  int64              `json:"totalViews" bson:"totalViews"`
	IsOwner     bool               `json:"isOwner" bson:"isOwner"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}

// PlaylistDetail is a playlist with its published videos and owner.
type PlaylistDetail struct {
	PlaylistSummary `bson:",inline"`
	Owner           OwnerSummary `json:"owner" bson:"owner"`
	Videos          []VideoCard  `json:"videos" bson:"videos"`
}

// DashboardStats are the totals of the viewer's channel.
type DashboardStats struct {
	SubscribersCount int64 `json:"subscribersCount" bson:"subscribersCount"`
	TotalVideos      int64 `json:"totalVideos" bson:"totalVideos"`
	TotalViews       int64 `json:"totalViews" bson:"totalViews"`
	TotalLikes       int64 `json:"totalLikes" bson:"totalLikes"`
}

// Subscriber is a user subscribed to a channel.
type Subscriber struct {
	OwnerSummary           `bson:",inline"`
	SubscribersCount       int64 `json:"subscribersCount" bson:"subscribersCount"`
	SubscribedToSubscriber bool  `json:"subscribedToSubscriber" bson:"subscribedToSubscriber"`
}

// SubscribedChannel is a channel a user subscribes to, with its newest published video.
type SubscribedChannel struct {
	OwnerSummary `bson:",inline"`
	LatestVideo  *VideoCard `json:"latestVideo" bson:"latestVideo,omitempty"`
}
