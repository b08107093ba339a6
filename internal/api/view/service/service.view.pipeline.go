package viewsvc

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Dhairyash-1/videotube-api/internal/global"
)

var colNames = global.MongoDB_ColNames

// ownerSummaryFields is the public projection of an embedded user.
var ownerSummaryFields = bson.D{
	{Key: "username", Value: 1},
	{Key: "fullName", Value: 1},
	{Key: "avatar", Value: 1},
}

// videoCardFields is the projection of a video in a list.
var videoCardFields = bson.D{
	{Key: "videoFile", Value: 1},
	{Key: "thumbnail", Value: 1},
	{Key: "title", Value: 1},
	{Key: "description", Value: 1},
	{Key: "duration", Value: 1},
	{Key: "views", Value: 1},
	{Key: "isPublished", Value: 1},
	{Key: "owner", Value: 1},
	{Key: "createdAt", Value: 1},
}

// viewerIn is true when viewer appears in the array at path; always false for anonymous viewers.
func viewerIn(viewer primitive.ObjectID, path string) interface{} {
	if viewer.IsZero() {
		return false
	}
	return bson.M{"$in": bson.A{viewer, path}}
}

// visibleTo matches published videos, plus unpublished ones owned by viewer.
func visibleTo(viewer primitive.ObjectID) bson.M {
	if viewer.IsZero() {
		return bson.M{"isPublished": true}
	}
	return bson.M{"$or": bson.A{bson.M{"isPublished": true}, bson.M{"owner": viewer}}}
}

func matchExprID(variable string) bson.D {
	return bson.D{{Key: "$match", Value: bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$" + variable}}}}}
}

func first(path string) bson.M {
	return bson.M{"$arrayElemAt": bson.A{path, 0}}
}

func size(path string) bson.M {
	return bson.M{"$size": bson.M{"$ifNull": bson.A{path, bson.A{}}}}
}

// ownerStages replaces the owner id at field with the owner's public summary.
func ownerStages(field string) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: colNames.Users},
			{Key: "let", Value: bson.M{"ownerId": "$" + field}},
			{Key: "pipeline", Value: mongo.Pipeline{
				matchExprID("ownerId"),
				{{Key: "$project", Value: ownerSummaryFields}},
			}},
			{Key: "as", Value: field},
		}}},
		{{Key: "$addFields", Value: bson.M{field: first("$" + field)}}},
	}
}

// likeStages adds likesCount and isLiked for likes whose target field points at the document.
func likeStages(target string, viewer primitive.ObjectID) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: colNames.Likes},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: target},
			{Key: "as", Value: "likes"},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"likesCount": size("$likes"),
			"isLiked":    viewerIn(viewer, "$likes.likedBy"),
		}}},
		{{Key: "$project", Value: bson.M{"likes": 0}}},
	}
}

func pipeline(parts ...[]bson.D) mongo.Pipeline {
	var p mongo.Pipeline
	for _, part := range parts {
		p = append(p, part...)
	}
	return p
}

func stage(key string, value interface{}) []bson.D {
	return []bson.D{{{Key: key, Value: value}}}
}

// ChannelProfilePipeline runs on users. Usernames are stored lowercase, so the lookup is
// case-insensitive.
func ChannelProfilePipeline(username string, viewer primitive.ObjectID) mongo.Pipeline {
	return pipeline(
		stage("$match", bson.M{"username": strings.ToLower(strings.TrimSpace(username))}),
		stage("$lookup", bson.D{
			{Key: "from", Value: colNames.Subscriptions},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "channel"},
			{Key: "as", Value: "subscribers"},
		}),
		stage("$lookup", bson.D{
			{Key: "from", Value: colNames.Subscriptions},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "subscriber"},
			{Key: "as", Value: "subscribedTo"},
		}),
		stage("$addFields", bson.M{
			"subscribersCount":          size("$subscribers"),
			"channelsSubscribedToCount": size("$subscribedTo"),
			"isSubscribed":              viewerIn(viewer, "$subscribers.subscriber"),
		}),
		stage("$project", bson.D{
			{Key: "username", Value: 1},
			{Key: "email", Value: 1},
			{Key: "fullName", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "coverImage", Value: 1},
			{Key: "subscribersCount", Value: 1},
			{Key: "channelsSubscribedToCount", Value: 1},
			{Key: "isSubscribed", Value: 1},
			{Key: "createdAt", Value: 1},
		}),
	)
}

// VideoDetailPipeline runs on videos. It yields nothing for videos viewer may not see.
func VideoDetailPipeline(videoID, viewer primitive.ObjectID) mongo.Pipeline {
	match := visibleTo(viewer)
	match["_id"] = videoID

	ownerPipeline := pipeline(
		[]bson.D{matchExprID("ownerId")},
		stage("$lookup", bson.D{
			{Key: "from", Value: colNames.Subscriptions},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "channel"},
			{Key: "as", Value: "subscribers"},
		}),
		stage("$addFields", bson.M{
			"subscribersCount": size("$subscribers"),
			"isSubscribed":     viewerIn(viewer, "$subscribers.subscriber"),
		}),
		stage("$project", bson.D{
			{Key: "username", Value: 1},
			{Key: "fullName", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "subscribersCount", Value: 1},
			{Key: "isSubscribed", Value: 1},
		}),
	)

	return pipeline(
		stage("$match", match),
		stage("$lookup", bson.D{
			{Key: "from", Value: colNames.Users},
			{Key: "let", Value: bson.M{"ownerId": "$owner"}},
			{Key: "pipeline", Value: ownerPipeline},
			{Key: "as", Value: "owner"},
		}),
		stage("$addFields", bson.M{"owner": first("$owner")}),
		likeStages("video", viewer),
	)
}

// facetPage splits a sorted pipeline into one page of items and the total count.
func facetPage(page, limit int64, itemStages ...[]bson.D) []bson.D {
	items := pipeline(
		stage("$skip", (page-1)*limit),
		stage("$limit", limit),
	)
	items = append(items, pipeline(itemStages...)...)
	return stage("$facet", bson.D{
		{Key: "items", Value: items},
		{Key: "total", Value: mongo.Pipeline{{{Key: "$count", Value: "n"}}}},
	})
}

// VideoCommentsPipeline runs on comments and yields a single facet document.
func VideoCommentsPipeline(videoID, viewer primitive.ObjectID, page, limit int64) mongo.Pipeline {
	return pipeline(
		stage("$match", bson.M{"video": videoID}),
		stage("$sort", bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}),
		facetPage(page, limit,
			ownerStages("owner"),
			likeStages("comment", viewer),
		),
	)
}

// publishedVideosLookup joins the published videos listed in the playlist's videos array.
func publishedVideosLookup(projection bson.D, withOwner bool) []bson.D {
	videos := pipeline(
		stage("$match", bson.M{
			"$expr":       bson.M{"$in": bson.A{"$_id", bson.M{"$ifNull": bson.A{"$$ids", bson.A{}}}}},
			"isPublished": true,
		}),
		stage("$sort", bson.D{{Key: "createdAt", Value: -1}}),
		stage("$project", projection),
	)
	if withOwner {
		videos = append(videos, ownerStages("owner")...)
	}
	return stage("$lookup", bson.D{
		{Key: "from", Value: colNames.Videos},
		{Key: "let", Value: bson.M{"ids": "$videos"}},
		{Key: "pipeline", Value: videos},
		{Key: "as", Value: "videos"},
	})
}

func playlistTotals(viewer primitive.ObjectID) []bson.D {
	isOwner := interface{}(false)
	if !viewer.IsZero() {
		isOwner = bson.M{"$eq": bson.A{"$owner", viewer}}
	}
	return stage("$addFields", bson.M{
		"totalVideos": size("$videos"),
		"totalViews":  bson.M{"$sum": "$videos.views"},
		"isOwner":     isOwner,
	})
}

// PlaylistDetailPipeline runs on playlists. Unpublished member videos are left out, including
// the viewer's own.
func PlaylistDetailPipeline(playlistID, viewer primitive.ObjectID) mongo.Pipeline {
	return pipeline(
		stage("$match", bson.M{"_id": playlistID}),
		publishedVideosLookup(videoCardFields, true),
		playlistTotals(viewer),
		ownerStages("owner"),
	)
}

// UserPlaylistsPipeline runs on playlists.
func UserPlaylistsPipeline(userID, viewer primitive.ObjectID) mongo.Pipeline {
	return pipeline(
		stage("$match", bson.M{"owner": userID}),
		publishedVideosLookup(bson.D{{Key: "views", Value: 1}}, false),
		playlistTotals(viewer),
		stage("$project", bson.M{"videos": 0}),
		stage("$sort", bson.D{{Key: "updatedAt", Value: -1}}),
	)
}

// WatchHistoryPipeline runs on videos and yields the distinct history videos in no particular
// order; the caller restores the stored order.
func WatchHistoryPipeline(ids []primitive.ObjectID, viewer primitive.ObjectID) mongo.Pipeline {
	match := visibleTo(viewer)
	match["_id"] = bson.M{"$in": ids}
	return pipeline(
		stage("$match", match),
		stage("$project", videoCardFields),
		ownerStages("owner"),
	)
}

// DashboardTotalsPipeline runs on videos and yields at most one document with
// totalVideos, totalViews and totalLikes.
func DashboardTotalsPipeline(owner primitive.ObjectID) mongo.Pipeline {
	return pipeline(
		stage("$match", bson.M{"owner": owner}),
		stage("$lookup", bson.D{
			{Key: "from", Value: colNames.Likes},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "video"},
			{Key: "as", Value: "likes"},
		}),
		stage("$group", bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalVideos", Value: bson.M{"$sum": 1}},
			{Key: "totalViews", Value: bson.M{"$sum": "$views"}},
			{Key: "totalLikes", Value: bson.M{"$sum": size("$likes")}},
		}),
	)
}

// ChannelVideosPipeline runs on videos: every video of owner, newest first.
func ChannelVideosPipeline(owner primitive.ObjectID) mongo.Pipeline {
	return pipeline(
		stage("$match", bson.M{"owner": owner}),
		stage("$sort", bson.D{{Key: "createdAt", Value: -1}}),
		likeStages("video", primitive.NilObjectID),
		stage("$project", bson.M{"isLiked": 0, "owner": 0}),
	)
}

// SubscribersPipeline runs on subscriptions and yields the subscribers of channel.
func SubscribersPipeline(channel primitive.ObjectID) mongo.Pipeline {
	subscriber := pipeline(
		[]bson.D{matchExprID("subscriberId")},
		stage("$lookup", bson.D{
			{Key: "from", Value: colNames.Subscriptions},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "channel"},
			{Key: "as", Value: "subscribers"},
		}),
		stage("$addFields", bson.M{
			"subscribersCount":       size("$subscribers"),
			"subscribedToSubscriber": bson.M{"$in": bson.A{channel, "$subscribers.subscriber"}},
		}),
		stage("$project", bson.D{
			{Key: "username", Value: 1},
			{Key: "fullName", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "subscribersCount", Value: 1},
			{Key: "subscribedToSubscriber", Value: 1},
		}),
	)

	return pipeline(
		stage("$match", bson.M{"channel": channel}),
		stage("$sort", bson.D{{Key: "createdAt", Value: -1}}),
		stage("$lookup", bson.D{
			{Key: "from", Value: colNames.Users},
			{Key: "let", Value: bson.M{"subscriberId": "$subscriber"}},
			{Key: "pipeline", Value: subscriber},
			{Key: "as", Value: "subscriber"},
		}),
		stage("$unwind", "$subscriber"),
		stage("$replaceRoot", bson.M{"newRoot": "$subscriber"}),
	)
}

// SubscribedChannelsPipeline runs on subscriptions and yields the channels subscriber follows,
// each with its newest published video.
func SubscribedChannelsPipeline(subscriber primitive.ObjectID) mongo.Pipeline {
	latest := pipeline(
		stage("$match", bson.M{
			"$expr":       bson.M{"$eq": bson.A{"$owner", "$$channelId"}},
			"isPublished": true,
		}),
		stage("$sort", bson.D{{Key: "createdAt", Value: -1}}),
		stage("$limit", 1),
		stage("$project", videoCardFields),
		stage("$project", bson.M{"owner": 0}),
	)

	channel := pipeline(
		[]bson.D{matchExprID("channelId")},
		stage("$lookup", bson.D{
			{Key: "from", Value: colNames.Videos},
			{Key: "let", Value: bson.M{"channelId": "$_id"}},
			{Key: "pipeline", Value: latest},
			{Key: "as", Value: "latestVideo"},
		}),
		stage("$addFields", bson.M{"latestVideo": first("$latestVideo")}),
		stage("$project", bson.D{
			{Key: "username", Value: 1},
			{Key: "fullName", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "latestVideo", Value: 1},
		}),
	)

	return pipeline(
		stage("$match", bson.M{"subscriber": subscriber}),
		stage("$sort", bson.D{{Key: "createdAt", Value: -1}}),
		stage("$lookup", bson.D{
			{Key: "from", Value: colNames.Users},
			{Key: "let", Value: bson.M{"channelId": "$channel"}},
			{Key: "pipeline", Value: channel},
			{Key: "as", Value: "channel"},
		}),
		stage("$unwind", "$channel"),
		stage("$replaceRoot", bson.M{"newRoot": "$channel"}),
	)
}

// LikedVideosPipeline runs on likes and yields the videos viewer liked, newest like first.
// Likes of deleted or hidden videos are skipped.
func LikedVideosPipeline(viewer primitive.ObjectID) mongo.Pipeline {
	video := pipeline(
		[]bson.D{matchExprID("videoId")},
		stage("$match", visibleTo(viewer)),
		stage("$project", videoCardFields),
		ownerStages("owner"),
	)

	return pipeline(
		stage("$match", bson.M{"likedBy": viewer, "video": bson.M{"$exists": true}}),
		stage("$sort", bson.D{{Key: "createdAt", Value: -1}}),
		stage("$lookup", bson.D{
			{Key: "from", Value: colNames.Videos},
			{Key: "let", Value: bson.M{"videoId": "$video"}},
			{Key: "pipeline", Value: video},
			{Key: "as", Value: "video"},
		}),
		stage("$unwind", "$video"),
		stage("$replaceRoot", bson.M{"newRoot": "$video"}),
	)
}

// UserTweetsPipeline runs on tweets.
func UserTweetsPipeline(userID, viewer primitive.ObjectID) mongo.Pipeline {
	return pipeline(
		stage("$match", bson.M{"owner": userID}),
		stage("$sort", bson.D{{Key: "createdAt", Value: -1}}),
		ownerStages("owner"),
		likeStages("tweet", viewer),
	)
}

// VideoListing are the parsed query parameters of the video listing.
type VideoListing struct {
	Page     int64
	Limit    int64
	Query    string
	SortBy   string
	SortType string
	UserID   primitive.ObjectID
}

// ListingFilter lists published videos, narrowed to one channel when UserID is set. A caller
// listing their own channel also sees their unpublished videos.
func ListingFilter(in VideoListing, caller primitive.ObjectID) bson.D {
	var filter bson.D
	if q := strings.TrimSpace(in.Query); q != "" {
		filter = append(filter, bson.E{Key: "$text", Value: bson.M{"$search": q}})
	}
	if !in.UserID.IsZero() {
		filter = append(filter, bson.E{Key: "owner", Value: in.UserID})
	}
	if in.UserID.IsZero() || in.UserID != caller {
		filter = append(filter, bson.E{Key: "isPublished", Value: true})
	}
	if filter == nil {
		filter = bson.D{}
	}
	return filter
}

// ListingSort defaults to newest first.
func ListingSort(in VideoListing) bson.D {
	field := in.SortBy
	switch field {
	case "createdAt", "views", "duration":
	default:
		field = "createdAt"
	}
	order := -1
	if in.SortType == "asc" {
		order = 1
	}
	return bson.D{{Key: field, Value: order}, {Key: "_id", Value: order}}
}

// VideoListingPipeline runs on videos and yields a single facet document.
func VideoListingPipeline(in VideoListing, caller primitive.ObjectID) mongo.Pipeline {
	return pipeline(
		stage("$match", ListingFilter(in, caller)),
		stage("$sort", ListingSort(in)),
		facetPage(in.Page, in.Limit,
			stage("$project", videoCardFields),
			ownerStages("owner"),
		),
	)
}
