// Package viewsvc composes the read-only projections served by the GET routes.
// Counts and viewer flags are computed at read time from the edge collections.
package viewsvc

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/Dhairyash-1/videotube-api/internal/api/base/models"
	basesvc "github.com/Dhairyash-1/videotube-api/internal/api/base/service"
	"github.com/Dhairyash-1/videotube-api/internal/api/view/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/utility"
)

var (
	ErrChannelNotFound  = common.NotFound("Channel does not exist")
	ErrVideoNotFound    = common.NotFound("Video not found")
	ErrPlaylistNotFound = common.NotFound("Playlist not found")
	ErrUserNotFound     = common.NotFound("User not found")
)

// ViewService runs the projection pipelines.
type ViewService struct {
	users         *mongo.Collection
	videos        *mongo.Collection
	comments      *mongo.Collection
	playlists     *mongo.Collection
	subscriptions *mongo.Collection
	likes         *mongo.Collection
	tweets        *mongo.Collection
}

// NewViewService uses the collections of db named in global.MongoDB_ColNames.
func NewViewService(db *mongo.Database) *ViewService {
	return &ViewService{
		users:         db.Collection(colNames.Users),
		videos:        db.Collection(colNames.Videos),
		comments:      db.Collection(colNames.Comments),
		playlists:     db.Collection(colNames.Playlists),
		subscriptions: db.Collection(colNames.Subscriptions),
		likes:         db.Collection(colNames.Likes),
		tweets:        db.Collection(colNames.Tweets),
	}
}

func notFoundAs(err, replacement error) error {
	if errors.Is(err, common.ErrNotFound) {
		return replacement
	}
	return err
}

// facetResult is the single document produced by facetPage.
type facetResult[T any] struct {
	Items []T `bson:"items"`
	Total []struct {
		N int64 `bson:"n"`
	} `bson:"total"`
}

func (r facetResult[T]) page(page, limit int64) *basemodels.PaginateResult[T] {
	var total int64
	if len(r.Total) > 0 {
		total = r.Total[0].N
	}
	return basemodels.NewPaginateResult(r.Items, page, limit, total)
}

func aggregatePage[T any](ctx context.Context, collection *mongo.Collection, p mongo.Pipeline, page, limit int64) (*basemodels.PaginateResult[T], error) {
	result, err := basesvc.AggregateOne[facetResult[T]](ctx, collection, p)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	return result.page(page, limit), nil
}

func normalizePage(page, limit int64) (int64, int64) {
	if page < 1 {
		page = utility.DefaultPage
	}
	if limit < 1 {
		limit = utility.DefaultLimit
	}
	if limit > utility.MaxLimit {
		limit = utility.MaxLimit
	}
	return page, limit
}

// ChannelProfile returns the channel of username as seen by viewer.
func (s *ViewService) ChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (models.ChannelProfile, error) {
	if username == "" {
		return models.ChannelProfile{}, common.BadRequest("username is missing")
	}
	profile, err := basesvc.AggregateOne[models.ChannelProfile](ctx, s.users, ChannelProfilePipeline(username, viewer))
	return profile, notFoundAs(err, ErrChannelNotFound)
}

// VideoDetail returns one video visible to viewer.
func (s *ViewService) VideoDetail(ctx context.Context, videoID, viewer primitive.ObjectID) (models.VideoDetail, error) {
	video, err := basesvc.AggregateOne[models.VideoDetail](ctx, s.videos, VideoDetailPipeline(videoID, viewer))
	return video, notFoundAs(err, ErrVideoNotFound)
}

// VideoComments returns one page of the comments on a video visible to viewer, newest first.
func (s *ViewService) VideoComments(ctx context.Context, videoID, viewer primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[models.CommentView], error) {
	filter := visibleTo(viewer)
	filter["_id"] = videoID
	count, err := s.videos.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if count == 0 {
		return nil, ErrVideoNotFound
	}

	page, limit = normalizePage(page, limit)
	return aggregatePage[models.CommentView](ctx, s.comments, VideoCommentsPipeline(videoID, viewer, page, limit), page, limit)
}

// PlaylistDetail returns a playlist with its published videos.
func (s *ViewService) PlaylistDetail(ctx context.Context, playlistID, viewer primitive.ObjectID) (models.PlaylistDetail, error) {
	playlist, err := basesvc.AggregateOne[models.PlaylistDetail](ctx, s.playlists, PlaylistDetailPipeline(playlistID, viewer))
	if err == nil && playlist.Videos == nil {
		playlist.Videos = []models.VideoCard{}
	}
	return playlist, notFoundAs(err, ErrPlaylistNotFound)
}

// UserPlaylists returns every playlist of userID.
func (s *ViewService) UserPlaylists(ctx context.Context, userID, viewer primitive.ObjectID) ([]models.PlaylistSummary, error) {
	return basesvc.Aggregate[models.PlaylistSummary](ctx, s.playlists, UserPlaylistsPipeline(userID, viewer))
}

// WatchHistory returns the viewer's history most recent first. A video watched twice appears
// twice; videos deleted or hidden since are skipped.
func (s *ViewService) WatchHistory(ctx context.Context, viewer primitive.ObjectID) ([]models.VideoCard, error) {
	var user struct {
		WatchHistory []primitive.ObjectID `bson:"watchHistory"`
	}
	err := s.users.FindOne(ctx, bson.M{"_id": viewer}, options.FindOne().SetProjection(bson.M{"watchHistory": 1})).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	if len(user.WatchHistory) == 0 {
		return []models.VideoCard{}, nil
	}

	videos, err := basesvc.Aggregate[models.VideoCard](ctx, s.videos, WatchHistoryPipeline(user.WatchHistory, viewer))
	if err != nil {
		return nil, err
	}
	return orderByIDs(user.WatchHistory, videos), nil
}

// orderByIDs lays videos out in the order of ids, repeating and skipping as ids do.
func orderByIDs(ids []primitive.ObjectID, videos []models.VideoCard) []models.VideoCard {
	byID := make(map[primitive.ObjectID]models.VideoCard, len(videos))
	for _, v := range videos {
		byID[v.ID] = v
	}
	ordered := make([]models.VideoCard, 0, len(ids))
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			ordered = append(ordered, v)
		}
	}
	return ordered
}

// DashboardStats returns the totals of owner's channel.
func (s *ViewService) DashboardStats(ctx context.Context, owner primitive.ObjectID) (models.DashboardStats, error) {
	var stats models.DashboardStats

	subscribers, err := s.subscriptions.CountDocuments(ctx, bson.M{"channel": owner})
	if err != nil {
		return stats, common.ConvertMongoError(err)
	}

	totals, err := basesvc.AggregateOne[models.DashboardStats](ctx, s.videos, DashboardTotalsPipeline(owner))
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return stats, err
	}
	stats = totals
	stats.SubscribersCount = subscribers
	return stats, nil
}

// ChannelVideos returns every video of owner, published or not.
func (s *ViewService) ChannelVideos(ctx context.Context, owner primitive.ObjectID) ([]models.ChannelVideo, error) {
	return basesvc.Aggregate[models.ChannelVideo](ctx, s.videos, ChannelVideosPipeline(owner))
}

// Subscribers returns the subscribers of channel.
func (s *ViewService) Subscribers(ctx context.Context, channel primitive.ObjectID) ([]models.Subscriber, error) {
	return basesvc.Aggregate[models.Subscriber](ctx, s.subscriptions, SubscribersPipeline(channel))
}

// SubscribedChannels returns the channels subscriber follows.
func (s *ViewService) SubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]models.SubscribedChannel, error) {
	return basesvc.Aggregate[models.SubscribedChannel](ctx, s.subscriptions, SubscribedChannelsPipeline(subscriber))
}

// LikedVideos returns the videos viewer liked, newest like first.
func (s *ViewService) LikedVideos(ctx context.Context, viewer primitive.ObjectID) ([]models.VideoCard, error) {
	return basesvc.Aggregate[models.VideoCard](ctx, s.likes, LikedVideosPipeline(viewer))
}

// UserTweets returns the tweets of userID, newest first.
func (s *ViewService) UserTweets(ctx context.Context, userID, viewer primitive.ObjectID) ([]models.TweetView, error) {
	return basesvc.Aggregate[models.TweetView](ctx, s.tweets, UserTweetsPipeline(userID, viewer))
}

// ListVideos returns one page of the video listing.
func (s *ViewService) ListVideos(ctx context.Context, in VideoListing, caller primitive.ObjectID) (*basemodels.PaginateResult[models.VideoCard], error) {
	in.Page, in.Limit = normalizePage(in.Page, in.Limit)
	return aggregatePage[models.VideoCard](ctx, s.videos, VideoListingPipeline(in, caller), in.Page, in.Limit)
}
