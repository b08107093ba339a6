// Package viewhdl serves the composed read-only views.
package viewhdl

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	basemodels "github.com/Dhairyash-1/videotube-api/internal/api/base/models"
	videodto "github.com/Dhairyash-1/videotube-api/internal/api/video/dto"
	"github.com/Dhairyash-1/videotube-api/internal/api/view/models"
	viewsvc "github.com/Dhairyash-1/videotube-api/internal/api/view/service"
	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/utility"
)

// ViewService is what the handler needs from viewsvc.ViewService.
type ViewService interface {
	ChannelProfile(ctx context.Context, username string, viewer primitive.ObjectID) (models.ChannelProfile, error)
	VideoDetail(ctx context.Context, videoID, viewer primitive.ObjectID) (models.VideoDetail, error)
	VideoComments(ctx context.Context, videoID, viewer primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[models.CommentView], error)
	PlaylistDetail(ctx context.Context, playlistID, viewer primitive.ObjectID) (models.PlaylistDetail, error)
	UserPlaylists(ctx context.Context, userID, viewer primitive.ObjectID) ([]models.PlaylistSummary, error)
	WatchHistory(ctx context.Context, viewer primitive.ObjectID) ([]models.VideoCard, error)
	DashboardStats(ctx context.Context, owner primitive.ObjectID) (models.DashboardStats, error)
	ChannelVideos(ctx context.Context, owner primitive.ObjectID) ([]models.ChannelVideo, error)
	Subscribers(ctx context.Context, channel primitive.ObjectID) ([]models.Subscriber, error)
	SubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]models.SubscribedChannel, error)
	LikedVideos(ctx context.Context, viewer primitive.ObjectID) ([]models.VideoCard, error)
	UserTweets(ctx context.Context, userID, viewer primitive.ObjectID) ([]models.TweetView, error)
	ListVideos(ctx context.Context, in viewsvc.VideoListing, caller primitive.ObjectID) (*basemodels.PaginateResult[models.VideoCard], error)
}

// ViewRecorder counts a view before the video detail is composed.
type ViewRecorder interface {
	RecordView(ctx context.Context, videoID, viewer primitive.ObjectID) error
}

// ViewHandler serves the GET routes.
type ViewHandler struct {
	basehdl.BaseHandler
	views    ViewService
	recorder ViewRecorder
}

// NewViewHandler returns a ViewHandler.
func NewViewHandler(views ViewService, recorder ViewRecorder) *ViewHandler {
	return &ViewHandler{views: views, recorder: recorder}
}

// serve writes whatever load returns under message.
func (h *ViewHandler) serve(c fiber.Ctx, message string, load func() (interface{}, error)) error {
	return h.SafeHandler(c, func() error {
		data, err := load()
		h.HandleResponseWithMessage(c, common.StatusOK, data, message, err)
		return nil
	})
}

// HandleChannelProfile serves GET /users/c/:username.
func (h *ViewHandler) HandleChannelProfile(c fiber.Ctx) error {
	return h.serve(c, "User channel fetched successfully", func() (interface{}, error) {
		return h.views.ChannelProfile(c.Context(), c.Params("username"), h.OptionalUserID(c))
	})
}

// HandleWatchHistory serves GET /users/history.
func (h *ViewHandler) HandleWatchHistory(c fiber.Ctx) error {
	return h.serve(c, "Watch history fetched successfully", func() (interface{}, error) {
		viewer, err := h.CurrentUserID(c)
		if err != nil {
			return nil, err
		}
		return h.views.WatchHistory(c.Context(), viewer)
	})
}

// HandleListVideos serves GET /videos.
func (h *ViewHandler) HandleListVideos(c fiber.Ctx) error {
	return h.serve(c, "Videos fetched successfully", func() (interface{}, error) {
		var query videodto.ListVideosQuery
		if err := c.Bind().Query(&query); err != nil {
			return nil, common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
		}
		if err := h.ValidateInput(&query); err != nil {
			return nil, err
		}

		listing := viewsvc.VideoListing{
			Query:    query.Query,
			SortBy:   query.SortBy,
			SortType: query.SortType,
		}
		listing.Page, listing.Limit = h.ParsePagination(c)
		if query.UserID != "" {
			listing.UserID = utility.String2ObjectID(query.UserID)
		}
		return h.views.ListVideos(c.Context(), listing, h.OptionalUserID(c))
	})
}

// HandleVideoDetail serves GET /videos/:videoId and counts the view.
func (h *ViewHandler) HandleVideoDetail(c fiber.Ctx) error {
	return h.serve(c, "Video fetched successfully", func() (interface{}, error) {
		videoID, err := h.ParamObjectID(c, "videoId")
		if err != nil {
			return nil, err
		}
		viewer := h.OptionalUserID(c)
		if err := h.recorder.RecordView(c.Context(), videoID, viewer); err != nil {
			return nil, err
		}
		return h.views.VideoDetail(c.Context(), videoID, viewer)
	})
}

// HandleVideoComments serves GET /comments/:videoId.
func (h *ViewHandler) HandleVideoComments(c fiber.Ctx) error {
	return h.serve(c, "Comments fetched successfully", func() (interface{}, error) {
		videoID, err := h.ParamObjectID(c, "videoId")
		if err != nil {
			return nil, err
		}
		page, limit := h.ParsePagination(c)
		return h.views.VideoComments(c.Context(), videoID, h.OptionalUserID(c), page, limit)
	})
}

// HandlePlaylistDetail serves GET /playlist/:playlistId.
func (h *ViewHandler) HandlePlaylistDetail(c fiber.Ctx) error {
	return h.serve(c, "Playlist fetched successfully", func() (interface{}, error) {
		playlistID, err := h.ParamObjectID(c, "playlistId")
		if err != nil {
			return nil, err
		}
		return h.views.PlaylistDetail(c.Context(), playlistID, h.OptionalUserID(c))
	})
}

// HandleUserPlaylists serves GET /playlist/user/:userId.
func (h *ViewHandler) HandleUserPlaylists(c fiber.Ctx) error {
	return h.serve(c, "User playlists fetched successfully", func() (interface{}, error) {
		userID, err := h.ParamObjectID(c, "userId")
		if err != nil {
			return nil, err
		}
		return h.views.UserPlaylists(c.Context(), userID, h.OptionalUserID(c))
	})
}

// HandleDashboardStats serves GET /dashboard/stats.
func (h *ViewHandler) HandleDashboardStats(c fiber.Ctx) error {
	return h.serve(c, "Channel stats fetched successfully", func() (interface{}, error) {
		owner, err := h.CurrentUserID(c)
		if err != nil {
			return nil, err
		}
		return h.views.DashboardStats(c.Context(), owner)
	})
}

// HandleDashboardVideos serves GET /dashboard/videos.
func (h *ViewHandler) HandleDashboardVideos(c fiber.Ctx) error {
	return h.serve(c, "Channel videos fetched successfully", func() (interface{}, error) {
		owner, err := h.CurrentUserID(c)
		if err != nil {
			return nil, err
		}
		return h.views.ChannelVideos(c.Context(), owner)
	})
}

// HandleSubscribers serves GET /subscriptions/u/:channelId.
func (h *ViewHandler) HandleSubscribers(c fiber.Ctx) error {
	return h.serve(c, "Subscribers fetched successfully", func() (interface{}, error) {
		channelID, err := h.ParamObjectID(c, "channelId")
		if err != nil {
			return nil, err
		}
		return h.views.Subscribers(c.Context(), channelID)
	})
}

// HandleSubscribedChannels serves GET /subscriptions/c/:subscriberId.
func (h *ViewHandler) HandleSubscribedChannels(c fiber.Ctx) error {
	return h.serve(c, "Subscribed channels fetched successfully", func() (interface{}, error) {
		subscriberID, err := h.ParamObjectID(c, "subscriberId")
		if err != nil {
			return nil, err
		}
		return h.views.SubscribedChannels(c.Context(), subscriberID)
	})
}

// HandleLikedVideos serves GET /likes/videos.
func (h *ViewHandler) HandleLikedVideos(c fiber.Ctx) error {
	return h.serve(c, "Liked videos fetched successfully", func() (interface{}, error) {
		viewer, err := h.CurrentUserID(c)
		if err != nil {
			return nil, err
		}
		return h.views.LikedVideos(c.Context(), viewer)
	})
}

// HandleUserTweets serves GET /tweets/user/:userId.
func (h *ViewHandler) HandleUserTweets(c fiber.Ctx) error {
	return h.serve(c, "Tweets fetched successfully", func() (interface{}, error) {
		userID, err := h.ParamObjectID(c, "userId")
		if err != nil {
			return nil, err
		}
		return h.views.UserTweets(c.Context(), userID, h.OptionalUserID(c))
	})
}
