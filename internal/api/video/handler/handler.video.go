// Package videohdl exposes the video mutation endpoints.
package videohdl

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	"github.com/Dhairyash-1/videotube-api/internal/api/middleware"
	videodto "github.com/Dhairyash-1/videotube-api/internal/api/video/dto"
	"github.com/Dhairyash-1/videotube-api/internal/api/video/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
	"github.com/Dhairyash-1/videotube-api/internal/storage/media"
)

// VideoService is what the handler needs from videosvc.VideoService.
type VideoService interface {
	Publish(ctx context.Context, owner primitive.ObjectID, input *videodto.PublishVideoInput, videoFile, thumbnail *media.LocalFile) (models.Video, error)
	Update(ctx context.Context, actor, id primitive.ObjectID, input *videodto.UpdateVideoInput, thumbnail *media.LocalFile) (models.Video, error)
	Delete(ctx context.Context, actor, id primitive.ObjectID) error
	TogglePublish(ctx context.Context, actor, id primitive.ObjectID) (models.Video, error)
}

// VideoHandler handles POST/PATCH/DELETE on /videos.
type VideoHandler struct {
	basehdl.BaseHandler
	videos VideoService
}

// NewVideoHandler returns a VideoHandler.
func NewVideoHandler(videos VideoService) *VideoHandler {
	return &VideoHandler{videos: videos}
}

// HandlePublish uploads a video with its thumbnail.
func (h *VideoHandler) HandlePublish(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input videodto.PublishVideoInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		input.Trim()
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		video, err := h.videos.Publish(c.Context(), userID, &input,
			middleware.UploadedFile(c, "videoFile"), middleware.UploadedFile(c, "thumbnail"))
		if err == nil {
			logger.LogAction(c, "video_publish", "video", video.ID.Hex(), nil)
		}
		h.HandleResponseWithMessage(c, common.StatusCreated, video, "Video published successfully", err)
		return nil
	})
}

// HandleUpdate changes title, description or thumbnail.
func (h *VideoHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		videoID, err := h.ParamObjectID(c, "videoId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		var input videodto.UpdateVideoInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		input.Trim()
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		video, err := h.videos.Update(c.Context(), userID, videoID, &input, middleware.UploadedFile(c, "thumbnail"))
		h.HandleResponseWithMessage(c, common.StatusOK, video, "Video updated successfully", err)
		return nil
	})
}

// HandleDelete removes a video and what depends on it.
func (h *VideoHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		videoID, err := h.ParamObjectID(c, "videoId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.videos.Delete(c.Context(), userID, videoID)
		if err == nil {
			logger.LogAction(c, "video_delete", "video", videoID.Hex(), nil)
		}
		h.HandleResponseWithMessage(c, common.StatusOK, nil, "Video deleted successfully", err)
		return nil
	})
}

// HandleTogglePublish flips the publish status.
func (h *VideoHandler) HandleTogglePublish(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		videoID, err := h.ParamObjectID(c, "videoId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		video, err := h.videos.TogglePublish(c.Context(), userID, videoID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponseWithMessage(c, common.StatusOK, fiber.Map{"isPublished": video.IsPublished},
			"Video publish status toggled successfully", nil)
		return nil
	})
}
