// Package playlisthdl exposes the playlist mutation endpoints.
package playlisthdl

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	playlistdto "github.com/Dhairyash-1/videotube-api/internal/api/playlist/dto"
	"github.com/Dhairyash-1/videotube-api/internal/api/playlist/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
)

// PlaylistService is what the handler needs from playlistsvc.PlaylistService.
type PlaylistService interface {
	Create(ctx context.Context, owner primitive.ObjectID, input *playlistdto.CreatePlaylistInput) (models.Playlist, error)
	Update(ctx context.Context, actor, id primitive.ObjectID, input *playlistdto.UpdatePlaylistInput) (models.Playlist, error)
	Delete(ctx context.Context, actor, id primitive.ObjectID) error
	AddVideo(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (models.Playlist, error)
	RemoveVideo(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (models.Playlist, error)
}

// PlaylistHandler handles the /playlist mutations.
type PlaylistHandler struct {
	basehdl.BaseHandler
	playlists PlaylistService
}

// NewPlaylistHandler returns a PlaylistHandler.
func NewPlaylistHandler(playlists PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlists: playlists}
}

// HandleCreate creates a playlist.
func (h *PlaylistHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input playlistdto.CreatePlaylistInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		input.Trim()
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		playlist, err := h.playlists.Create(c.Context(), userID, &input)
		h.HandleResponseWithMessage(c, common.StatusCreated, playlist, "Playlist created successfully", err)
		return nil
	})
}

// HandleUpdate renames :playlistId.
func (h *PlaylistHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		playlistID, err := h.ParamObjectID(c, "playlistId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input playlistdto.UpdatePlaylistInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		input.Trim()
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		playlist, err := h.playlists.Update(c.Context(), userID, playlistID, &input)
		h.HandleResponseWithMessage(c, common.StatusOK, playlist, "Playlist updated successfully", err)
		return nil
	})
}

// HandleDelete removes :playlistId.
func (h *PlaylistHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		playlistID, err := h.ParamObjectID(c, "playlistId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = h.playlists.Delete(c.Context(), userID, playlistID)
		h.HandleResponseWithMessage(c, common.StatusOK, nil, "Playlist deleted successfully", err)
		return nil
	})
}

// HandleAddVideo adds :videoId to :playlistId.
func (h *PlaylistHandler) HandleAddVideo(c fiber.Ctx) error {
	return h.handleMembership(c, h.playlists.AddVideo, "Video added to playlist successfully")
}

// HandleRemoveVideo removes :videoId from :playlistId.
func (h *PlaylistHandler) HandleRemoveVideo(c fiber.Ctx) error {
	return h.handleMembership(c, h.playlists.RemoveVideo, "Video removed from playlist successfully")
}

type membershipFunc func(ctx context.Context, actor, playlistID, videoID primitive.ObjectID) (models.Playlist, error)

func (h *PlaylistHandler) handleMembership(c fiber.Ctx, apply membershipFunc, message string) error {
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
		playlistID, err := h.ParamObjectID(c, "playlistId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		playlist, err := apply(c.Context(), userID, playlistID, videoID)
		h.HandleResponseWithMessage(c, common.StatusOK, playlist, message, err)
		return nil
	})
}
