// Package commenthdl exposes the comment mutation endpoints.
package commenthdl

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	commentdto "github.com/Dhairyash-1/videotube-api/internal/api/comment/dto"
	"github.com/Dhairyash-1/videotube-api/internal/api/comment/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
)

// CommentService is what the handler needs from commentsvc.CommentService.
type CommentService interface {
	Add(ctx context.Context, actor, videoID primitive.ObjectID, content string) (models.Comment, error)
	Update(ctx context.Context, actor, id primitive.ObjectID, content string) (models.Comment, error)
	Delete(ctx context.Context, actor, id primitive.ObjectID) error
}

// CommentHandler handles POST/PATCH/DELETE on /comments.
type CommentHandler struct {
	basehdl.BaseHandler
	comments CommentService
}

// NewCommentHandler returns a CommentHandler.
func NewCommentHandler(comments CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

func (h *CommentHandler) parse(c fiber.Ctx, param string) (primitive.ObjectID, primitive.ObjectID, *commentdto.CommentInput, error) {
	userID, err := h.CurrentUserID(c)
	if err != nil {
		return userID, primitive.NilObjectID, nil, err
	}
	id, err := h.ParamObjectID(c, param)
	if err != nil {
		return userID, id, nil, err
	}
	var input commentdto.CommentInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		return userID, id, nil, err
	}
	input.Trim()
	return userID, id, &input, h.ValidateInput(&input)
}

// HandleAdd comments on :videoId.
func (h *CommentHandler) HandleAdd(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, videoID, input, err := h.parse(c, "videoId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		comment, err := h.comments.Add(c.Context(), userID, videoID, input.Content)
		h.HandleResponseWithMessage(c, common.StatusCreated, comment, "Comment added successfully", err)
		return nil
	})
}

// HandleUpdate edits :commentId.
func (h *CommentHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, commentID, input, err := h.parse(c, "commentId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		comment, err := h.comments.Update(c.Context(), userID, commentID, input.Content)
		h.HandleResponseWithMessage(c, common.StatusOK, comment, "Comment updated successfully", err)
		return nil
	})
}

// HandleDelete removes :commentId.
func (h *CommentHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		commentID, err := h.ParamObjectID(c, "commentId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = h.comments.Delete(c.Context(), userID, commentID)
		h.HandleResponseWithMessage(c, common.StatusOK, nil, "Comment deleted successfully", err)
		return nil
	})
}
