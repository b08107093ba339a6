// Package tweethdl exposes the tweet mutation endpoints.
package tweethdl

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	tweetdto "github.com/Dhairyash-1/videotube-api/internal/api/tweet/dto"
	"github.com/Dhairyash-1/videotube-api/internal/api/tweet/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
)

// TweetService is what the handler needs from tweetsvc.TweetService.
type TweetService interface {
	Create(ctx context.Context, owner primitive.ObjectID, content string) (models.Tweet, error)
	Update(ctx context.Context, actor, id primitive.ObjectID, content string) (models.Tweet, error)
	Delete(ctx context.Context, actor, id primitive.ObjectID) error
}

// TweetHandler handles POST/PATCH/DELETE on /tweets.
type TweetHandler struct {
	basehdl.BaseHandler
	tweets TweetService
}

// NewTweetHandler returns a TweetHandler.
func NewTweetHandler(tweets TweetService) *TweetHandler {
	return &TweetHandler{tweets: tweets}
}

func (h *TweetHandler) parseInput(c fiber.Ctx) (*tweetdto.TweetInput, error) {
	var input tweetdto.TweetInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		return nil, err
	}
	input.Trim()
	if err := h.ValidateInput(&input); err != nil {
		return nil, err
	}
	return &input, nil
}

// HandleCreate posts a tweet.
func (h *TweetHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		input, err := h.parseInput(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		tweet, err := h.tweets.Create(c.Context(), userID, input.Content)
		h.HandleResponseWithMessage(c, common.StatusCreated, tweet, "Tweet created successfully", err)
		return nil
	})
}

// HandleUpdate edits :tweetId.
func (h *TweetHandler) HandleUpdate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		tweetID, err := h.ParamObjectID(c, "tweetId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		input, err := h.parseInput(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		tweet, err := h.tweets.Update(c.Context(), userID, tweetID, input.Content)
		h.HandleResponseWithMessage(c, common.StatusOK, tweet, "Tweet updated successfully", err)
		return nil
	})
}

// HandleDelete removes :tweetId.
func (h *TweetHandler) HandleDelete(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		tweetID, err := h.ParamObjectID(c, "tweetId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = h.tweets.Delete(c.Context(), userID, tweetID)
		h.HandleResponseWithMessage(c, common.StatusOK, nil, "Tweet deleted successfully", err)
		return nil
	})
}
