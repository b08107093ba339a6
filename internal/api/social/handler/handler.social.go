// Package socialhdl exposes the like and subscription toggles.
package socialhdl

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	"github.com/Dhairyash-1/videotube-api/internal/api/social/models"
	"github.com/Dhairyash-1/videotube-api/internal/common"
)

// LikeToggler is what the handler needs from socialsvc.LikeService.
type LikeToggler interface {
	Toggle(ctx context.Context, kind models.TargetKind, actor, id primitive.ObjectID) (bool, error)
}

// SubscriptionToggler is what the handler needs from socialsvc.SubscriptionService.
type SubscriptionToggler interface {
	Toggle(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error)
}

// SocialHandler handles the toggle routes.
type SocialHandler struct {
	basehdl.BaseHandler
	likes         LikeToggler
	subscriptions SubscriptionToggler
}

// NewSocialHandler returns a SocialHandler.
func NewSocialHandler(likes LikeToggler, subscriptions SubscriptionToggler) *SocialHandler {
	return &SocialHandler{likes: likes, subscriptions: subscriptions}
}

// HandleToggleLike returns a handler toggling a like on the target named by param.
func (h *SocialHandler) HandleToggleLike(kind models.TargetKind, param string) fiber.Handler {
	return func(c fiber.Ctx) error {
		return h.SafeHandler(c, func() error {
			userID, err := h.CurrentUserID(c)
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			targetID, err := h.ParamObjectID(c, param)
			if err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}

			liked, err := h.likes.Toggle(c.Context(), kind, userID, targetID)
			message := "Like removed successfully"
			if liked {
				message = "Like added successfully"
			}
			h.HandleResponseWithMessage(c, common.StatusOK, fiber.Map{"isLiked": liked}, message, err)
			return nil
		})
	}
}

// HandleToggleSubscription toggles the subscription to :channelId.
func (h *SocialHandler) HandleToggleSubscription(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		channelID, err := h.ParamObjectID(c, "channelId")
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		subscribed, err := h.subscriptions.Toggle(c.Context(), userID, channelID)
		message := "Unsubscribed successfully"
		if subscribed {
			message = "Subscribed successfully"
		}
		h.HandleResponseWithMessage(c, common.StatusOK, fiber.Map{"isSubscribed": subscribed}, message, err)
		return nil
	})
}
