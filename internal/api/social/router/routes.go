// Package router mounts the like and subscription toggle routes.
package router

import (
	"github.com/gofiber/fiber/v3"

	apirouter "github.com/Dhairyash-1/videotube-api/internal/api/router"
	socialhdl "github.com/Dhairyash-1/videotube-api/internal/api/social/handler"
	"github.com/Dhairyash-1/videotube-api/internal/api/social/models"
)

// Register returns the RegisterFunc for the toggle routes.
func Register(h *socialhdl.SocialHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		apirouter.RegisterRouteWithMiddleware(v1, "/likes", fiber.MethodPost, "/toggle/v/:videoId", r.Authenticated(), h.HandleToggleLike(models.TargetVideo, "videoId"))
		apirouter.RegisterRouteWithMiddleware(v1, "/likes", fiber.MethodPost, "/toggle/c/:commentId", r.Authenticated(), h.HandleToggleLike(models.TargetComment, "commentId"))
		apirouter.RegisterRouteWithMiddleware(v1, "/likes", fiber.MethodPost, "/toggle/t/:tweetId", r.Authenticated(), h.HandleToggleLike(models.TargetTweet, "tweetId"))
		apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", fiber.MethodPost, "/c/:channelId", r.Authenticated(), h.HandleToggleSubscription)
		return nil
	}
}
