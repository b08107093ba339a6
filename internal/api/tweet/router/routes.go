// Package router mounts the /tweets mutation routes.
package router

import (
	"github.com/gofiber/fiber/v3"

	apirouter "github.com/Dhairyash-1/videotube-api/internal/api/router"
	tweethdl "github.com/Dhairyash-1/videotube-api/internal/api/tweet/handler"
)

// Register returns the RegisterFunc for the tweet mutation routes.
func Register(h *tweethdl.TweetHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		apirouter.RegisterRouteWithMiddleware(v1, "/tweets", fiber.MethodPost, "/", r.Authenticated(), h.HandleCreate)
		apirouter.RegisterRouteWithMiddleware(v1, "/tweets", fiber.MethodPatch, "/:tweetId", r.Authenticated(), h.HandleUpdate)
		apirouter.RegisterRouteWithMiddleware(v1, "/tweets", fiber.MethodDelete, "/:tweetId", r.Authenticated(), h.HandleDelete)
		return nil
	}
}
