// Package router mounts the /comments mutation routes.
package router

import (
	"github.com/gofiber/fiber/v3"

	commenthdl "github.com/Dhairyash-1/videotube-api/internal/api/comment/handler"
	apirouter "github.com/Dhairyash-1/videotube-api/internal/api/router"
)

// Register returns the RegisterFunc for the comment mutation routes.
func Register(h *commenthdl.CommentHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		apirouter.RegisterRouteWithMiddleware(v1, "/comments", fiber.MethodPost, "/:videoId", r.Authenticated(), h.HandleAdd)
		apirouter.RegisterRouteWithMiddleware(v1, "/comments", fiber.MethodPatch, "/c/:commentId", r.Authenticated(), h.HandleUpdate)
		apirouter.RegisterRouteWithMiddleware(v1, "/comments", fiber.MethodDelete, "/c/:commentId", r.Authenticated(), h.HandleDelete)
		return nil
	}
}
