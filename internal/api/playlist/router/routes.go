// Package router mounts the /playlist mutation routes.
package router

import (
	"github.com/gofiber/fiber/v3"

	playlisthdl "github.com/Dhairyash-1/videotube-api/internal/api/playlist/handler"
	apirouter "github.com/Dhairyash-1/videotube-api/internal/api/router"
)

// Register returns the RegisterFunc for the playlist mutation routes.
func Register(h *playlisthdl.PlaylistHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		apirouter.RegisterRouteWithMiddleware(v1, "/playlist", fiber.MethodPost, "/", r.Authenticated(), h.HandleCreate)
		apirouter.RegisterRouteWithMiddleware(v1, "/playlist", fiber.MethodPatch, "/:playlistId", r.Authenticated(), h.HandleUpdate)
		apirouter.RegisterRouteWithMiddleware(v1, "/playlist", fiber.MethodDelete, "/:playlistId", r.Authenticated(), h.HandleDelete)
		apirouter.RegisterRouteWithMiddleware(v1, "/playlist", fiber.MethodPatch, "/add/:videoId/:playlistId", r.Authenticated(), h.HandleAddVideo)
		apirouter.RegisterRouteWithMiddleware(v1, "/playlist", fiber.MethodPatch, "/remove/:videoId/:playlistId", r.Authenticated(), h.HandleRemoveVideo)
		return nil
	}
}
