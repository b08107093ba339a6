// Package router mounts the read-only view routes.
package router

import (
	"github.com/gofiber/fiber/v3"

	apirouter "github.com/Dhairyash-1/videotube-api/internal/api/router"
	viewhdl "github.com/Dhairyash-1/videotube-api/internal/api/view/handler"
)

// Register returns the RegisterFunc for the GET routes of every domain.
func Register(h *viewhdl.ViewHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		get := func(prefix, path string, handler fiber.Handler) {
			apirouter.RegisterRouteWithMiddleware(v1, prefix, fiber.MethodGet, path, r.Authenticated(), handler)
		}

		apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodGet, "/c/:username",
			[]fiber.Handler{r.Middlewares().OptionalAuth}, h.HandleChannelProfile)
		get("/users", "/history", h.HandleWatchHistory)

		get("/videos", "/", h.HandleListVideos)
		get("/videos", "/:videoId", h.HandleVideoDetail)

		get("/comments", "/:videoId", h.HandleVideoComments)

		get("/playlist", "/user/:userId", h.HandleUserPlaylists)
		get("/playlist", "/:playlistId", h.HandlePlaylistDetail)

		get("/dashboard", "/stats", h.HandleDashboardStats)
		get("/dashboard", "/videos", h.HandleDashboardVideos)

		get("/subscriptions", "/u/:channelId", h.HandleSubscribers)
		get("/subscriptions", "/c/:subscriberId", h.HandleSubscribedChannels)

		get("/likes", "/videos", h.HandleLikedVideos)
		get("/tweets", "/user/:userId", h.HandleUserTweets)
		return nil
	}
}
