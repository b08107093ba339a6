// Package router mounts the /videos mutation routes.
package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Dhairyash-1/videotube-api/internal/api/middleware"
	apirouter "github.com/Dhairyash-1/videotube-api/internal/api/router"
	videohdl "github.com/Dhairyash-1/videotube-api/internal/api/video/handler"
	"github.com/Dhairyash-1/videotube-api/internal/storage/media"
)

// Register returns the RegisterFunc for the video mutation routes.
func Register(h *videohdl.VideoHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		mw := r.Middlewares()

		publishUploads := middleware.UploadMiddleware(mw.UploadTmpDir,
			middleware.UploadField{Name: "videoFile", Label: "Video file", Kind: media.KindVideo, Required: true},
			middleware.UploadField{Name: "thumbnail", Label: "Thumbnail", Kind: media.KindImage, Required: true},
		)
		// the upload limiter runs before the files are received
		apirouter.RegisterRouteWithMiddleware(v1, "/videos", fiber.MethodPost, "/", r.Authenticated(mw.UploadLimit, publishUploads), h.HandlePublish)

		thumbnailUpload := middleware.UploadMiddleware(mw.UploadTmpDir,
			middleware.UploadField{Name: "thumbnail", Label: "Thumbnail", Kind: media.KindImage})
		apirouter.RegisterRouteWithMiddleware(v1, "/videos", fiber.MethodPatch, "/:videoId", r.Authenticated(thumbnailUpload), h.HandleUpdate)
		apirouter.RegisterRouteWithMiddleware(v1, "/videos", fiber.MethodDelete, "/:videoId", r.Authenticated(), h.HandleDelete)
		apirouter.RegisterRouteWithMiddleware(v1, "/videos", fiber.MethodPatch, "/toggle/publish/:videoId", r.Authenticated(), h.HandleTogglePublish)
		return nil
	}
}
