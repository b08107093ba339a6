// Package router mounts the /users account routes.
package router

import (
	"github.com/gofiber/fiber/v3"

	authhdl "github.com/Dhairyash-1/videotube-api/internal/api/auth/handler"
	"github.com/Dhairyash-1/videotube-api/internal/api/middleware"
	apirouter "github.com/Dhairyash-1/videotube-api/internal/api/router"
	"github.com/Dhairyash-1/videotube-api/internal/storage/media"
)

// Register returns the RegisterFunc for the account routes.
func Register(h *authhdl.UserHandler) apirouter.RegisterFunc {
	return func(v1 fiber.Router, r *apirouter.Router) error {
		mw := r.Middlewares()

		registerUploads := middleware.UploadMiddleware(mw.UploadTmpDir,
			middleware.UploadField{Name: "avatar", Label: "Avatar", Kind: media.KindImage, Required: true},
			middleware.UploadField{Name: "coverImage", Label: "Cover image", Kind: media.KindImage},
		)
		apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPost, "/register", []fiber.Handler{registerUploads}, h.HandleRegister)
		apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPost, "/login", nil, h.HandleLogin)
		apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPost, "/refresh-token", nil, h.HandleRefreshToken)

		apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPost, "/logout", r.Authenticated(), h.HandleLogout)
		apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodGet, "/current-user", r.Authenticated(), h.HandleCurrentUser)
		apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPost, "/change-password", r.Authenticated(), h.HandleChangePassword)
		apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPatch, "/update-account", r.Authenticated(), h.HandleUpdateAccount)

		avatarUpload := middleware.UploadMiddleware(mw.UploadTmpDir,
			middleware.UploadField{Name: "avatar", Label: "Avatar", Kind: media.KindImage, Required: true})
		apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPatch, "/avatar", r.Authenticated(avatarUpload), h.HandleUpdateAvatar)

		coverUpload := middleware.UploadMiddleware(mw.UploadTmpDir,
			middleware.UploadField{Name: "coverImage", Label: "Cover image", Kind: media.KindImage, Required: true})
		apirouter.RegisterRouteWithMiddleware(v1, "/users", fiber.MethodPatch, "/cover-image", r.Authenticated(coverUpload), h.HandleUpdateCoverImage)
		return nil
	}
}
