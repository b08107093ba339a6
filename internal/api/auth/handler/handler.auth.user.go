// Package authhdl exposes the account and session endpoints.
package authhdl

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "github.com/Dhairyash-1/videotube-api/internal/api/auth/dto"
	"github.com/Dhairyash-1/videotube-api/internal/api/auth/models"
	authsvc "github.com/Dhairyash-1/videotube-api/internal/api/auth/service"
	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	"github.com/Dhairyash-1/videotube-api/internal/api/middleware"
	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
	"github.com/Dhairyash-1/videotube-api/internal/storage/media"
)

// UserService is what the handler needs from authsvc.UserService.
type UserService interface {
	Register(ctx context.Context, input *authdto.RegisterInput, avatar, cover *media.LocalFile) (models.User, error)
	Login(ctx context.Context, input *authdto.LoginInput) (*authsvc.Session, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Logout(ctx context.Context, userID primitive.ObjectID) error
	FindPublic(ctx context.Context, id primitive.ObjectID) (models.User, error)
	ChangePassword(ctx context.Context, userID primitive.ObjectID, input *authdto.ChangePasswordInput) error
	UpdateAccount(ctx context.Context, userID primitive.ObjectID, input *authdto.UpdateAccountInput) (models.User, error)
	UpdateAvatar(ctx context.Context, userID primitive.ObjectID, file *media.LocalFile) (models.User, error)
	UpdateCoverImage(ctx context.Context, userID primitive.ObjectID, file *media.LocalFile) (models.User, error)
}

// CookieConfig controls the session cookies.
type CookieConfig struct {
	Secure        bool
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// UserHandler handles /users account and session routes.
type UserHandler struct {
	basehdl.BaseHandler
	users   UserService
	cookies CookieConfig
}

// NewUserHandler returns a UserHandler.
func NewUserHandler(users UserService, cookies CookieConfig) *UserHandler {
	return &UserHandler{users: users, cookies: cookies}
}

func (h *UserHandler) setSessionCookies(c fiber.Ctx, pair models.TokenPair) {
	now := time.Now()
	c.Cookie(h.cookie(middleware.AccessTokenCookie, pair.AccessToken, now.Add(h.cookies.AccessExpiry)))
	c.Cookie(h.cookie(middleware.RefreshTokenCookie, pair.RefreshToken, now.Add(h.cookies.RefreshExpiry)))
}

func (h *UserHandler) clearSessionCookies(c fiber.Ctx) {
	expired := time.Unix(0, 0)
	c.Cookie(h.cookie(middleware.AccessTokenCookie, "", expired))
	c.Cookie(h.cookie(middleware.RefreshTokenCookie, "", expired))
}

func (h *UserHandler) cookie(name, value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}

// HandleRegister creates an account from a multipart form with avatar and optional coverImage.
func (h *UserHandler) HandleRegister(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.RegisterInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		input.Normalize()
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.users.Register(c.Context(), &input,
			middleware.UploadedFile(c, "avatar"), middleware.UploadedFile(c, "coverImage"))
		if err == nil {
			logger.LogAction(c, "user_register", "user", user.ID.Hex(), nil)
		}
		h.HandleResponseWithMessage(c, common.StatusCreated, user, "User registered successfully", err)
		return nil
	})
}

// HandleLogin opens a session and sets the token cookies.
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.LoginInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		input.Normalize()
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		session, err := h.users.Login(c.Context(), &input)
		if err != nil {
			logger.LogAction(c, "user_login_failed", "user", "", map[string]interface{}{
				"username": input.Username,
				"email":    input.Email,
			})
			h.HandleResponse(c, nil, err)
			return nil
		}

		c.Locals(basehdl.LocalUserID, session.User.ID.Hex())
		logger.LogAction(c, "user_login", "user", session.User.ID.Hex(), nil)
		h.setSessionCookies(c, session.TokenPair)
		h.HandleResponseWithMessage(c, common.StatusOK, session, "User logged in successfully", nil)
		return nil
	})
}

// HandleRefreshToken rotates the session using the refresh cookie or body field.
func (h *UserHandler) HandleRefreshToken(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		token := c.Cookies(middleware.RefreshTokenCookie)
		if token == "" {
			var input authdto.RefreshInput
			if err := h.ParseRequestBody(c, &input); err != nil {
				h.HandleResponse(c, nil, err)
				return nil
			}
			token = strings.TrimSpace(input.RefreshToken)
		}

		pair, err := h.users.Refresh(c.Context(), token)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.setSessionCookies(c, pair)
		h.HandleResponseWithMessage(c, common.StatusOK, pair, "Access token refreshed", nil)
		return nil
	})
}

// HandleLogout ends the session of the current user.
func (h *UserHandler) HandleLogout(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		if err := h.users.Logout(c.Context(), userID); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAction(c, "user_logout", "user", userID.Hex(), nil)
		h.clearSessionCookies(c)
		h.HandleResponseWithMessage(c, common.StatusOK, nil, "User logged out", nil)
		return nil
	})
}

// HandleCurrentUser returns the authenticated user.
func (h *UserHandler) HandleCurrentUser(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		if user, ok := c.Locals(basehdl.LocalUser).(models.User); ok {
			h.HandleResponseWithMessage(c, common.StatusOK, user, "Current user fetched successfully", nil)
			return nil
		}
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.users.FindPublic(c.Context(), userID)
		h.HandleResponseWithMessage(c, common.StatusOK, user, "Current user fetched successfully", err)
		return nil
	})
}

// HandleChangePassword replaces the password of the current user.
func (h *UserHandler) HandleChangePassword(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input authdto.ChangePasswordInput
		if err := h.ParseAndValidate(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		err = h.users.ChangePassword(c.Context(), userID, &input)
		if err == nil {
			logger.LogAction(c, "user_change_password", "user", userID.Hex(), nil)
		}
		h.HandleResponseWithMessage(c, common.StatusOK, nil, "Password changed successfully", err)
		return nil
	})
}

// HandleUpdateAccount updates fullName and email.
func (h *UserHandler) HandleUpdateAccount(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input authdto.UpdateAccountInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		input.Normalize()
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		user, err := h.users.UpdateAccount(c.Context(), userID, &input)
		h.HandleResponseWithMessage(c, common.StatusOK, user, "Account details updated successfully", err)
		return nil
	})
}

// HandleUpdateAvatar replaces the avatar with the uploaded "avatar" file.
func (h *UserHandler) HandleUpdateAvatar(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.users.UpdateAvatar(c.Context(), userID, middleware.UploadedFile(c, "avatar"))
		h.HandleResponseWithMessage(c, common.StatusOK, user, "Avatar image updated successfully", err)
		return nil
	})
}

// HandleUpdateCoverImage replaces the cover image with the uploaded "coverImage" file.
func (h *UserHandler) HandleUpdateCoverImage(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID, err := h.CurrentUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.users.UpdateCoverImage(c.Context(), userID, middleware.UploadedFile(c, "coverImage"))
		h.HandleResponseWithMessage(c, common.StatusOK, user, "Cover image updated successfully", err)
		return nil
	})
}
