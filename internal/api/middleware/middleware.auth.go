package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Dhairyash-1/videotube-api/internal/api/auth/models"
	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
)

// Session cookie names.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// Authenticator resolves an access token to the user it was issued for.
type Authenticator interface {
	Authenticate(ctx context.Context, accessToken string) (models.User, error)
}

// ExtractToken reads the access token from the cookie, then from "Authorization: Bearer".
func ExtractToken(c fiber.Ctx) string {
	if token := c.Cookies(AccessTokenCookie); token != "" {
		return token
	}
	authHeader := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

func setUser(c fiber.Ctx, user models.User) {
	c.Locals(basehdl.LocalUserID, user.ID.Hex())
	c.Locals(basehdl.LocalUser, user)
}

// AuthMiddleware rejects requests without a valid access token.
func AuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c fiber.Ctx) error {
		token := ExtractToken(c)
		if token == "" {
			logger.WithRequest(c).Debug("Missing access token")
			return basehdl.WriteError(c, common.ErrTokenMissing)
		}

		user, err := auth.Authenticate(c.Context(), token)
		if err != nil {
			logger.WithRequest(c).WithError(err).Debug("Access token rejected")
			return basehdl.WriteError(c, err)
		}

		setUser(c, user)
		return c.Next()
	}
}

// OptionalAuthMiddleware identifies the viewer when a valid token is present and
// lets anonymous requests through otherwise.
func OptionalAuthMiddleware(auth Authenticator) fiber.Handler {
	return func(c fiber.Ctx) error {
		if token := ExtractToken(c); token != "" {
			if user, err := auth.Authenticate(c.Context(), token); err == nil {
				setUser(c, user)
			}
		}
		return c.Next()
	}
}
