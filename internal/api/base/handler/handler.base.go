// Package basehdl holds the request parsing and response helpers shared by the domain handlers.
package basehdl

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/global"
	"github.com/Dhairyash-1/videotube-api/internal/utility"
)

// Locals keys set by the auth middleware.
const (
	LocalUserID = "user_id"
	LocalUser   = "user"
)

// ParseRequestBody decodes a JSON, urlencoded or multipart body into input.
func (h *BaseHandler) ParseRequestBody(c fiber.Ctx, input interface{}) error {
	contentType := strings.ToLower(c.Get(fiber.HeaderContentType))
	if strings.HasPrefix(contentType, fiber.MIMEMultipartForm) || strings.HasPrefix(contentType, fiber.MIMEApplicationForm) {
		if err := c.Bind().Body(input); err != nil {
			return common.NewError(common.ErrCodeValidationFormat, common.MsgValidationError, common.StatusBadRequest, err)
		}
		return nil
	}

	body := c.Body()
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	decoder := json.NewDecoder(bytes.NewReader(body))
	if err := decoder.Decode(input); err != nil {
		return common.NewError(common.ErrCodeValidationFormat, "Request body is not valid JSON", common.StatusBadRequest, err)
	}
	return nil
}

// ValidateInput runs the struct rules of input.
func (h *BaseHandler) ValidateInput(input interface{}) error {
	return common.ValidationErrors(global.Validate.Struct(input))
}

// ParseAndValidate is ParseRequestBody followed by ValidateInput.
func (h *BaseHandler) ParseAndValidate(c fiber.Ctx, input interface{}) error {
	if err := h.ParseRequestBody(c, input); err != nil {
		return err
	}
	return h.ValidateInput(input)
}

// CurrentUserID returns the authenticated user id, ErrTokenMissing when the request is anonymous.
func (h *BaseHandler) CurrentUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	if id := h.OptionalUserID(c); !id.IsZero() {
		return id, nil
	}
	return primitive.NilObjectID, common.ErrTokenMissing
}

// OptionalUserID returns the authenticated user id or NilObjectID.
func (h *BaseHandler) OptionalUserID(c fiber.Ctx) primitive.ObjectID {
	userID, ok := c.Locals(LocalUserID).(string)
	if !ok || userID == "" {
		return primitive.NilObjectID
	}
	return utility.String2ObjectID(userID)
}

// ParamObjectID parses the named route parameter.
func (h *BaseHandler) ParamObjectID(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	return utility.ParseObjectID(c.Params(name), name)
}

// ParsePagination reads ?page and ?limit.
func (h *BaseHandler) ParsePagination(c fiber.Ctx) (int64, int64) {
	return utility.ParsePagination(c.Query("page"), c.Query("limit"))
}
