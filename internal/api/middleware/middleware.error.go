package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	"github.com/Dhairyash-1/videotube-api/internal/common"
)

// ErrorHandler is the Fiber ErrorHandler: errors that escape the handlers
// (unknown routes, body limit, panics) are written with the common envelope.
func ErrorHandler(c fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return basehdl.WriteError(c, fromFiberError(fiberErr))
	}
	return basehdl.WriteError(c, err)
}

func fromFiberError(e *fiber.Error) error {
	code := common.ErrCodeInternalServer
	switch e.Code {
	case fiber.StatusBadRequest, fiber.StatusRequestEntityTooLarge, fiber.StatusUnsupportedMediaType:
		code = common.ErrCodeValidationInput
	case fiber.StatusUnauthorized:
		code = common.ErrCodeAuthToken
	case fiber.StatusForbidden:
		code = common.ErrCodeAuthOwnership
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		code = common.ErrCodeDatabaseQuery
	case fiber.StatusTooManyRequests:
		code = common.ErrCodeRateLimit
	}
	return common.NewError(code, e.Message, e.Code, nil)
}
