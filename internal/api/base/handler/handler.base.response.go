package basehdl

import (
	"fmt"
	"runtime/debug"
	"sync/atomic"

	"github.com/gofiber/fiber/v3"

	"github.com/Dhairyash-1/videotube-api/internal/common"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
)

// exposeInternalErrors shows messages of unexpected errors to clients (development only).
var exposeInternalErrors atomic.Bool

// SetExposeInternalErrors is called once at startup from GO_ENV.
func SetExposeInternalErrors(expose bool) {
	exposeInternalErrors.Store(expose)
}

// JSONResponse writes data as JSON with an explicit utf-8 charset.
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	c.Set("Content-Type", "application/json; charset=utf-8")
	return c.Status(statusCode).JSON(data)
}

// WriteSuccess writes the success envelope.
func WriteSuccess(c fiber.Ctx, statusCode int, data interface{}, message string) error {
	return JSONResponse(c, statusCode, common.NewApiResponse(statusCode, data, message))
}

// WriteError writes the error envelope for err. Server-side failures are logged with the request.
func WriteError(c fiber.Ctx, err error) error {
	apiErr := common.NewApiError(err, exposeInternalErrors.Load())
	if apiErr.StatusCode >= common.StatusInternalServerError {
		logger.WithRequest(c).WithError(err).Error("Request failed")
	}
	return JSONResponse(c, apiErr.StatusCode, apiErr)
}

// BaseHandler carries the response helpers shared by the domain handlers.
type BaseHandler struct{}

// SafeHandler runs handler and turns a panic into a 500 envelope.
func (h *BaseHandler) SafeHandler(c fiber.Ctx, handler func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logger.WithRequest(c).WithField("stack", string(debug.Stack())).Errorf("Handler panic: %v", r)
			err = WriteError(c, common.Internal(common.MsgInternalError, fmt.Errorf("panic: %v", r)))
		}
	}()
	return handler()
}

// HandleResponse writes err when set, otherwise a 200 envelope with data.
func (h *BaseHandler) HandleResponse(c fiber.Ctx, data interface{}, err error) {
	h.HandleResponseWithMessage(c, common.StatusOK, data, common.MsgSuccess, err)
}

// HandleResponseWithMessage writes err when set, otherwise the success envelope.
func (h *BaseHandler) HandleResponseWithMessage(c fiber.Ctx, statusCode int, data interface{}, message string, err error) {
	if err != nil {
		_ = WriteError(c, err)
		return
	}
	if data == nil {
		data = fiber.Map{}
	}
	_ = WriteSuccess(c, statusCode, data, message)
}
