package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"

	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	"github.com/Dhairyash-1/videotube-api/internal/common"
)

// LimiterConfig configures a per-IP fixed window limiter.
type LimiterConfig struct {
	// Name separates the counters of limiters sharing one storage.
	Name    string
	Max     int
	Window  time.Duration
	Message string
	// Storage keeps the counters; nil keeps them in process memory.
	Storage fiber.Storage
	// Skip excludes requests from counting (health checks, preflight).
	Skip func(c fiber.Ctx) bool
}

// RateLimiter returns a limiter answering 429 with the common error envelope.
func RateLimiter(cfg LimiterConfig) fiber.Handler {
	message := cfg.Message
	if message == "" {
		message = common.MsgTooManyRequests
	}

	return limiter.New(limiter.Config{
		Max:        cfg.Max,
		Expiration: cfg.Window,
		Storage:    cfg.Storage,
		Next:       cfg.Skip,
		KeyGenerator: func(c fiber.Ctx) string {
			return cfg.Name + ":" + c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return basehdl.WriteError(c, common.NewError(common.ErrCodeRateLimit, message, common.StatusTooManyRequests, nil))
		},
	})
}
