package main

import (
	"context"
	"slices"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Dhairyash-1/videotube-api/config"
	authrouter "github.com/Dhairyash-1/videotube-api/internal/api/auth/router"
	basehdl "github.com/Dhairyash-1/videotube-api/internal/api/base/handler"
	commentrouter "github.com/Dhairyash-1/videotube-api/internal/api/comment/router"
	"github.com/Dhairyash-1/videotube-api/internal/api/middleware"
	playlistrouter "github.com/Dhairyash-1/videotube-api/internal/api/playlist/router"
	apirouter "github.com/Dhairyash-1/videotube-api/internal/api/router"
	socialrouter "github.com/Dhairyash-1/videotube-api/internal/api/social/router"
	tweetrouter "github.com/Dhairyash-1/videotube-api/internal/api/tweet/router"
	videorouter "github.com/Dhairyash-1/videotube-api/internal/api/video/router"
	viewrouter "github.com/Dhairyash-1/videotube-api/internal/api/view/router"
	"github.com/Dhairyash-1/videotube-api/internal/database"
	"github.com/Dhairyash-1/videotube-api/internal/logger"
)

const healthPath = "/api/v1/healthcheck"

// skipLimiter excludes health checks and CORS preflight from rate limiting.
func skipLimiter(c fiber.Ctx) bool {
	return c.Path() == healthPath || c.Method() == fiber.MethodOptions
}

// InitFiberApp builds the app with the global middleware stack and every route.
func InitFiberApp(cfg *config.Configuration, client *mongo.Client, deps *dependencies) (*fiber.App, error) {
	log := logger.GetAppLogger()

	app := fiber.New(fiber.Config{
		AppName:      "VideoTube API",
		BodyLimit:    cfg.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  60 * time.Second, // uploads stream through the body
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(requestid.New(requestid.Config{
		Header:    fiber.HeaderXRequestID,
		Generator: uuid.NewString,
	}))

	origins := cfg.AllowedOrigins()
	// browsers reject credentials with a wildcard origin, and the cors middleware refuses the pair
	allowCredentials := cfg.CORS_AllowCredentials && !slices.Contains(origins, "*")
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID", "X-Requested-With"},
		AllowCredentials: allowCredentials,
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		MaxAge:           24 * 60 * 60,
	}))

	app.Use(func(c fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if cfg.IsProduction() {
			c.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		return c.Next()
	})

	// nil keeps the counters in memory
	var limiterStorage fiber.Storage
	if deps.limiter != nil {
		limiterStorage = deps.limiter
	}

	if cfg.RateLimit_Enabled && cfg.RateLimit_Max > 0 {
		app.Use(middleware.RateLimiter(middleware.LimiterConfig{
			Name:    "api",
			Max:     cfg.RateLimit_Max,
			Window:  time.Duration(cfg.RateLimit_Window) * time.Second,
			Storage: limiterStorage,
			Skip:    skipLimiter,
		}))
		log.Infof("Rate limiting enabled: %d requests per %d seconds", cfg.RateLimit_Max, cfg.RateLimit_Window)
	} else {
		log.Info("Rate limiting disabled")
	}

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c fiber.Ctx, e interface{}) {
			logger.WithRequest(c).WithField("panic", e).Error("Panic recovered")
		},
	}))

	var uploadLimit fiber.Handler
	if cfg.RateLimit_Enabled && cfg.UploadLimit_Max > 0 {
		uploadLimit = middleware.RateLimiter(middleware.LimiterConfig{
			Name:    "upload",
			Max:     cfg.UploadLimit_Max,
			Window:  time.Duration(cfg.UploadLimit_Window) * time.Second,
			Message: "Upload limit reached, please try again later",
			Storage: limiterStorage,
		})
	}

	system := basehdl.NewSystemHandler(func(ctx context.Context) error {
		return database.Ping(ctx, client)
	})

	err := apirouter.SetupRoutes(app, apirouter.Middlewares{
		Auth:         middleware.AuthMiddleware(deps.users),
		OptionalAuth: middleware.OptionalAuthMiddleware(deps.users),
		UploadLimit:  uploadLimit,
		UploadTmpDir: cfg.UploadTmpDir,
	},
		func(v1 fiber.Router, _ *apirouter.Router) error {
			v1.Get("/healthcheck", system.HandleHealth)
			return nil
		},
		authrouter.Register(deps.userHandler),
		videorouter.Register(deps.videoHandler),
		commentrouter.Register(deps.commentHandler),
		tweetrouter.Register(deps.tweetHandler),
		playlistrouter.Register(deps.playlistHandler),
		socialrouter.Register(deps.socialHandler),
		viewrouter.Register(deps.viewHandler),
	)
	if err != nil {
		return nil, err
	}
	return app, nil
}
