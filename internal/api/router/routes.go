// Package router mounts the domain routes under /api/v1.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
)

// RoutePrefix holds the API path prefixes.
type RoutePrefix struct {
	Base string // /api
	V1   string // /api/v1
}

// NewRoutePrefix returns the default prefixes.
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// Middlewares are the route-level middlewares shared by the domain routers.
type Middlewares struct {
	Auth         fiber.Handler
	OptionalAuth fiber.Handler
	// UploadLimit guards video publishing; nil disables it.
	UploadLimit  fiber.Handler
	UploadTmpDir string
}

// Router gives the domain routers access to the shared middlewares.
type Router struct {
	app *fiber.App
	mw  Middlewares
}

// NewRouter returns a Router for app.
func NewRouter(app *fiber.App, mw Middlewares) *Router {
	return &Router{
		app: app,
		mw:  mw,
	}
}

// Middlewares returns the shared middlewares.
func (r *Router) Middlewares() Middlewares {
	return r.mw
}

// Authenticated prepends the auth middleware to extra.
func (r *Router) Authenticated(extra ...fiber.Handler) []fiber.Handler {
	return append([]fiber.Handler{r.mw.Auth}, compact(extra)...)
}

func compact(handlers []fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}

// RegisterRouteWithMiddleware registers method prefix+path running middlewares in order before handler.
// Middlewares are attached to the route itself, never to the group, so they do not leak
// onto sibling routes sharing the prefix.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	chain := append(compact(middlewares), handler)
	router.Group(prefix).Add([]string{method}, path, chain[0], chain[1:]...)
}

// RegisterFunc mounts the routes of one domain on v1.
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes mounts every domain under /api/v1. Domains are passed in by the caller to
// avoid import cycles.
func SetupRoutes(app *fiber.App, mw Middlewares, regs ...RegisterFunc) error {
	if mw.Auth == nil {
		return fmt.Errorf("router: auth middleware is required")
	}
	if mw.OptionalAuth == nil {
		mw.OptionalAuth = func(c fiber.Ctx) error { return c.Next() }
	}

	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app, mw)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
