// Package router holds the shared route registration plumbing.
package router

import (
	"github.com/gofiber/fiber/v3"
)

// RoutePrefix holds the base API prefixes.
type RoutePrefix struct {
	Base string
	V1   string
}

// NewRoutePrefix returns the default prefixes.
func NewRoutePrefix() RoutePrefix {
	base := "/api"
	return RoutePrefix{
		Base: base,
		V1:   base + "/v1",
	}
}

// Router wraps the Fiber app for route registration.
type Router struct {
	app *fiber.App
}

// NewRouter creates a Router over the app.
func NewRouter(app *fiber.App) *Router {
	return &Router{
		app: app,
	}
}

// RegisterRouteWithMiddleware registers a route through a group with
// .Use(). Passing middleware directly in the route call does not work
// reliably in Fiber v3, the group form does.
func RegisterRouteWithMiddleware(router fiber.Router, prefix string, method string, path string, middlewares []fiber.Handler, handler fiber.Handler) {
	routeGroup := router.Group(prefix)
	for _, mw := range middlewares {
		routeGroup.Use(mw)
	}

	switch method {
	case "GET":
		routeGroup.Get(path, handler)
	case "POST":
		routeGroup.Post(path, handler)
	case "PUT":
		routeGroup.Put(path, handler)
	case "PATCH":
		routeGroup.Patch(path, handler)
	case "DELETE":
		routeGroup.Delete(path, handler)
	}
}

// RegisterFunc registers the routes of one domain. Domains export their
// own Register so this package never imports them.
type RegisterFunc func(v1 fiber.Router, r *Router) error

// SetupRoutes mounts every domain's routes under /api/v1.
func SetupRoutes(app *fiber.App, regs ...RegisterFunc) error {
	prefix := NewRoutePrefix()
	v1 := app.Group(prefix.V1)
	r := NewRouter(app)
	for _, reg := range regs {
		if err := reg(v1, r); err != nil {
			return err
		}
	}
	return nil
}
