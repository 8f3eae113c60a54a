package router

import (
	"github.com/fasthttp/router"

	apiHandler "github.com/devfolio/backend/api/handler"
)

type Handlers struct {
	Auth   *apiHandler.AuthHandler
	Health *apiHandler.HealthHandler
	Pages  *apiHandler.PageHandler
}

// New wires the API routes. Page requests fall through to the static
// handler; the route guard wraps the whole router in main, so nothing
// here needs to know which paths are protected.
func New(handlers Handlers) *router.Router {
	r := router.New()

	r.GET("/health", handlers.Health.Check)

	r.POST("/api/auth/login", handlers.Auth.Login)
	r.GET("/api/auth/me", handlers.Auth.Me)
	r.POST("/api/auth/logout", handlers.Auth.Logout)

	r.NotFound = handlers.Pages.Serve

	return r
}
