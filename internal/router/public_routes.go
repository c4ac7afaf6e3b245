package router

import (
	"github.com/labstack/echo/v4"

	"github.com/renteaselabs/rentease-backend/internal/handler"
)

// RegisterPublic registers the anonymous browse endpoints. These are the
// only operations allowed without a token, and they are read-only. The
// optional cache middleware (Redis response cache) is applied here because
// anonymous listing traffic is the cacheable part of the API.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
	g := e.Group("/v1/properties")
	if cache != nil {
		g.Use(cache)
	}
	g.GET("", p.ListProperties)
	g.GET("/:id", p.GetProperty)
}
