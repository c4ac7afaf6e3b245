package router

import (
	"github.com/labstack/echo/v4"

	"github.com/renteaselabs/rentease-backend/internal/handler"
	"github.com/renteaselabs/rentease-backend/internal/middleware"
	"github.com/renteaselabs/rentease-backend/internal/revocation"
)

// RegisterCustomer registers the per-user endpoints: favorites and sent
// inquiries. Any authenticated role qualifies — agents and admins keep
// favorites too — so there is no role gate here, only JWTAuth. Every handler
// scopes its queries to the caller's own rows.
func RegisterCustomer(e *echo.Echo, h *handler.CustomerHandler, jwtSecret string, revoked revocation.Set) {
	g := e.Group("/v1", middleware.JWTAuth(jwtSecret, revoked))

	g.POST("/favorites", h.AddFavorite)
	g.GET("/favorites", h.ListFavorites)
	g.DELETE("/favorites/:property_id", h.RemoveFavorite)

	g.POST("/inquiries", h.SendInquiry)
	g.GET("/inquiries", h.MyInquiries)
}
