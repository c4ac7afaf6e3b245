package router

import (
	"github.com/labstack/echo/v4"

	"github.com/renteaselabs/rentease-backend/internal/handler"
	"github.com/renteaselabs/rentease-backend/internal/middleware"
	"github.com/renteaselabs/rentease-backend/internal/repository"
	"github.com/renteaselabs/rentease-backend/internal/revocation"
)

// RegisterAdmin registers the management endpoints under /v1/admin, gated on
// the admin role alone.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string, revoked revocation.Set) {
	g := e.Group(
		"/v1/admin",
		middleware.JWTAuth(jwtSecret, revoked),
		middleware.RequireRole(repository.RoleAdmin),
	)

	g.GET("/users", h.ListUsers)
	g.PATCH("/users/:id/role", h.UpdateUserRole)
	g.DELETE("/users/:id", h.DeleteUser)
	g.DELETE("/properties/:id", h.DeleteProperty)
	g.GET("/statistics", h.Statistics)
}
