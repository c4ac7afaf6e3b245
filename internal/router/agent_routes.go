package router

import (
	"github.com/labstack/echo/v4"

	"github.com/renteaselabs/rentease-backend/internal/handler"
	"github.com/renteaselabs/rentease-backend/internal/middleware"
	"github.com/renteaselabs/rentease-backend/internal/repository"
	"github.com/renteaselabs/rentease-backend/internal/revocation"
)

// RegisterAgent registers listing management under /v1/agent. The role gate
// admits agents and admins; within handlers the admin role additionally
// bypasses the ownership guard on update/delete.
func RegisterAgent(e *echo.Echo, h *handler.AgentHandler, jwtSecret string, revoked revocation.Set) {
	g := e.Group(
		"/v1/agent",
		middleware.JWTAuth(jwtSecret, revoked),
		middleware.RequireRole(repository.RoleAgent, repository.RoleAdmin),
	)

	g.POST("/properties", h.CreateProperty)
	g.GET("/properties", h.MyProperties)
	g.PUT("/properties/:id", h.UpdateProperty)
	g.PATCH("/properties/:id", h.UpdateProperty) // partial updates via PATCH as well
	g.DELETE("/properties/:id", h.DeleteProperty)

	g.GET("/inquiries", h.ReceivedInquiries)
}
