package router // router wires HTTP routes to handlers and middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/renteaselabs/rentease-backend/internal/handler"
	"github.com/renteaselabs/rentease-backend/internal/middleware"
	"github.com/renteaselabs/rentease-backend/internal/revocation"
)

// RegisterRoutes registers routes that carry no authentication at all.
// Currently just the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the credential and token-lifecycle endpoints.
// Register, login and refresh are necessarily anonymous; logout and /me
// require a live access token, which is also how logout learns which jti to
// revoke.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string, revoked revocation.Set) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret, revoked))
	auth.POST("/logout", a.Logout)
	auth.GET("/me", a.Me)
}
