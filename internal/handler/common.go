package handler // handler implements the HTTP endpoints of the API

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/renteaselabs/rentease-backend/internal/middleware"
	"github.com/renteaselabs/rentease-backend/internal/repository"
)

// getUserID extracts the authenticated subject id placed in context by the
// JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get(middleware.CtxUserID).(type) {
	case uint64:
		return t, nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole returns the role claim stored by the JWT middleware, or "" on
// anonymous requests.
func getRole(c echo.Context) string {
	role, _ := c.Get(middleware.CtxRole).(string)
	return role
}

// isAdmin reports whether the caller holds the admin role. Admins bypass
// ownership guards everywhere, so handlers route them to the unguarded
// repository variants.
func isAdmin(c echo.Context) bool {
	return getRole(c) == repository.RoleAdmin
}

// parseID parses a route parameter as a store key. A value that does not
// parse is malformed input and rejected before any authorization decision.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil
}

// parsePrice coerces a JSON price value into an int. Clients send numbers or
// numeric strings; everything else is a bad request.
func parsePrice(v any) (int, bool) {
	switch t := v.(type) {
	case float64:
		return int(t), true
	case int:
		return t, true
	case string:
		if n, err := strconv.Atoi(t); err == nil {
			return n, true
		}
	}
	return 0, false
}
