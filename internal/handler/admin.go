package handler // admin-only management handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/renteaselabs/rentease-backend/internal/repository"
)

// AdminHandler bundles repositories for the admin management endpoints. All
// its routes sit behind RequireRole(admin).
type AdminHandler struct {
	Users      *repository.UserRepo
	Properties *repository.PropertyRepo
	Favorites  *repository.FavoriteRepo
	Inquiries  *repository.InquiryRepo
	Tokens     *repository.TokenRepo
}

func NewAdminHandler(u *repository.UserRepo, p *repository.PropertyRepo, f *repository.FavoriteRepo, i *repository.InquiryRepo, t *repository.TokenRepo) *AdminHandler {
	if u == nil || p == nil || f == nil || i == nil || t == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Users: u, Properties: p, Favorites: f, Inquiries: i, Tokens: t}
}

// adminUser is the wire form of a user row for admin listings. Password
// hashes never leave the repository layer through this handler.
type adminUser struct {
	ID        uint64    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

// ListUsers handles GET /v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	out := make([]adminUser, 0, len(users))
	for _, u := range users {
		out = append(out, adminUser{ID: u.ID, Email: u.Email, Role: u.Role, Name: u.Name, Phone: u.Phone, CreatedAt: u.CreatedAt})
	}
	return c.JSON(http.StatusOK, out)
}

type updateRoleReq struct {
	Role string `json:"role"`
}

// UpdateUserRole handles PATCH /v1/admin/users/:id/role. The new role binds
// to tokens issued from now on; outstanding access tokens keep the old role
// until they expire. Revoking the user's refresh tokens here closes the
// refresh path, so a demoted user cannot mint fresh tokens with the old
// role — the remaining exposure is bounded by the access-token window.
func (h *AdminHandler) UpdateUserRole(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}
	var req updateRoleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))
	if !repository.ValidRole(role) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown role"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	if err := h.Tokens.RevokeAllForUser(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "role updated", "role": role})
}

// DeleteUser handles DELETE /v1/admin/users/:id. The account's listings,
// favorites, inquiries and refresh tokens go with it, in one transaction, so
// a mid-cascade failure rolls everything back instead of leaving orphans.
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.DeleteWithData(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "user deleted"})
}

// DeleteProperty handles DELETE /v1/admin/properties/:id — the admin bypass
// of the ownership guard, using the unguarded delete.
func (h *AdminHandler) DeleteProperty(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Properties.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "property deleted"})
}

// Statistics handles GET /v1/admin/statistics: row counts for the dashboard.
func (h *AdminHandler) Statistics(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	properties, err := h.Properties.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	favorites, err := h.Favorites.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	inquiries, err := h.Inquiries.Count(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"users":      users,
		"properties": properties,
		"favorites":  favorites,
		"inquiries":  inquiries,
	})
}
