package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/renteaselabs/rentease-backend/internal/repository"
)

// CustomerHandler bundles repositories for authenticated per-user data:
// favorites and inquiries. Any authenticated role may use these; every query
// is scoped to the caller's own rows.
type CustomerHandler struct {
	Properties *repository.PropertyRepo
	Favorites  *repository.FavoriteRepo
	Inquiries  *repository.InquiryRepo
	Events     InquiryPublisher
}

// InquiryPublisher pushes a stored inquiry to the message broker. Publishing
// is best-effort: a broker outage never fails the request.
type InquiryPublisher func(ctx context.Context, inq repository.Inquiry)

func NewCustomerHandler(p *repository.PropertyRepo, f *repository.FavoriteRepo, i *repository.InquiryRepo, ev InquiryPublisher) *CustomerHandler {
	if p == nil || f == nil || i == nil {
		panic("nil repository passed to NewCustomerHandler")
	}
	return &CustomerHandler{Properties: p, Favorites: f, Inquiries: i, Events: ev}
}

type addFavoriteReq struct {
	PropertyID uint64 `json:"property_id"`
}

// AddFavorite handles POST /v1/favorites. Re-adding an existing favorite is
// not an error; the unique index swallows the race between two identical
// adds.
func (h *CustomerHandler) AddFavorite(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req addFavoriteReq
	if err := c.Bind(&req); err != nil || req.PropertyID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// The target must be a real property; favorites do not dangle.
	if _, err := h.Properties.GetByID(ctx, req.PropertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	created, err := h.Favorites.Add(ctx, userID, req.PropertyID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not add favorite"})
	}
	if !created {
		return c.JSON(http.StatusOK, echo.Map{"msg": "already in favorites"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "added to favorites"})
}

// ListFavorites handles GET /v1/favorites.
func (h *CustomerHandler) ListFavorites(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Favorites.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// RemoveFavorite handles DELETE /v1/favorites/:property_id. The DELETE
// statement matches property and caller together, so someone else's
// favorite is indistinguishable from a missing one.
func (h *CustomerHandler) RemoveFavorite(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	propertyID, ok := parseID(c, "property_id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Favorites.DeleteByPropertyAndUser(ctx, propertyID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "favorite not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "removed from favorites"})
}
