package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/renteaselabs/rentease-backend/internal/repository"
)

// PublicHandler serves the anonymous browse endpoints. These are the only
// operations reachable without a token.
type PublicHandler struct {
	Properties *repository.PropertyRepo
}

func NewPublicHandler(p *repository.PropertyRepo) *PublicHandler {
	if p == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Properties: p}
}

// ListProperties handles GET /v1/properties with optional filters:
// ?district=, ?type=, ?price_min=, ?price_max=.
func (h *PublicHandler) ListProperties(c echo.Context) error {
	var f repository.PropertyFilter
	f.District = c.QueryParam("district")
	f.PropertyType = c.QueryParam("type")
	if s := c.QueryParam("price_min"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_min must be a number"})
		}
		f.PriceMin = &n
	}
	if s := c.QueryParam("price_max"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price_max must be a number"})
		}
		f.PriceMax = &n
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Properties.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// GetProperty handles GET /v1/properties/:id. A non-numeric id is rejected
// as malformed before anything else happens.
func (h *PublicHandler) GetProperty(c echo.Context) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	p, err := h.Properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, p)
}
