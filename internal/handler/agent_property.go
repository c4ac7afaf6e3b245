package handler // agent-scoped property handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/renteaselabs/rentease-backend/internal/repository"
)

// AgentHandler bundles repositories for agents managing their listings.
// Routes using it sit behind RequireRole(agent, admin); within the handlers
// the admin role switches to the ownership-unguarded repository variants.
type AgentHandler struct {
	Properties *repository.PropertyRepo
	Inquiries  *repository.InquiryRepo
}

func NewAgentHandler(p *repository.PropertyRepo, i *repository.InquiryRepo) *AgentHandler {
	if p == nil || i == nil {
		panic("nil repository passed to NewAgentHandler")
	}
	return &AgentHandler{Properties: p, Inquiries: i}
}

type createPropertyReq struct {
	Title        string `json:"title"`
	Price        any    `json:"price"` // number or numeric string
	Location     string `json:"location"`
	PropertyType string `json:"type"`
	Available    *bool  `json:"available"`
}

type updatePropertyReq struct {
	Title        *string `json:"title"`
	Price        any     `json:"price"`
	Location     *string `json:"location"`
	PropertyType *string `json:"property_type"`
	Available    *bool   `json:"available"`
}

// CreateProperty handles POST /v1/agent/properties. The created record's
// agent_id is always the caller's subject id, never a value from the body.
func (h *AgentHandler) CreateProperty(c echo.Context) error {
	agentID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createPropertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Title = strings.TrimSpace(req.Title)
	req.Location = strings.TrimSpace(req.Location)
	if req.Title == "" || req.Location == "" || req.Price == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, price and location required"})
	}
	price, ok := parsePrice(req.Price)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be a number"})
	}
	propertyType := strings.TrimSpace(req.PropertyType)
	if propertyType == "" {
		propertyType = "apartment"
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}

	p := &repository.Property{
		AgentID:      agentID,
		Title:        req.Title,
		Price:        price,
		Location:     req.Location,
		PropertyType: propertyType,
		Available:    available,
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Properties.Create(ctx, p); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create property"})
	}
	return c.JSON(http.StatusCreated, p)
}

// MyProperties handles GET /v1/agent/properties and lists the caller's own
// records.
func (h *AgentHandler) MyProperties(c echo.Context) error {
	agentID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Properties.ListByAgent(ctx, agentID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}

// UpdateProperty handles PUT/PATCH /v1/agent/properties/:id. The ownership
// test rides inside the UPDATE statement itself; a zero-row result reads as
// 404 whether the property is missing or owned by another agent, and an
// admin skips the guard entirely.
func (h *AgentHandler) UpdateProperty(c echo.Context) error {
	agentID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}
	var req updatePropertyReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	upd := repository.PropertyUpdate{
		Title:        req.Title,
		Location:     req.Location,
		PropertyType: req.PropertyType,
		Available:    req.Available,
	}
	if req.Price != nil {
		price, ok := parsePrice(req.Price)
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "price must be a number"})
		}
		upd.Price = &price
	}
	if upd.Empty() {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no valid fields to update"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if isAdmin(c) {
		err = h.Properties.UpdateByID(ctx, id, upd)
	} else {
		err = h.Properties.UpdateByIDAndAgent(ctx, id, agentID, upd)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "updated"})
}

// DeleteProperty handles DELETE /v1/agent/properties/:id with the same
// guarded single-statement shape as UpdateProperty.
func (h *AgentHandler) DeleteProperty(c echo.Context) error {
	agentID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid property id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if isAdmin(c) {
		err = h.Properties.DeleteByID(ctx, id)
	} else {
		err = h.Properties.DeleteByIDAndAgent(ctx, id, agentID)
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"msg": "deleted"})
}

// ReceivedInquiries handles GET /v1/agent/inquiries: the inquiries customers
// sent about the caller's listings. Admins see all inquiries.
func (h *AgentHandler) ReceivedInquiries(c echo.Context) error {
	agentID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var items []repository.Inquiry
	if isAdmin(c) {
		items, err = h.Inquiries.ListAll(ctx)
	} else {
		items, err = h.Inquiries.ListForAgent(ctx, agentID)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}
