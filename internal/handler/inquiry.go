package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/renteaselabs/rentease-backend/internal/repository"
)

type sendInquiryReq struct {
	PropertyID uint64 `json:"property_id"`
	Message    string `json:"message"`
}

// SendInquiry handles POST /v1/inquiries. On success an inquiry.created
// event is published for downstream notification; publish failures are
// logged by the publisher and never fail the request.
func (h *CustomerHandler) SendInquiry(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req sendInquiryReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.PropertyID == 0 || req.Message == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "property_id and message required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Properties.GetByID(ctx, req.PropertyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "property not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	inq := &repository.Inquiry{UserID: userID, PropertyID: req.PropertyID, Message: req.Message}
	if err := h.Inquiries.Create(ctx, inq); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not send inquiry"})
	}

	if h.Events != nil {
		h.Events(c.Request().Context(), *inq)
	}
	return c.JSON(http.StatusCreated, echo.Map{"msg": "inquiry sent", "id": inq.ID})
}

// MyInquiries handles GET /v1/inquiries and lists the inquiries the caller
// has sent.
func (h *CustomerHandler) MyInquiries(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Inquiries.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}
	return c.JSON(http.StatusOK, items)
}
