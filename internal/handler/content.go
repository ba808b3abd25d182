package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayaka/snugglespace/internal/domain"
	"github.com/ayaka/snugglespace/internal/service"
)

// ContentHandler handles content item endpoints.
type ContentHandler struct {
	content *service.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(content *service.ContentService) *ContentHandler {
	return &ContentHandler{content: content}
}

// List returns the shared feed for the authenticated user, newest first.
func (h *ContentHandler) List(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	items, err := h.content.List(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return JSON(c, http.StatusOK, items)
}

type createContentRequest struct {
	Type  string `json:"type" validate:"required,oneof=dare order memory"`
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// Create inserts a new content item addressed to the caller's partner.
func (h *ContentHandler) Create(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req createContentRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	item, err := h.content.Create(c.Request().Context(), userID, domain.ContentType(req.Type), req.Title, req.Body)
	if err != nil {
		return err
	}

	return JSON(c, http.StatusCreated, item)
}

// Complete marks an item done on behalf of the caller.
func (h *ContentHandler) Complete(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	item, err := h.content.Complete(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}

	return JSON(c, http.StatusOK, item)
}
