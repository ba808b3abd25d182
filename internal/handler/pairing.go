package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayaka/snugglespace/internal/domain"
	"github.com/ayaka/snugglespace/internal/service"
)

// PairingHandler handles invitation endpoints.
type PairingHandler struct {
	pairing     *service.PairingService
	frontendURL string
}

// NewPairingHandler creates a new PairingHandler.
func NewPairingHandler(pairing *service.PairingService, frontendURL string) *PairingHandler {
	return &PairingHandler{pairing: pairing, frontendURL: frontendURL}
}

type createInvitationRequest struct {
	InviteeEmail string `json:"invitee_email" validate:"required"`
}

type invitationResponse struct {
	Invitation *domain.Invitation `json:"invitation"`
	InviteURL  string             `json:"invite_url"`
}

// CreateInvitation creates a pending invitation and returns the shareable
// link carrying the code.
func (h *PairingHandler) CreateInvitation(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req createInvitationRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	inv, err := h.pairing.CreateInvitation(c.Request().Context(), userID, req.InviteeEmail)
	if err != nil {
		return err
	}

	return JSON(c, http.StatusCreated, invitationResponse{
		Invitation: inv,
		InviteURL:  fmt.Sprintf("%s/?invite=%s", h.frontendURL, inv.InvitationCode),
	})
}

type acceptInvitationRequest struct {
	InvitationCode string `json:"invitation_code" validate:"required"`
}

// AcceptInvitation redeems a manually entered invitation code for the
// authenticated user. Unlike the sign-in auto-accept this path surfaces
// failures to the caller.
func (h *PairingHandler) AcceptInvitation(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req acceptInvitationRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.pairing.AcceptInvitation(c.Request().Context(), userID, req.InvitationCode); err != nil {
		return err
	}

	return JSON(c, http.StatusOK, map[string]string{"status": "accepted"})
}
