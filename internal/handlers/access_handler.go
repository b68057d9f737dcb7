package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/services"
)

// AccessHandler exposes the property membership surface: invites, member
// management, and the caller's own invitation inbox.
type AccessHandler struct {
	invitations *services.InvitationService
}

func NewAccessHandler(invitations *services.InvitationService) *AccessHandler {
	return &AccessHandler{invitations: invitations}
}

func (h *AccessHandler) Invite(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	propertyID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	var req dto.InviteRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.invitations.Invite(propertyID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrDenied):
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrAlreadyAssociated):
			return errorJSON(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, services.ErrInvalidRole):
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		default:
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *AccessHandler) Members(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	propertyID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	members, err := h.invitations.Members(propertyID, userID)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(members)
}

func (h *AccessHandler) UpdateMember(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	propertyID, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	accessID, ok := paramID(c, "accessId")
	if !ok {
		return nil
	}

	var req dto.UpdateMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	pa, err := h.invitations.UpdateMember(propertyID, accessID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrDenied):
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrMemberNotFound):
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrLastOwner):
			return errorJSON(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, services.ErrInvalidRole), errors.Is(err, services.ErrInvalidStatus):
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		default:
			return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(pa)
}

func (h *AccessHandler) RemoveMember(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	propertyID, ok := paramID(c, "id")
	if !ok {
		return nil
	}
	accessID, ok := paramID(c, "accessId")
	if !ok {
		return nil
	}

	if err := h.invitations.RemoveMember(propertyID, accessID, userID); err != nil {
		switch {
		case errors.Is(err, access.ErrDenied):
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrMemberNotFound):
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrCannotRemoveSelf), errors.Is(err, services.ErrLastOwner):
			return errorJSON(c, fiber.StatusConflict, err.Error())
		default:
			return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
		}
	}

	return c.JSON(dto.MessageResponse{Message: "Member removed successfully"})
}

// ListInvitations returns the caller's pending invitations.
func (h *AccessHandler) ListInvitations(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	invitations, err := h.invitations.ListInvitations(userID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(invitations)
}

func (h *AccessHandler) AcceptInvitation(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req dto.InvitationTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.invitations.Accept(userID, req.Token)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInvitation) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(resp)
}

func (h *AccessHandler) DeclineInvitation(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req dto.InvitationTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	if err := h.invitations.Decline(userID, req.Token); err != nil {
		if errors.Is(err, services.ErrInvalidInvitation) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(dto.MessageResponse{Message: "Invitation declined"})
}
