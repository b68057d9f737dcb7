package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/services"
)

type ChecklistHandler struct {
	checklist *services.ChecklistService
}

func NewChecklistHandler(checklist *services.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{checklist: checklist}
}

func (h *ChecklistHandler) Create(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req dto.CreateChecklistItemRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	item, err := h.checklist.Create(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrDenied):
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrInvalidSeason):
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		default:
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

func (h *ChecklistHandler) List(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	propertyID, err := queryUUID(c, "property_id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid property_id")
	}

	items, err := h.checklist.List(userID, propertyID, c.Query("season"))
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(items)
}

func (h *ChecklistHandler) Update(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	itemID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	var req dto.UpdateChecklistItemRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	item, err := h.checklist.Update(itemID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrDenied):
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrInvalidSeason):
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		default:
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
	}

	return c.JSON(item)
}

func (h *ChecklistHandler) Delete(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	itemID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	if err := h.checklist.Delete(itemID, userID); err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to delete checklist item")
	}

	return c.JSON(dto.MessageResponse{Message: "Checklist item deleted successfully"})
}
