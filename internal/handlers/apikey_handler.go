package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/services"
)

type APIKeyHandler struct {
	keys *services.APIKeyService
}

func NewAPIKeyHandler(keys *services.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{keys: keys}
}

func (h *APIKeyHandler) Create(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req dto.CreateAPIKeyRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	resp, err := h.keys.Create(userID, &req)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *APIKeyHandler) List(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	keys, err := h.keys.List(userID)
	if err != nil {
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(keys)
}

func (h *APIKeyHandler) Delete(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	keyID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	if err := h.keys.Delete(userID, keyID); err != nil {
		if errors.Is(err, services.ErrAPIKeyNotFound) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to delete API key")
	}

	return c.JSON(dto.MessageResponse{Message: "API key deleted successfully"})
}

func (h *APIKeyHandler) Toggle(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	keyID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	info, err := h.keys.Toggle(userID, keyID)
	if err != nil {
		if errors.Is(err, services.ErrAPIKeyNotFound) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(info)
}
