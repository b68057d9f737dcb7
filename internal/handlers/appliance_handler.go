package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/services"
)

type ApplianceHandler struct {
	appliances *services.ApplianceService
}

func NewApplianceHandler(appliances *services.ApplianceService) *ApplianceHandler {
	return &ApplianceHandler{appliances: appliances}
}

func (h *ApplianceHandler) Create(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req dto.CreateApplianceRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	appliance, err := h.appliances.Create(userID, &req)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(appliance)
}

func (h *ApplianceHandler) List(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	propertyID, err := queryUUID(c, "property_id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid property_id")
	}

	appliances, err := h.appliances.List(userID, propertyID, c.Query("category"))
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(appliances)
}

func (h *ApplianceHandler) Get(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	applianceID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	appliance, err := h.appliances.Get(applianceID, userID)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(appliance)
}

func (h *ApplianceHandler) Update(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	applianceID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	var req dto.UpdateApplianceRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	appliance, err := h.appliances.Update(applianceID, userID, &req)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(appliance)
}

func (h *ApplianceHandler) Delete(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	applianceID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	if err := h.appliances.Delete(applianceID, userID); err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to delete appliance")
	}

	return c.JSON(dto.MessageResponse{Message: "Appliance deleted successfully"})
}
