package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/services"
)

type MaintenanceHandler struct {
	maintenance *services.MaintenanceService
}

func NewMaintenanceHandler(maintenance *services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{maintenance: maintenance}
}

func (h *MaintenanceHandler) Create(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req dto.CreateMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	task, err := h.maintenance.Create(userID, &req)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(task)
}

func (h *MaintenanceHandler) List(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	propertyID, err := queryUUID(c, "property_id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid property_id")
	}

	filter := dto.MaintenanceFilter{
		PropertyID: propertyID,
		Status:     c.Query("status"),
		Priority:   c.Query("priority"),
	}

	tasks, err := h.maintenance.List(userID, &filter)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(tasks)
}

func (h *MaintenanceHandler) Get(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	task, err := h.maintenance.Get(taskID, userID)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(task)
}

func (h *MaintenanceHandler) Update(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	var req dto.UpdateMaintenanceRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	task, err := h.maintenance.Update(taskID, userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrDenied):
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrInvalidPriority), errors.Is(err, services.ErrInvalidMaintenanceStatus):
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		default:
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
	}

	return c.JSON(task)
}

func (h *MaintenanceHandler) Delete(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	taskID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	if err := h.maintenance.Delete(taskID, userID); err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to delete maintenance task")
	}

	return c.JSON(dto.MessageResponse{Message: "Maintenance task deleted successfully"})
}
