package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/services"
)

type DocumentHandler struct {
	documents *services.DocumentService
}

func NewDocumentHandler(documents *services.DocumentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req dto.CreateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	doc, err := h.documents.Create(userID, &req)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(doc)
}

func (h *DocumentHandler) List(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	propertyID, err := queryUUID(c, "property_id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid property_id")
	}
	tenantID, err := queryUUID(c, "tenant_id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid tenant_id")
	}

	filter := dto.DocumentFilter{
		PropertyID: propertyID,
		TenantID:   tenantID,
		Category:   c.Query("category"),
	}

	docs, err := h.documents.List(userID, &filter)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(docs)
}

func (h *DocumentHandler) Get(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	docID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	doc, err := h.documents.Get(docID, userID)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(doc)
}

func (h *DocumentHandler) Update(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	docID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	var req dto.UpdateDocumentRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	doc, err := h.documents.Update(docID, userID, &req)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(doc)
}

func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	docID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	if err := h.documents.Delete(docID, userID); err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to delete document")
	}

	return c.JSON(dto.MessageResponse{Message: "Document deleted successfully"})
}
