package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/identity"
	"github.com/propdesk/propdesk/internal/services"
)

// APIKeyRequired authenticates machine clients by X-API-Key header or
// Authorization: Bearer. requiredScope may be empty to accept any valid key.
func APIKeyRequired(keys *services.APIKeyService, requiredScope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Get("X-API-Key")
		if auth := c.Get("Authorization"); raw == "" && strings.HasPrefix(auth, "Bearer ") {
			raw = strings.TrimPrefix(auth, "Bearer ")
		}

		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "API key required",
			})
		}

		key, err := keys.Authenticate(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}

		if requiredScope != "" && !key.HasScope(requiredScope) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "API key missing required scope: " + requiredScope,
			})
		}

		identity.SetAPIIdentity(c, key)
		return c.Next()
	}
}
