// Package identity resolves the authenticated user id for a request,
// whatever credential carried it (JWT session or API key).
package identity

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/models"
)

const (
	apiUserKey = "api_user_id"
	apiKeyKey  = "api_key"
)

// GetUserID extracts the caller's user id from JWT claims or, for machine
// clients, from the API-key locals set by the key middleware.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	if id, ok := c.Locals(apiUserKey).(uuid.UUID); ok {
		return id, nil
	}

	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// SetAPIIdentity stores the identity resolved from an API key.
func SetAPIIdentity(c *fiber.Ctx, key *models.APIKey) {
	c.Locals(apiUserKey, key.UserID)
	c.Locals(apiKeyKey, key)
}

// GetAPIKey returns the API key record for the request, if key-authenticated.
func GetAPIKey(c *fiber.Ctx) (*models.APIKey, bool) {
	key, ok := c.Locals(apiKeyKey).(*models.APIKey)
	return key, ok
}
