package routes

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/config"
	"github.com/propdesk/propdesk/internal/database"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/handlers"
	"github.com/propdesk/propdesk/internal/mailer"
	"github.com/propdesk/propdesk/internal/models"
	"github.com/propdesk/propdesk/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type dropMail struct{}

func (dropMail) Enqueue(mailer.Message) {}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{JWTSecret: "test-secret"}
	gate := access.NewGate(db)
	mail := dropMail{}

	apiKeyService := services.NewAPIKeyService(db)
	maintenanceService := services.NewMaintenanceService(db, gate)
	propertyService := services.NewPropertyService(db, gate)

	app := fiber.New()
	Setup(app, cfg, apiKeyService,
		handlers.NewAuthHandler(services.NewAuthService(db, cfg, mail)),
		handlers.NewHealthHandler(),
		handlers.NewPropertyHandler(propertyService),
		handlers.NewAccessHandler(services.NewInvitationService(db, gate, cfg, mail)),
		handlers.NewDocumentHandler(services.NewDocumentService(db, gate)),
		handlers.NewMaintenanceHandler(maintenanceService),
		handlers.NewChecklistHandler(services.NewChecklistService(db, gate)),
		handlers.NewTenantHandler(services.NewTenantService(db, gate)),
		handlers.NewFinanceHandler(services.NewFinanceService(db, gate)),
		handlers.NewApplianceHandler(services.NewApplianceService(db, gate)),
		handlers.NewProjectHandler(services.NewProjectService(db, gate)),
		handlers.NewAPIKeyHandler(apiKeyService),
	)
	return app, db
}

func seedKeyUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user := models.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  "irrelevant",
		FirstName: "Key",
		LastName:  "Owner",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func issueKey(t *testing.T, db *gorm.DB, userID uuid.UUID, scopes ...string) string {
	t.Helper()

	resp, err := services.NewAPIKeyService(db).Create(userID, &dto.CreateAPIKeyRequest{
		Name:   "home assistant",
		Scopes: scopes,
	})
	require.NoError(t, err)
	return resp.APIKey
}

func doKeyRequest(t *testing.T, app *fiber.App, method, target, key, body string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, payload
}

func TestIntegrationRoutesCompleteMaintenanceWithWriteScope(t *testing.T) {
	app, db := newTestApp(t)

	user := seedKeyUser(t, db, "ha@example.com")
	writeKey := issueKey(t, db, user.ID, "read:maintenance", "write:maintenance")

	task, err := services.NewMaintenanceService(db, access.NewGate(db)).
		Create(user.ID, &dto.CreateMaintenanceRequest{Title: "Replace filter"})
	require.NoError(t, err)

	status, payload := doKeyRequest(t, app,
		"PUT", "/api/integrations/ha/maintenance/"+task.ID.String(), writeKey,
		`{"status":"completed"}`)
	require.Equal(t, fiber.StatusOK, status, string(payload))

	var updated models.Maintenance
	require.NoError(t, json.Unmarshal(payload, &updated))
	assert.Equal(t, "completed", updated.Status)
	assert.NotNil(t, updated.CompletedAt)

	status, _ = doKeyRequest(t, app,
		"DELETE", "/api/integrations/ha/maintenance/"+task.ID.String(), writeKey, "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestIntegrationRoutesRejectMissingScopeAndKey(t *testing.T) {
	app, db := newTestApp(t)

	user := seedKeyUser(t, db, "ha@example.com")
	readKey := issueKey(t, db, user.ID, "read:maintenance")

	task, err := services.NewMaintenanceService(db, access.NewGate(db)).
		Create(user.ID, &dto.CreateMaintenanceRequest{Title: "Bleed radiators"})
	require.NoError(t, err)

	// A read-only key cannot update or delete.
	status, _ := doKeyRequest(t, app,
		"PUT", "/api/integrations/ha/maintenance/"+task.ID.String(), readKey,
		`{"status":"completed"}`)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = doKeyRequest(t, app,
		"DELETE", "/api/integrations/ha/maintenance/"+task.ID.String(), readKey, "")
	assert.Equal(t, fiber.StatusForbidden, status)

	// No key at all.
	status, _ = doKeyRequest(t, app,
		"GET", "/api/integrations/ha/maintenance", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestIntegrationRoutesListPropertiesForKeyOwner(t *testing.T) {
	app, db := newTestApp(t)

	user := seedKeyUser(t, db, "ha@example.com")
	other := seedKeyUser(t, db, "other@example.com")
	readKey := issueKey(t, db, user.ID, "read:maintenance")

	gate := access.NewGate(db)
	propertyService := services.NewPropertyService(db, gate)
	mine, err := propertyService.Create(user.ID, &dto.CreatePropertyRequest{
		Address: "12 Elm St", City: "Springfield", State: "IL", Zip: "62704",
		PropertyType: "single_family",
	})
	require.NoError(t, err)
	_, err = propertyService.Create(other.ID, &dto.CreatePropertyRequest{
		Address: "99 Oak Ave", City: "Springfield", State: "IL", Zip: "62704",
		PropertyType: "single_family",
	})
	require.NoError(t, err)

	status, payload := doKeyRequest(t, app, "GET", "/api/integrations/ha/properties", readKey, "")
	require.Equal(t, fiber.StatusOK, status, string(payload))

	var properties []models.Property
	require.NoError(t, json.Unmarshal(payload, &properties))
	require.Len(t, properties, 1)
	assert.Equal(t, mine.ID, properties[0].ID)
}
