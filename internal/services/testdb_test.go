package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/config"
	"github.com/propdesk/propdesk/internal/database"
	"github.com/propdesk/propdesk/internal/mailer"
	"github.com/propdesk/propdesk/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
		InvitationTTL:    168 * time.Hour,
		ResetTokenTTL:    time.Hour,
		FrontendURL:      "http://localhost:3000",
	}
}

// mailRecorder captures outbound mail instead of delivering it.
type mailRecorder struct {
	msgs []mailer.Message
}

func (m *mailRecorder) Enqueue(msg mailer.Message) {
	m.msgs = append(m.msgs, msg)
}

func createUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  string(hash),
		FirstName: "Test",
		LastName:  "User",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createProperty(t *testing.T, db *gorm.DB) *models.Property {
	t.Helper()

	property := models.Property{
		ID:           uuid.New(),
		Address:      "12 Elm St",
		City:         "Springfield",
		State:        "IL",
		Zip:          "62704",
		PropertyType: "single_family",
		Status:       "active",
	}
	require.NoError(t, db.Create(&property).Error)
	return &property
}

// grantAccess inserts a PropertyAccess row directly, bypassing the invite flow.
func grantAccess(t *testing.T, db *gorm.DB, propertyID, userID uuid.UUID, role access.Role, status access.Status) *models.PropertyAccess {
	t.Helper()

	now := time.Now().UTC()
	pa := models.PropertyAccess{
		ID:         uuid.New(),
		PropertyID: propertyID,
		UserID:     userID,
		Role:       string(role),
		Status:     string(status),
	}
	if status == access.StatusActive {
		pa.AcceptedAt = &now
	}
	require.NoError(t, db.Create(&pa).Error)
	return &pa
}
