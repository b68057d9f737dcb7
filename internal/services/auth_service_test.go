package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB, mail *mailRecorder) *AuthService {
	return NewAuthService(db, testConfig(), mail)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	mail := &mailRecorder{}
	svc := newAuthService(db, mail)

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:     "new@example.com",
		Password:  "password123",
		FirstName: "New",
		LastName:  "User",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "new@example.com", resp.User.Email)

	// Welcome mail went out.
	require.Len(t, mail.msgs, 1)

	_, err = svc.Register(&dto.RegisterRequest{Email: "new@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	login, err := svc.Login(&dto.LoginRequest{Email: "new@example.com", Password: "password123"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)

	_, err = svc.Login(&dto.LoginRequest{Email: "new@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterConsumesInvitationByToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, &mailRecorder{})

	inviter := createUser(t, db, "owner@example.com")
	property := createProperty(t, db)

	inv := models.PendingInvitation{
		ID:              uuid.New(),
		Email:           "invitee@example.com",
		PropertyID:      property.ID,
		Role:            "manager",
		InvitedBy:       inviter.ID,
		InvitationToken: "tok-123",
		ExpiresAt:       time.Now().UTC().Add(24 * time.Hour),
	}
	require.NoError(t, db.Create(&inv).Error)

	resp, err := svc.Register(&dto.RegisterRequest{
		Email:           "invitee@example.com",
		Password:        "password123",
		InvitationToken: "tok-123",
	})
	require.NoError(t, err)

	var pa models.PropertyAccess
	require.NoError(t, db.Where("property_id = ? AND user_id = ?", property.ID, resp.User.ID).First(&pa).Error)
	assert.Equal(t, "manager", pa.Role)
	assert.Equal(t, string(access.StatusActive), pa.Status)
	require.NotNil(t, pa.InvitedBy)
	assert.Equal(t, inviter.ID, *pa.InvitedBy)

	// The invitation row is gone.
	err = db.First(&models.PendingInvitation{}, "id = ?", inv.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRegisterWithoutTokenPicksLatestInvitation(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, &mailRecorder{})

	inviter := createUser(t, db, "owner@example.com")
	p1 := createProperty(t, db)
	p2 := createProperty(t, db)

	older := models.PendingInvitation{
		ID:              uuid.New(),
		Email:           "invitee@example.com",
		PropertyID:      p1.ID,
		Role:            "tenant",
		InvitedBy:       inviter.ID,
		InvitationToken: "tok-old",
		ExpiresAt:       time.Now().UTC().Add(24 * time.Hour),
		CreatedAt:       time.Now().UTC().Add(-2 * time.Hour),
	}
	newer := models.PendingInvitation{
		ID:              uuid.New(),
		Email:           "invitee@example.com",
		PropertyID:      p2.ID,
		Role:            "manager",
		InvitedBy:       inviter.ID,
		InvitationToken: "tok-new",
		ExpiresAt:       time.Now().UTC().Add(24 * time.Hour),
		CreatedAt:       time.Now().UTC().Add(-1 * time.Hour),
	}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)

	resp, err := svc.Register(&dto.RegisterRequest{Email: "invitee@example.com", Password: "password123"})
	require.NoError(t, err)

	var pa models.PropertyAccess
	require.NoError(t, db.Where("user_id = ?", resp.User.ID).First(&pa).Error)
	assert.Equal(t, p2.ID, pa.PropertyID)
	assert.Equal(t, "manager", pa.Role)
}

func TestRegisterIgnoresExpiredInvitation(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, &mailRecorder{})

	inviter := createUser(t, db, "owner@example.com")
	property := createProperty(t, db)

	expired := models.PendingInvitation{
		ID:              uuid.New(),
		Email:           "invitee@example.com",
		PropertyID:      property.ID,
		Role:            "tenant",
		InvitedBy:       inviter.ID,
		InvitationToken: "tok-expired",
		ExpiresAt:       time.Now().UTC().Add(-time.Hour),
	}
	require.NoError(t, db.Create(&expired).Error)

	resp, err := svc.Register(&dto.RegisterRequest{Email: "invitee@example.com", Password: "password123"})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.PropertyAccess{}).Where("user_id = ?", resp.User.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	// Expired rows stay in place; they are just never consumed.
	require.NoError(t, db.First(&models.PendingInvitation{}, "id = ?", expired.ID).Error)
}

func TestRefreshRotatesToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, &mailRecorder{})

	resp, err := svc.Register(&dto.RegisterRequest{Email: "u@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// The old token is revoked on first use.
	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshPersistsRevocation(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, &mailRecorder{})

	resp, err := svc.Register(&dto.RegisterRequest{Email: "u@example.com", Password: "password123"})
	require.NoError(t, err)

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)

	// The revocation is durable, not just an in-memory decision.
	var stored models.RefreshToken
	require.NoError(t, db.Where("token_hash = ?", hashToken(resp.RefreshToken)).First(&stored).Error)
	assert.True(t, stored.Revoked)
}

func TestRegisterRacingDuplicateMapsToEmailTaken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, &mailRecorder{})

	// Slip a conflicting row in after the uniqueness pre-check has already
	// passed, so the unique index is what reports the duplicate.
	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("test_conflicting_signup", func(tx *gorm.DB) {
		if raced || tx.Statement.Table != "users" {
			return
		}
		raced = true
		tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO users (id, email, password, first_name, last_name) VALUES (?, ?, ?, ?, ?)",
			uuid.New().String(), "dup@example.com", "x", "First", "Comer",
		)
	})
	require.NoError(t, err)

	_, err = svc.Register(&dto.RegisterRequest{Email: "dup@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.True(t, raced)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, &mailRecorder{})

	resp, err := svc.Register(&dto.RegisterRequest{Email: "u@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = svc.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordResetFlow(t *testing.T) {
	db := newTestDB(t)
	mail := &mailRecorder{}
	svc := newAuthService(db, mail)

	_, err := svc.Register(&dto.RegisterRequest{Email: "u@example.com", Password: "password123"})
	require.NoError(t, err)
	mail.msgs = nil

	// Unknown address: silent success, no mail.
	require.NoError(t, svc.ForgotPassword("nobody@example.com"))
	assert.Empty(t, mail.msgs)

	require.NoError(t, svc.ForgotPassword("u@example.com"))
	require.Len(t, mail.msgs, 1)

	var record models.PasswordResetToken
	require.NoError(t, db.First(&record).Error)

	// The raw token only travels in the email; store a second token with a
	// known raw value instead of parsing the HTML body.
	knownRaw := uuid.New().String()
	record2 := models.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    record.UserID,
		TokenHash: hashToken(knownRaw),
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	require.NoError(t, db.Create(&record2).Error)

	require.NoError(t, svc.ResetPassword(&dto.ResetPasswordRequest{Token: knownRaw, NewPassword: "newpassword1"}))

	_, err = svc.Login(&dto.LoginRequest{Email: "u@example.com", Password: "newpassword1"})
	require.NoError(t, err)

	// Single use.
	err = svc.ResetPassword(&dto.ResetPasswordRequest{Token: knownRaw, NewPassword: "another-pass1"})
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestUpdateProfileEmailUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, &mailRecorder{})

	a := createUser(t, db, "a@example.com")
	createUser(t, db, "b@example.com")

	taken := "b@example.com"
	_, err := svc.UpdateProfile(a.ID, &dto.UpdateProfileRequest{Email: &taken})
	assert.ErrorIs(t, err, ErrEmailTaken)

	fresh := "a2@example.com"
	resp, err := svc.UpdateProfile(a.ID, &dto.UpdateProfileRequest{Email: &fresh})
	require.NoError(t, err)
	assert.Equal(t, fresh, resp.Email)
}

func TestUpdatePassword(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, &mailRecorder{})

	user := createUser(t, db, "u@example.com")

	err := svc.UpdatePassword(user.ID, &dto.UpdatePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpassword1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.UpdatePassword(user.ID, &dto.UpdatePasswordRequest{
		CurrentPassword: "password123",
		NewPassword:     "newpassword1",
	}))

	_, err = svc.Login(&dto.LoginRequest{Email: "u@example.com", Password: "newpassword1"})
	require.NoError(t, err)
}

func TestSettingsLazyCreate(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db, &mailRecorder{})

	user := createUser(t, db, "u@example.com")

	settings, err := svc.GetSettings(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, settings.UserID)

	updated, err := svc.UpdateSettings(user.ID, &dto.UpdateSettingsRequest{
		Notifications: map[string]interface{}{"email": true},
	})
	require.NoError(t, err)
	assert.Contains(t, string(updated.Notifications), "email")
}
