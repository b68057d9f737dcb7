package services

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAPIKeyFormatAndDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := NewAPIKeyService(db)

	user := createUser(t, db, "u@example.com")

	resp, err := svc.Create(user.ID, &dto.CreateAPIKeyRequest{Name: "Home Assistant"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.APIKey, "pp_live_"))
	assert.Len(t, resp.APIKey, len("pp_live_")+64)
	assert.Equal(t, resp.APIKey[:12], resp.KeyInfo.KeyPrefix)
	assert.ElementsMatch(t, []string{"read:maintenance", "write:maintenance"}, resp.KeyInfo.Scopes)
	assert.True(t, resp.KeyInfo.IsActive)

	// The raw key is not recoverable from what List returns.
	keys, err := svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, resp.APIKey[:12], keys[0].KeyPrefix)
}

func TestAuthenticateAPIKey(t *testing.T) {
	db := newTestDB(t)
	svc := NewAPIKeyService(db)

	user := createUser(t, db, "u@example.com")
	resp, err := svc.Create(user.ID, &dto.CreateAPIKeyRequest{
		Name:   "integration",
		Scopes: []string{"read:maintenance"},
	})
	require.NoError(t, err)

	key, err := svc.Authenticate(resp.APIKey)
	require.NoError(t, err)
	assert.Equal(t, user.ID, key.UserID)
	assert.True(t, key.HasScope("read:maintenance"))
	assert.False(t, key.HasScope("write:maintenance"))
	assert.NotNil(t, key.LastUsedAt)

	_, err = svc.Authenticate("pp_live_" + strings.Repeat("0", 64))
	assert.ErrorIs(t, err, ErrKeyInvalid)

	_, err = svc.Authenticate("not-a-key")
	assert.ErrorIs(t, err, ErrKeyInvalid)
}

func TestAuthenticateInactiveAndExpiredKeys(t *testing.T) {
	db := newTestDB(t)
	svc := NewAPIKeyService(db)

	user := createUser(t, db, "u@example.com")
	resp, err := svc.Create(user.ID, &dto.CreateAPIKeyRequest{Name: "toggled"})
	require.NoError(t, err)

	_, err = svc.Toggle(user.ID, resp.KeyInfo.ID)
	require.NoError(t, err)

	_, err = svc.Authenticate(resp.APIKey)
	assert.ErrorIs(t, err, ErrKeyInactive)

	info, err := svc.Toggle(user.ID, resp.KeyInfo.ID)
	require.NoError(t, err)
	assert.True(t, info.IsActive)

	_, err = svc.Authenticate(resp.APIKey)
	require.NoError(t, err)

	// Force the key past its expiry.
	past := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, db.Table("api_keys").Where("id = ?", resp.KeyInfo.ID).
		Update("expires_at", past).Error)

	_, err = svc.Authenticate(resp.APIKey)
	assert.ErrorIs(t, err, ErrKeyExpired)
}

func TestDeleteAPIKeyScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := NewAPIKeyService(db)

	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	resp, err := svc.Create(alice.ID, &dto.CreateAPIKeyRequest{Name: "mine"})
	require.NoError(t, err)

	// Someone else's key id is indistinguishable from a missing one.
	assert.ErrorIs(t, svc.Delete(bob.ID, resp.KeyInfo.ID), ErrAPIKeyNotFound)
	assert.ErrorIs(t, svc.Delete(alice.ID, uuid.New()), ErrAPIKeyNotFound)

	require.NoError(t, svc.Delete(alice.ID, resp.KeyInfo.ID))

	keys, err := svc.List(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, keys)
}
