package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/models"
	"gorm.io/gorm"
)

const apiKeyPrefix = "pp_live_"

var (
	ErrAPIKeyNotFound = errors.New("API key not found")
	ErrKeyInvalid     = errors.New("invalid API key")
	ErrKeyInactive    = errors.New("API key is inactive")
	ErrKeyExpired     = errors.New("API key has expired")
)

// APIKeyService manages machine credentials. Raw keys are pp_live_ plus 64
// hex chars; only the sha256 hash is persisted.
type APIKeyService struct {
	db *gorm.DB
}

func NewAPIKeyService(db *gorm.DB) *APIKeyService {
	return &APIKeyService{db: db}
}

func (s *APIKeyService) Create(userID uuid.UUID, req *dto.CreateAPIKeyRequest) (*dto.CreateAPIKeyResponse, error) {
	if req.Name == "" {
		return nil, errors.New("API key name is required")
	}

	raw, err := generateKey()
	if err != nil {
		return nil, err
	}

	scopes := req.Scopes
	if len(scopes) == 0 {
		scopes = []string{"read:maintenance", "write:maintenance"}
	}

	var expiresAt *time.Time
	if req.ExpiresDays != nil && *req.ExpiresDays > 0 {
		t := time.Now().UTC().AddDate(0, 0, *req.ExpiresDays)
		expiresAt = &t
	}

	key := models.APIKey{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		KeyHash:   hashToken(raw),
		KeyPrefix: raw[:12],
		Scopes:    strings.Join(scopes, ","),
		IsActive:  true,
		ExpiresAt: expiresAt,
	}
	if err := s.db.Create(&key).Error; err != nil {
		return nil, err
	}

	return &dto.CreateAPIKeyResponse{
		Message: "API key created successfully",
		APIKey:  raw,
		KeyInfo: keyInfo(&key),
		Warning: "Save this key now! You will not be able to see it again.",
	}, nil
}

func (s *APIKeyService) List(userID uuid.UUID) ([]dto.APIKeyInfo, error) {
	var keys []models.APIKey
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&keys).Error; err != nil {
		return nil, err
	}

	out := make([]dto.APIKeyInfo, 0, len(keys))
	for i := range keys {
		out = append(out, keyInfo(&keys[i]))
	}
	return out, nil
}

func (s *APIKeyService) Delete(userID, keyID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", keyID, userID).Delete(&models.APIKey{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAPIKeyNotFound
	}
	return nil
}

func (s *APIKeyService) Toggle(userID, keyID uuid.UUID) (*dto.APIKeyInfo, error) {
	var key models.APIKey
	if err := s.db.Where("id = ? AND user_id = ?", keyID, userID).First(&key).Error; err != nil {
		return nil, ErrAPIKeyNotFound
	}

	if err := s.db.Model(&key).Update("is_active", !key.IsActive).Error; err != nil {
		return nil, err
	}
	key.IsActive = !key.IsActive

	info := keyInfo(&key)
	return &info, nil
}

// Authenticate resolves a raw key to its record, enforcing format, hash
// match, active flag and expiry. Scope checks belong to the caller.
func (s *APIKeyService) Authenticate(raw string) (*models.APIKey, error) {
	if !strings.HasPrefix(raw, apiKeyPrefix) {
		return nil, ErrKeyInvalid
	}

	var key models.APIKey
	if err := s.db.Where("key_hash = ?", hashToken(raw)).First(&key).Error; err != nil {
		return nil, ErrKeyInvalid
	}

	if !key.IsActive {
		return nil, ErrKeyInactive
	}
	if key.ExpiresAt != nil && key.ExpiresAt.Before(time.Now().UTC()) {
		return nil, ErrKeyExpired
	}

	now := time.Now().UTC()
	s.db.Model(&key).Update("last_used_at", now)
	key.LastUsedAt = &now

	return &key, nil
}

func generateKey() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return apiKeyPrefix + hex.EncodeToString(b), nil
}

func keyInfo(key *models.APIKey) dto.APIKeyInfo {
	return dto.APIKeyInfo{
		ID:         key.ID,
		Name:       key.Name,
		KeyPrefix:  key.KeyPrefix,
		Scopes:     key.ScopeList(),
		IsActive:   key.IsActive,
		LastUsedAt: key.LastUsedAt,
		ExpiresAt:  key.ExpiresAt,
		CreatedAt:  key.CreatedAt,
	}
}
