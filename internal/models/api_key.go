package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// APIKey is a long-lived machine credential (home-automation integrations).
// Only the sha256 hash is stored; the raw pp_live_... value is shown once on
// creation. Scopes are comma-separated permission strings, independent of
// the per-property role model.
type APIKey struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string     `gorm:"not null;size:100" json:"name"`
	KeyHash    string     `gorm:"uniqueIndex;not null;size:64" json:"-"`
	KeyPrefix  string     `gorm:"not null;size:12" json:"key_prefix"`
	Scopes     string     `gorm:"size:500;default:'read:maintenance,write:maintenance'" json:"-"`
	IsActive   bool       `gorm:"default:true" json:"is_active"`
	LastUsedAt *time.Time `json:"last_used_at"`
	ExpiresAt  *time.Time `json:"expires_at"`
	CreatedAt  time.Time  `json:"created_at"`
	User       User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (k *APIKey) HasScope(scope string) bool {
	if k.Scopes == "" {
		return false
	}
	for _, s := range strings.Split(k.Scopes, ",") {
		if strings.TrimSpace(s) == scope {
			return true
		}
	}
	return false
}

func (k *APIKey) ScopeList() []string {
	if k.Scopes == "" {
		return nil
	}
	parts := strings.Split(k.Scopes, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
