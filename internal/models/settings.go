package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Settings is one row per user, created lazily on first read.
type Settings struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Notifications datatypes.JSON `gorm:"default:'{}'" json:"notifications"`
	Appearance    datatypes.JSON `gorm:"default:'{}'" json:"appearance"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	User          User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Settings) TableName() string {
	return "user_settings"
}
