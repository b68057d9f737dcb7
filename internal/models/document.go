package models

import (
	"time"

	"github.com/google/uuid"
)

// Document is file metadata; the file itself lives in external storage.
// PropertyID and TenantID are optional: a document can belong to just the
// uploading user.
type Document struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	PropertyID     *uuid.UUID `gorm:"type:uuid;index" json:"property_id"`
	TenantID       *uuid.UUID `gorm:"type:uuid;index" json:"tenant_id"`
	Title          string     `gorm:"not null;size:255" json:"title"`
	Description    string     `gorm:"type:text" json:"description,omitempty"`
	FilePath       string     `gorm:"not null;size:500" json:"file_path"`
	FileType       string     `gorm:"not null;size:100" json:"file_type"`
	FileSize       int64      `gorm:"not null" json:"file_size"`
	Category       string     `gorm:"not null;size:50" json:"category"`
	ExpirationDate *time.Time `json:"expiration_date"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
