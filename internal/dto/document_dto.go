package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Category       string     `json:"category"`
	FilePath       string     `json:"file_path"`
	FileType       string     `json:"file_type"`
	FileSize       int64      `json:"file_size"`
	PropertyID     *uuid.UUID `json:"property_id"`
	TenantID       *uuid.UUID `json:"tenant_id"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

type UpdateDocumentRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Category       *string    `json:"category"`
	PropertyID     *uuid.UUID `json:"property_id"`
	TenantID       *uuid.UUID `json:"tenant_id"`
	ExpirationDate *time.Time `json:"expiration_date"`
}

type DocumentFilter struct {
	PropertyID *uuid.UUID
	TenantID   *uuid.UUID
	Category   string
}
