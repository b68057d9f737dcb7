package models

import (
	"time"

	"github.com/google/uuid"
)

// PendingInvitation holds an invite addressed to an email with no account
// yet. It is consumed at registration time (converted into an active
// PropertyAccess row) or silently ignored after expires_at.
type PendingInvitation struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string    `gorm:"not null;size:255;index" json:"email"`
	PropertyID      uuid.UUID `gorm:"type:uuid;not null" json:"property_id"`
	Role            string    `gorm:"size:20;not null" json:"role"`
	InvitedBy       uuid.UUID `gorm:"type:uuid;not null" json:"invited_by"`
	InvitationToken string    `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt       time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt       time.Time `json:"created_at"`

	Property Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
}
