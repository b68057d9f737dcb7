package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyAccess binds one user to one property with an authorization role
// and an invitation lifecycle status. The unique index on
// (property_id, user_id) is the consistency backstop: two concurrent invites
// for the same pair cannot both land.
type PropertyAccess struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_property_access_pair" json:"property_id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_property_access_pair" json:"user_id"`
	Role            string     `gorm:"size:20;not null;default:'tenant'" json:"role"`
	Status          string     `gorm:"size:20;not null;default:'pending'" json:"status"`
	InvitedBy       *uuid.UUID `gorm:"type:uuid" json:"invited_by"`
	InvitedAt       *time.Time `json:"invited_at"`
	AcceptedAt      *time.Time `json:"accepted_at"`
	InvitationToken *string    `gorm:"size:255;index" json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	Property Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
	User     User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
