package models

import (
	"time"

	"github.com/google/uuid"
)

type Appliance struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	PropertyID         *uuid.UUID `gorm:"type:uuid;index" json:"property_id"`
	Name               string     `gorm:"not null;size:255" json:"name"`
	Brand              string     `gorm:"size:100" json:"brand,omitempty"`
	Model              string     `gorm:"size:100" json:"model,omitempty"`
	SerialNumber       string     `gorm:"size:100" json:"serial_number,omitempty"`
	Category           string     `gorm:"not null;size:50" json:"category"`
	Location           string     `gorm:"size:100" json:"location,omitempty"`
	PurchaseDate       *time.Time `json:"purchase_date"`
	WarrantyExpiration *time.Time `json:"warranty_expiration"`
	Notes              string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
