package models

import (
	"time"

	"github.com/google/uuid"
)

// Property is a physical unit. It carries no owner reference; who may do
// what is derived from PropertyAccess rows only.
type Property struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Address            string     `gorm:"not null;size:255" json:"address"`
	City               string     `gorm:"not null;size:100" json:"city"`
	State              string     `gorm:"not null;size:50" json:"state"`
	Zip                string     `gorm:"not null;size:20" json:"zip"`
	PropertyType       string     `gorm:"not null;size:50" json:"property_type"`
	Status             string     `gorm:"size:20;default:'active'" json:"status"`
	PurchaseDate       *time.Time `json:"purchase_date"`
	PurchasePriceCents *int64     `json:"purchase_price_cents"`
	CurrentValueCents  *int64     `json:"current_value_cents"`
	Bedrooms           *int       `json:"bedrooms"`
	Bathrooms          *float64   `json:"bathrooms"`
	SquareFootage      *int       `json:"square_footage"`
	Description        string     `gorm:"type:text" json:"description,omitempty"`
	IsPrimaryResidence bool       `gorm:"default:false" json:"is_primary_residence"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
