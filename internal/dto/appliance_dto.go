package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateApplianceRequest struct {
	Name               string     `json:"name"`
	Brand              string     `json:"brand"`
	Model              string     `json:"model"`
	SerialNumber       string     `json:"serial_number"`
	Category           string     `json:"category"`
	Location           string     `json:"location"`
	PurchaseDate       *time.Time `json:"purchase_date"`
	WarrantyExpiration *time.Time `json:"warranty_expiration"`
	Notes              string     `json:"notes"`
	PropertyID         *uuid.UUID `json:"property_id"`
}

type UpdateApplianceRequest struct {
	Name               *string    `json:"name"`
	Brand              *string    `json:"brand"`
	Model              *string    `json:"model"`
	SerialNumber       *string    `json:"serial_number"`
	Category           *string    `json:"category"`
	Location           *string    `json:"location"`
	PurchaseDate       *time.Time `json:"purchase_date"`
	WarrantyExpiration *time.Time `json:"warranty_expiration"`
	Notes              *string    `json:"notes"`
	PropertyID         *uuid.UUID `json:"property_id"`
}
