package dto

import "time"

type CreatePropertyRequest struct {
	Address            string     `json:"address"`
	City               string     `json:"city"`
	State              string     `json:"state"`
	Zip                string     `json:"zip"`
	PropertyType       string     `json:"property_type"`
	Status             string     `json:"status"`
	PurchaseDate       *time.Time `json:"purchase_date"`
	PurchasePriceCents *int64     `json:"purchase_price_cents"`
	CurrentValueCents  *int64     `json:"current_value_cents"`
	Bedrooms           *int       `json:"bedrooms"`
	Bathrooms          *float64   `json:"bathrooms"`
	SquareFootage      *int       `json:"square_footage"`
	Description        string     `json:"description"`
}

type UpdatePropertyRequest struct {
	Address            *string    `json:"address"`
	City               *string    `json:"city"`
	State              *string    `json:"state"`
	Zip                *string    `json:"zip"`
	PropertyType       *string    `json:"property_type"`
	Status             *string    `json:"status"`
	PurchaseDate       *time.Time `json:"purchase_date"`
	PurchasePriceCents *int64     `json:"purchase_price_cents"`
	CurrentValueCents  *int64     `json:"current_value_cents"`
	Bedrooms           *int       `json:"bedrooms"`
	Bathrooms          *float64   `json:"bathrooms"`
	SquareFootage      *int       `json:"square_footage"`
	Description        *string    `json:"description"`
}
