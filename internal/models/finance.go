package models

import (
	"time"

	"github.com/google/uuid"
)

// Amounts are stored in cents to keep arithmetic exact.

type Expense struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	PropertyID        uuid.UUID `gorm:"type:uuid;not null;index" json:"property_id"`
	Title             string    `gorm:"not null;size:255" json:"title"`
	AmountCents       int64     `gorm:"not null" json:"amount_cents"`
	Category          string    `gorm:"not null;size:50" json:"category"`
	Date              time.Time `gorm:"not null" json:"date"`
	Description       string    `gorm:"type:text" json:"description,omitempty"`
	Recurring         bool      `gorm:"default:false" json:"recurring"`
	RecurringInterval string    `gorm:"size:20" json:"recurring_interval,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	Property Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
}

// Budget is unique per (category, month, year, property); the second writer
// for the same key gets a conflict, not a second row.
type Budget struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	PropertyID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_budget_key" json:"property_id"`
	Category    string    `gorm:"not null;size:50;uniqueIndex:idx_budget_key" json:"category"`
	AmountCents int64     `gorm:"not null" json:"amount_cents"`
	Month       int       `gorm:"not null;uniqueIndex:idx_budget_key" json:"month"`
	Year        int       `gorm:"not null;uniqueIndex:idx_budget_key" json:"year"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Property Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
}
