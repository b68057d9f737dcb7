package models

import (
	"time"

	"github.com/google/uuid"
)

type Project struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID           uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	PropertyID       *uuid.UUID `gorm:"type:uuid;index" json:"property_id"`
	Name             string     `gorm:"not null;size:255" json:"name"`
	Description      string     `gorm:"type:text" json:"description,omitempty"`
	Status           string     `gorm:"size:20;default:'planning'" json:"status"`
	BudgetCents      *int64     `json:"budget_cents"`
	SpentCents       *int64     `json:"spent_cents"`
	StartDate        *time.Time `json:"start_date"`
	ProjectedEndDate *time.Time `json:"projected_end_date"`
	CompletedDate    *time.Time `json:"completed_date"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
