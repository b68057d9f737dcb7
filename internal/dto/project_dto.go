package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Status           string     `json:"status"`
	BudgetCents      *int64     `json:"budget_cents"`
	SpentCents       *int64     `json:"spent_cents"`
	StartDate        *time.Time `json:"start_date"`
	ProjectedEndDate *time.Time `json:"projected_end_date"`
	PropertyID       *uuid.UUID `json:"property_id"`
}

type UpdateProjectRequest struct {
	Name             *string    `json:"name"`
	Description      *string    `json:"description"`
	Status           *string    `json:"status"`
	BudgetCents      *int64     `json:"budget_cents"`
	SpentCents       *int64     `json:"spent_cents"`
	StartDate        *time.Time `json:"start_date"`
	ProjectedEndDate *time.Time `json:"projected_end_date"`
	CompletedDate    *time.Time `json:"completed_date"`
	PropertyID       *uuid.UUID `json:"property_id"`
}
