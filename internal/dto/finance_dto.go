package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateExpenseRequest struct {
	PropertyID        uuid.UUID `json:"property_id"`
	Title             string    `json:"title"`
	AmountCents       int64     `json:"amount_cents"`
	Category          string    `json:"category"`
	Date              time.Time `json:"date"`
	Description       string    `json:"description"`
	Recurring         bool      `json:"recurring"`
	RecurringInterval string    `json:"recurring_interval"`
}

type UpdateExpenseRequest struct {
	PropertyID        *uuid.UUID `json:"property_id"`
	Title             *string    `json:"title"`
	AmountCents       *int64     `json:"amount_cents"`
	Category          *string    `json:"category"`
	Date              *time.Time `json:"date"`
	Description       *string    `json:"description"`
	Recurring         *bool      `json:"recurring"`
	RecurringInterval *string    `json:"recurring_interval"`
}

type CreateBudgetRequest struct {
	PropertyID  uuid.UUID `json:"property_id"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
}

type UpdateBudgetRequest struct {
	AmountCents *int64 `json:"amount_cents"`
}
