package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateMaintenanceRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	PropertyID  *uuid.UUID `json:"property_id"`
}

type UpdateMaintenanceRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority"`
	Status      *string    `json:"status"`
	DueDate     *time.Time `json:"due_date"`
	PropertyID  *uuid.UUID `json:"property_id"`
}

type MaintenanceFilter struct {
	PropertyID *uuid.UUID
	Status     string
	Priority   string
}

type CreateChecklistItemRequest struct {
	Task        string     `json:"task"`
	Description string     `json:"description"`
	Season      string     `json:"season"`
	PropertyID  *uuid.UUID `json:"property_id"`
}

type UpdateChecklistItemRequest struct {
	Task        *string `json:"task"`
	Description *string `json:"description"`
	Season      *string `json:"season"`
	IsCompleted *bool   `json:"is_completed"`
}
