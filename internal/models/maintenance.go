package models

import (
	"time"

	"github.com/google/uuid"
)

type Maintenance struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	PropertyID  *uuid.UUID `gorm:"type:uuid;index" json:"property_id"`
	Title       string     `gorm:"not null;size:255" json:"title"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Priority    string     `gorm:"size:20;default:'medium'" json:"priority"`
	Status      string     `gorm:"size:20;default:'pending'" json:"status"`
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Maintenance) TableName() string {
	return "maintenance_requests"
}

// ChecklistItem is a recurring seasonal maintenance task.
type ChecklistItem struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	PropertyID  *uuid.UUID `gorm:"type:uuid;index" json:"property_id"`
	Task        string     `gorm:"not null;size:255" json:"task"`
	Description string     `gorm:"type:text" json:"description,omitempty"`
	Season      string     `gorm:"not null;size:20" json:"season"`
	IsCompleted bool       `gorm:"default:false" json:"is_completed"`
	CompletedAt *time.Time `json:"completed_at"`
	IsDefault   bool       `gorm:"default:false" json:"is_default"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (ChecklistItem) TableName() string {
	return "maintenance_checklist_items"
}
