package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant is an occupancy record kept by a landlord. It is not a user
// account and not a PropertyAccess role; a renter may appear here without
// ever registering.
type Tenant struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	PropertyID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"property_id"`
	FirstName             string     `gorm:"not null;size:100" json:"first_name"`
	LastName              string     `gorm:"not null;size:100" json:"last_name"`
	Email                 string     `gorm:"not null;size:255" json:"email"`
	Phone                 string     `gorm:"size:20" json:"phone"`
	LeaseStart            *time.Time `json:"lease_start"`
	LeaseEnd              *time.Time `json:"lease_end"`
	MonthlyRentCents      *int64     `json:"monthly_rent_cents"`
	SecurityDepositCents  *int64     `json:"security_deposit_cents"`
	RentPaidThrough       *time.Time `json:"rent_paid_through"`
	EmergencyContactName  string     `gorm:"size:100" json:"emergency_contact_name"`
	EmergencyContactPhone string     `gorm:"size:20" json:"emergency_contact_phone"`
	Notes                 string     `gorm:"type:text" json:"notes,omitempty"`
	Status                string     `gorm:"size:20;default:'active'" json:"status"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`

	Property Property `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
}
