package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTenantRequest struct {
	PropertyID            uuid.UUID  `json:"property_id"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone"`
	LeaseStart            *time.Time `json:"lease_start"`
	LeaseEnd              *time.Time `json:"lease_end"`
	MonthlyRentCents      *int64     `json:"monthly_rent_cents"`
	SecurityDepositCents  *int64     `json:"security_deposit_cents"`
	RentPaidThrough       *time.Time `json:"rent_paid_through"`
	EmergencyContactName  string     `json:"emergency_contact_name"`
	EmergencyContactPhone string     `json:"emergency_contact_phone"`
	Notes                 string     `json:"notes"`
	Status                string     `json:"status"`
}

type UpdateTenantRequest struct {
	PropertyID            *uuid.UUID `json:"property_id"`
	FirstName             *string    `json:"first_name"`
	LastName              *string    `json:"last_name"`
	Email                 *string    `json:"email"`
	Phone                 *string    `json:"phone"`
	LeaseStart            *time.Time `json:"lease_start"`
	LeaseEnd              *time.Time `json:"lease_end"`
	MonthlyRentCents      *int64     `json:"monthly_rent_cents"`
	SecurityDepositCents  *int64     `json:"security_deposit_cents"`
	RentPaidThrough       *time.Time `json:"rent_paid_through"`
	EmergencyContactName  *string    `json:"emergency_contact_name"`
	EmergencyContactPhone *string    `json:"emergency_contact_phone"`
	Notes                 *string    `json:"notes"`
	Status                *string    `json:"status"`
}
