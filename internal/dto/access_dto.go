package dto

import (
	"time"

	"github.com/google/uuid"
)

type InviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

type InviteResponse struct {
	Message string    `json:"message"`
	// Exactly one of the two ids is set, depending on whether the invitee
	// already has an account.
	PropertyAccessID    *uuid.UUID `json:"property_access_id,omitempty"`
	PendingInvitationID *uuid.UUID `json:"pending_invitation_id,omitempty"`
}

type MemberResponse struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Role       string     `json:"role"`
	Status     string     `json:"status"`
	InvitedAt  *time.Time `json:"invited_at"`
	AcceptedAt *time.Time `json:"accepted_at"`
}

type UpdateMemberRequest struct {
	Role   *string `json:"role"`
	Status *string `json:"status"`
}

type InvitationTokenRequest struct {
	Token string `json:"token"`
}

type InvitationResponse struct {
	ID        uuid.UUID       `json:"id"`
	Property  PropertySummary `json:"property"`
	Role      string          `json:"role"`
	InvitedBy InviterSummary  `json:"invited_by"`
	InvitedAt *time.Time      `json:"invited_at"`
	Token     string          `json:"token"`
}

type PropertySummary struct {
	ID      uuid.UUID `json:"id"`
	Address string    `json:"address"`
	City    string    `json:"city"`
	State   string    `json:"state"`
}

type InviterSummary struct {
	ID   *uuid.UUID `json:"id"`
	Name string     `json:"name"`
}

type AcceptInvitationResponse struct {
	Message  string          `json:"message"`
	Property PropertySummary `json:"property"`
	Role     string          `json:"role"`
}
