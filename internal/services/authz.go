package services

import (
	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/access"
)

// authorizeScoped applies the uniform resource rule: when the record is
// property-scoped the caller's role must be in the allowed set; when it is
// not, only the creator may touch it. Failures are always the ambiguous
// denial, never a hint that the record exists.
func authorizeScoped(gate *access.Gate, propertyID *uuid.UUID, creatorID, callerID uuid.UUID, allowed ...access.Role) error {
	if propertyID != nil {
		return gate.Authorize(*propertyID, callerID, allowed...)
	}
	if creatorID != callerID {
		return access.ErrDenied
	}
	return nil
}

// authorizeMove guards re-pointing a record at a different property: the
// caller needs rights on both sides of the move.
func authorizeMove(gate *access.Gate, from, to *uuid.UUID, creatorID, callerID uuid.UUID, allowed ...access.Role) error {
	if err := authorizeScoped(gate, from, creatorID, callerID, allowed...); err != nil {
		return err
	}
	if to != nil && (from == nil || *from != *to) {
		return gate.Authorize(*to, callerID, allowed...)
	}
	return nil
}
