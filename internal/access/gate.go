// Package access is the authorization core: every property-scoped read or
// write resolves the caller's PropertyAccess role here before touching
// resource rows.
package access

import (
	"errors"

	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/models"
	"gorm.io/gorm"
)

// ErrDenied covers both "property does not exist" and "exists but no
// permission". Handlers must not disambiguate the two; a caller probing
// property ids learns nothing from the response.
var ErrDenied = errors.New("property not found or access denied")

type Gate struct {
	db *gorm.DB
}

func NewGate(db *gorm.DB) *Gate {
	return &Gate{db: db}
}

// ResolveRole returns the caller's role on the property, considering only
// the unique active row. ok is false when no active association exists.
func (g *Gate) ResolveRole(propertyID, userID uuid.UUID) (Role, bool, error) {
	var pa models.PropertyAccess
	err := g.db.
		Where("property_id = ? AND user_id = ? AND status = ?", propertyID, userID, StatusActive).
		First(&pa).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, err
	}
	return Role(pa.Role), true, nil
}

// Authorize returns ErrDenied unless the caller holds one of the allowed
// roles with active status on the property.
func (g *Gate) Authorize(propertyID, userID uuid.UUID, allowed ...Role) error {
	role, ok, err := g.ResolveRole(propertyID, userID)
	if err != nil {
		return err
	}
	if !ok || !roleIn(role, allowed) {
		return ErrDenied
	}
	return nil
}

// AccessibleProperties lists property ids where the user holds one of the
// allowed roles with active status. Used to scope unfiltered list queries.
func (g *Gate) AccessibleProperties(userID uuid.UUID, allowed ...Role) ([]uuid.UUID, error) {
	roles := make([]string, len(allowed))
	for i, r := range allowed {
		roles[i] = string(r)
	}

	var ids []uuid.UUID
	err := g.db.Model(&models.PropertyAccess{}).
		Where("user_id = ? AND status = ? AND role IN ?", userID, StatusActive, roles).
		Pluck("property_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// VisibleTo is a GORM scope restricting a resource query to rows the user
// created directly OR rows under a property where they hold an allowed
// role. The creator bypass is a union with the role check, not a
// replacement: a user always sees what they personally created.
func (g *Gate) VisibleTo(userID uuid.UUID, allowed ...Role) (func(db *gorm.DB) *gorm.DB, error) {
	ids, err := g.AccessibleProperties(userID, allowed...)
	if err != nil {
		return nil, err
	}
	return func(db *gorm.DB) *gorm.DB {
		if len(ids) == 0 {
			return db.Where("user_id = ?", userID)
		}
		return db.Where("user_id = ? OR property_id IN ?", userID, ids)
	}, nil
}
