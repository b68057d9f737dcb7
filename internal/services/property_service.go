package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/models"
	"gorm.io/gorm"
)

type PropertyService struct {
	db   *gorm.DB
	gate *access.Gate
}

func NewPropertyService(db *gorm.DB, gate *access.Gate) *PropertyService {
	return &PropertyService{db: db, gate: gate}
}

// Create inserts the property and the creator's owner association in one
// transaction. The property row itself has no owner column.
func (s *PropertyService) Create(userID uuid.UUID, req *dto.CreatePropertyRequest) (*models.Property, error) {
	if req.Address == "" || req.City == "" || req.State == "" || req.Zip == "" || req.PropertyType == "" {
		return nil, errors.New("address, city, state, zip and property_type are required")
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	now := time.Now().UTC()
	property := models.Property{
		ID:                 uuid.New(),
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		Zip:                req.Zip,
		PropertyType:       req.PropertyType,
		Status:             status,
		PurchaseDate:       req.PurchaseDate,
		PurchasePriceCents: req.PurchasePriceCents,
		CurrentValueCents:  req.CurrentValueCents,
		Bedrooms:           req.Bedrooms,
		Bathrooms:          req.Bathrooms,
		SquareFootage:      req.SquareFootage,
		Description:        req.Description,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&property).Error; err != nil {
			return err
		}
		pa := models.PropertyAccess{
			ID:         uuid.New(),
			PropertyID: property.ID,
			UserID:     userID,
			Role:       string(access.RoleOwner),
			Status:     string(access.StatusActive),
			AcceptedAt: &now,
		}
		return tx.Create(&pa).Error
	})
	if err != nil {
		return nil, err
	}
	return &property, nil
}

// List returns every property where the caller holds any active role.
func (s *PropertyService) List(userID uuid.UUID) ([]models.Property, error) {
	ids, err := s.gate.AccessibleProperties(userID, access.Everyone...)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.Property{}, nil
	}

	var properties []models.Property
	if err := s.db.Where("id IN ?", ids).Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *PropertyService) Get(propertyID, userID uuid.UUID) (*models.Property, error) {
	if err := s.gate.Authorize(propertyID, userID, access.Everyone...); err != nil {
		return nil, err
	}

	var property models.Property
	if err := s.db.First(&property, "id = ?", propertyID).Error; err != nil {
		return nil, access.ErrDenied
	}
	return &property, nil
}

func (s *PropertyService) Update(propertyID, userID uuid.UUID, req *dto.UpdatePropertyRequest) (*models.Property, error) {
	if err := s.gate.Authorize(propertyID, userID, access.Managers...); err != nil {
		return nil, err
	}

	var property models.Property
	if err := s.db.First(&property, "id = ?", propertyID).Error; err != nil {
		return nil, access.ErrDenied
	}

	updates := map[string]interface{}{}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.City != nil {
		updates["city"] = *req.City
	}
	if req.State != nil {
		updates["state"] = *req.State
	}
	if req.Zip != nil {
		updates["zip"] = *req.Zip
	}
	if req.PropertyType != nil {
		updates["property_type"] = *req.PropertyType
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.PurchaseDate != nil {
		updates["purchase_date"] = *req.PurchaseDate
	}
	if req.PurchasePriceCents != nil {
		updates["purchase_price_cents"] = *req.PurchasePriceCents
	}
	if req.CurrentValueCents != nil {
		updates["current_value_cents"] = *req.CurrentValueCents
	}
	if req.Bedrooms != nil {
		updates["bedrooms"] = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		updates["bathrooms"] = *req.Bathrooms
	}
	if req.SquareFootage != nil {
		updates["square_footage"] = *req.SquareFootage
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.db.Model(&property).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &property, nil
}

// Delete removes the property and everything scoped to it. Active owners
// only; managers cannot delete.
func (s *PropertyService) Delete(propertyID, userID uuid.UUID) error {
	if err := s.gate.Authorize(propertyID, userID, access.RoleOwner); err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.PropertyAccess{},
			&models.PendingInvitation{},
			&models.Document{},
			&models.Maintenance{},
			&models.ChecklistItem{},
			&models.Tenant{},
			&models.Expense{},
			&models.Budget{},
			&models.Appliance{},
			&models.Project{},
		} {
			if err := tx.Where("property_id = ?", propertyID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Property{}, "id = ?", propertyID).Error
	})
}

// SetPrimaryResidence flags one property and clears the flag on the rest of
// the caller's portfolio.
func (s *PropertyService) SetPrimaryResidence(propertyID, userID uuid.UUID) (*models.Property, error) {
	if err := s.gate.Authorize(propertyID, userID, access.Managers...); err != nil {
		return nil, err
	}

	ids, err := s.gate.AccessibleProperties(userID, access.Everyone...)
	if err != nil {
		return nil, err
	}

	var property models.Property
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if len(ids) > 0 {
			if err := tx.Model(&models.Property{}).
				Where("id IN ? AND is_primary_residence = true", ids).
				Update("is_primary_residence", false).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&models.Property{}).Where("id = ?", propertyID).
			Update("is_primary_residence", true).Error; err != nil {
			return err
		}
		return tx.First(&property, "id = ?", propertyID).Error
	})
	if err != nil {
		return nil, err
	}
	return &property, nil
}
