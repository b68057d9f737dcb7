package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/models"
	"gorm.io/gorm"
)

type ApplianceService struct {
	db   *gorm.DB
	gate *access.Gate
}

func NewApplianceService(db *gorm.DB, gate *access.Gate) *ApplianceService {
	return &ApplianceService{db: db, gate: gate}
}

func (s *ApplianceService) Create(userID uuid.UUID, req *dto.CreateApplianceRequest) (*models.Appliance, error) {
	if req.Name == "" || req.Category == "" {
		return nil, errors.New("name and category are required")
	}

	if req.PropertyID != nil {
		if err := s.gate.Authorize(*req.PropertyID, userID, access.Managers...); err != nil {
			return nil, err
		}
	}

	appliance := models.Appliance{
		ID:                 uuid.New(),
		UserID:             userID,
		PropertyID:         req.PropertyID,
		Name:               req.Name,
		Brand:              req.Brand,
		Model:              req.Model,
		SerialNumber:       req.SerialNumber,
		Category:           req.Category,
		Location:           req.Location,
		PurchaseDate:       req.PurchaseDate,
		WarrantyExpiration: req.WarrantyExpiration,
		Notes:              req.Notes,
	}
	if err := s.db.Create(&appliance).Error; err != nil {
		return nil, err
	}
	return &appliance, nil
}

func (s *ApplianceService) List(userID uuid.UUID, propertyID *uuid.UUID, category string) ([]models.Appliance, error) {
	q := s.db.Model(&models.Appliance{})

	if propertyID != nil {
		if err := s.gate.Authorize(*propertyID, userID, access.Managers...); err != nil {
			return nil, err
		}
		q = q.Where("property_id = ?", *propertyID)
	} else {
		scope, err := s.gate.VisibleTo(userID, access.Managers...)
		if err != nil {
			return nil, err
		}
		q = q.Scopes(scope)
	}

	if category != "" {
		q = q.Where("category = ?", category)
	}

	var appliances []models.Appliance
	if err := q.Order("created_at DESC").Find(&appliances).Error; err != nil {
		return nil, err
	}
	return appliances, nil
}

func (s *ApplianceService) Get(applianceID, userID uuid.UUID) (*models.Appliance, error) {
	appliance, err := s.find(applianceID)
	if err != nil {
		return nil, err
	}
	if err := authorizeScoped(s.gate, appliance.PropertyID, appliance.UserID, userID, access.Managers...); err != nil {
		return nil, err
	}
	return appliance, nil
}

func (s *ApplianceService) Update(applianceID, userID uuid.UUID, req *dto.UpdateApplianceRequest) (*models.Appliance, error) {
	appliance, err := s.find(applianceID)
	if err != nil {
		return nil, err
	}
	if err := authorizeMove(s.gate, appliance.PropertyID, req.PropertyID, appliance.UserID, userID, access.Managers...); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Model != nil {
		updates["model"] = *req.Model
	}
	if req.SerialNumber != nil {
		updates["serial_number"] = *req.SerialNumber
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.PurchaseDate != nil {
		updates["purchase_date"] = *req.PurchaseDate
	}
	if req.WarrantyExpiration != nil {
		updates["warranty_expiration"] = *req.WarrantyExpiration
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.PropertyID != nil {
		updates["property_id"] = *req.PropertyID
	}

	if len(updates) > 0 {
		if err := s.db.Model(appliance).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return appliance, nil
}

func (s *ApplianceService) Delete(applianceID, userID uuid.UUID) error {
	appliance, err := s.find(applianceID)
	if err != nil {
		return err
	}
	if err := authorizeScoped(s.gate, appliance.PropertyID, appliance.UserID, userID, access.Managers...); err != nil {
		return err
	}
	return s.db.Delete(appliance).Error
}

func (s *ApplianceService) find(applianceID uuid.UUID) (*models.Appliance, error) {
	var appliance models.Appliance
	if err := s.db.First(&appliance, "id = ?", applianceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrDenied
		}
		return nil, err
	}
	return &appliance, nil
}
