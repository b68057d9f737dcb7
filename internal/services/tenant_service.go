package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/models"
	"gorm.io/gorm"
)

// TenantService manages occupancy records. A tenant row always belongs to a
// property, so every operation goes through the gate.
type TenantService struct {
	db   *gorm.DB
	gate *access.Gate
}

func NewTenantService(db *gorm.DB, gate *access.Gate) *TenantService {
	return &TenantService{db: db, gate: gate}
}

func (s *TenantService) Create(userID uuid.UUID, req *dto.CreateTenantRequest) (*models.Tenant, error) {
	if req.FirstName == "" || req.LastName == "" || req.Email == "" {
		return nil, errors.New("first name, last name and email are required")
	}
	if req.PropertyID == uuid.Nil {
		return nil, errors.New("property_id is required")
	}

	if err := s.gate.Authorize(req.PropertyID, userID, access.Managers...); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = "active"
	}

	tenant := models.Tenant{
		ID:                    uuid.New(),
		UserID:                userID,
		PropertyID:            req.PropertyID,
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		LeaseStart:            req.LeaseStart,
		LeaseEnd:              req.LeaseEnd,
		MonthlyRentCents:      req.MonthlyRentCents,
		SecurityDepositCents:  req.SecurityDepositCents,
		RentPaidThrough:       req.RentPaidThrough,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		Notes:                 req.Notes,
		Status:                status,
	}
	if err := s.db.Create(&tenant).Error; err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (s *TenantService) List(userID uuid.UUID, propertyID *uuid.UUID) ([]models.Tenant, error) {
	q := s.db.Model(&models.Tenant{})

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

	var tenants []models.Tenant
	if err := q.Order("created_at DESC").Find(&tenants).Error; err != nil {
		return nil, err
	}
	return tenants, nil
}

func (s *TenantService) Get(tenantID, userID uuid.UUID) (*models.Tenant, error) {
	tenant, err := s.find(tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(tenant.PropertyID, userID, access.Managers...); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *TenantService) Update(tenantID, userID uuid.UUID, req *dto.UpdateTenantRequest) (*models.Tenant, error) {
	tenant, err := s.find(tenantID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.Authorize(tenant.PropertyID, userID, access.Managers...); err != nil {
		return nil, err
	}
	if req.PropertyID != nil && *req.PropertyID != tenant.PropertyID {
		if err := s.gate.Authorize(*req.PropertyID, userID, access.Managers...); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if req.PropertyID != nil {
		updates["property_id"] = *req.PropertyID
	}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.LeaseStart != nil {
		updates["lease_start"] = *req.LeaseStart
	}
	if req.LeaseEnd != nil {
		updates["lease_end"] = *req.LeaseEnd
	}
	if req.MonthlyRentCents != nil {
		updates["monthly_rent_cents"] = *req.MonthlyRentCents
	}
	if req.SecurityDepositCents != nil {
		updates["security_deposit_cents"] = *req.SecurityDepositCents
	}
	if req.RentPaidThrough != nil {
		updates["rent_paid_through"] = *req.RentPaidThrough
	}
	if req.EmergencyContactName != nil {
		updates["emergency_contact_name"] = *req.EmergencyContactName
	}
	if req.EmergencyContactPhone != nil {
		updates["emergency_contact_phone"] = *req.EmergencyContactPhone
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}

	if len(updates) > 0 {
		if err := s.db.Model(tenant).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return tenant, nil
}

func (s *TenantService) Delete(tenantID, userID uuid.UUID) error {
	tenant, err := s.find(tenantID)
	if err != nil {
		return err
	}
	if err := s.gate.Authorize(tenant.PropertyID, userID, access.Managers...); err != nil {
		return err
	}
	return s.db.Delete(tenant).Error
}

func (s *TenantService) find(tenantID uuid.UUID) (*models.Tenant, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, "id = ?", tenantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrDenied
		}
		return nil, err
	}
	return &tenant, nil
}
