package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/models"
	"gorm.io/gorm"
)

// DocumentService stores file metadata; bytes live in external storage.
// Documents are the one resource category tenants may read: a renter can
// pull their lease without holding manager rights.
type DocumentService struct {
	db   *gorm.DB
	gate *access.Gate
}

func NewDocumentService(db *gorm.DB, gate *access.Gate) *DocumentService {
	return &DocumentService{db: db, gate: gate}
}

func (s *DocumentService) Create(userID uuid.UUID, req *dto.CreateDocumentRequest) (*models.Document, error) {
	if req.Title == "" || req.Category == "" {
		return nil, errors.New("title and category are required")
	}

	if req.PropertyID != nil {
		if err := s.gate.Authorize(*req.PropertyID, userID, access.Managers...); err != nil {
			return nil, err
		}
	}

	doc := models.Document{
		ID:             uuid.New(),
		UserID:         userID,
		PropertyID:     req.PropertyID,
		TenantID:       req.TenantID,
		Title:          req.Title,
		Description:    req.Description,
		FilePath:       req.FilePath,
		FileType:       req.FileType,
		FileSize:       req.FileSize,
		Category:       req.Category,
		ExpirationDate: req.ExpirationDate,
	}
	if err := s.db.Create(&doc).Error; err != nil {
		return nil, err
	}
	return &doc, nil
}

func (s *DocumentService) List(userID uuid.UUID, filter *dto.DocumentFilter) ([]models.Document, error) {
	q := s.db.Model(&models.Document{})

	if filter.PropertyID != nil {
		if err := s.gate.Authorize(*filter.PropertyID, userID, access.Everyone...); err != nil {
			return nil, err
		}
		q = q.Where("property_id = ?", *filter.PropertyID)
	} else {
		scope, err := s.gate.VisibleTo(userID, access.Everyone...)
		if err != nil {
			return nil, err
		}
		q = q.Scopes(scope)
	}

	if filter.TenantID != nil {
		q = q.Where("tenant_id = ?", *filter.TenantID)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}

	var docs []models.Document
	if err := q.Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Get allows any associated role including tenants.
func (s *DocumentService) Get(docID, userID uuid.UUID) (*models.Document, error) {
	doc, err := s.find(docID)
	if err != nil {
		return nil, err
	}
	if err := authorizeScoped(s.gate, doc.PropertyID, doc.UserID, userID, access.Everyone...); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DocumentService) Update(docID, userID uuid.UUID, req *dto.UpdateDocumentRequest) (*models.Document, error) {
	doc, err := s.find(docID)
	if err != nil {
		return nil, err
	}
	if err := authorizeMove(s.gate, doc.PropertyID, req.PropertyID, doc.UserID, userID, access.Managers...); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.PropertyID != nil {
		updates["property_id"] = *req.PropertyID
	}
	if req.TenantID != nil {
		updates["tenant_id"] = *req.TenantID
	}
	if req.ExpirationDate != nil {
		updates["expiration_date"] = *req.ExpirationDate
	}

	if len(updates) > 0 {
		if err := s.db.Model(doc).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func (s *DocumentService) Delete(docID, userID uuid.UUID) error {
	doc, err := s.find(docID)
	if err != nil {
		return err
	}
	if err := authorizeScoped(s.gate, doc.PropertyID, doc.UserID, userID, access.Managers...); err != nil {
		return err
	}
	return s.db.Delete(doc).Error
}

func (s *DocumentService) find(docID uuid.UUID) (*models.Document, error) {
	var doc models.Document
	if err := s.db.First(&doc, "id = ?", docID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrDenied
		}
		return nil, err
	}
	return &doc, nil
}
