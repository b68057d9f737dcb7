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

var ErrInvalidSeason = errors.New("invalid season, must be one of: spring, summer, fall, winter")

func validSeason(s string) bool {
	switch s {
	case "spring", "summer", "fall", "winter":
		return true
	}
	return false
}

type ChecklistService struct {
	db   *gorm.DB
	gate *access.Gate
}

func NewChecklistService(db *gorm.DB, gate *access.Gate) *ChecklistService {
	return &ChecklistService{db: db, gate: gate}
}

func (s *ChecklistService) Create(userID uuid.UUID, req *dto.CreateChecklistItemRequest) (*models.ChecklistItem, error) {
	if req.Task == "" {
		return nil, errors.New("task is required")
	}
	if !validSeason(req.Season) {
		return nil, ErrInvalidSeason
	}

	if req.PropertyID != nil {
		if err := s.gate.Authorize(*req.PropertyID, userID, access.Managers...); err != nil {
			return nil, err
		}
	}

	item := models.ChecklistItem{
		ID:          uuid.New(),
		UserID:      userID,
		PropertyID:  req.PropertyID,
		Task:        req.Task,
		Description: req.Description,
		Season:      req.Season,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *ChecklistService) List(userID uuid.UUID, propertyID *uuid.UUID, season string) ([]models.ChecklistItem, error) {
	q := s.db.Model(&models.ChecklistItem{})

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

	if season != "" {
		q = q.Where("season = ?", season)
	}

	var items []models.ChecklistItem
	if err := q.Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *ChecklistService) Update(itemID, userID uuid.UUID, req *dto.UpdateChecklistItemRequest) (*models.ChecklistItem, error) {
	var item models.ChecklistItem
	if err := s.db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrDenied
		}
		return nil, err
	}
	if err := authorizeScoped(s.gate, item.PropertyID, item.UserID, userID, access.Managers...); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Task != nil {
		updates["task"] = *req.Task
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Season != nil {
		if !validSeason(*req.Season) {
			return nil, ErrInvalidSeason
		}
		updates["season"] = *req.Season
	}
	if req.IsCompleted != nil {
		updates["is_completed"] = *req.IsCompleted
		if *req.IsCompleted {
			updates["completed_at"] = time.Now().UTC()
		} else {
			updates["completed_at"] = nil
		}
	}

	if len(updates) > 0 {
		if err := s.db.Model(&item).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &item, nil
}

func (s *ChecklistService) Delete(itemID, userID uuid.UUID) error {
	var item models.ChecklistItem
	if err := s.db.First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.ErrDenied
		}
		return err
	}
	if err := authorizeScoped(s.gate, item.PropertyID, item.UserID, userID, access.Managers...); err != nil {
		return err
	}
	return s.db.Delete(&item).Error
}
