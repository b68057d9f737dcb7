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

var (
	ErrInvalidPriority          = errors.New("invalid priority, must be one of: low, medium, high")
	ErrInvalidMaintenanceStatus = errors.New("invalid status, must be one of: pending, in-progress, completed, cancelled")
)

func validPriority(p string) bool {
	return p == "low" || p == "medium" || p == "high"
}

func validMaintenanceStatus(s string) bool {
	switch s {
	case "pending", "in-progress", "completed", "cancelled":
		return true
	}
	return false
}

type MaintenanceService struct {
	db   *gorm.DB
	gate *access.Gate
}

func NewMaintenanceService(db *gorm.DB, gate *access.Gate) *MaintenanceService {
	return &MaintenanceService{db: db, gate: gate}
}

func (s *MaintenanceService) Create(userID uuid.UUID, req *dto.CreateMaintenanceRequest) (*models.Maintenance, error) {
	if req.Title == "" {
		return nil, errors.New("title is required")
	}

	priority := req.Priority
	if priority == "" {
		priority = "medium"
	}
	if !validPriority(priority) {
		return nil, ErrInvalidPriority
	}

	status := req.Status
	if status == "" {
		status = "pending"
	}
	if !validMaintenanceStatus(status) {
		return nil, ErrInvalidMaintenanceStatus
	}

	if req.PropertyID != nil {
		if err := s.gate.Authorize(*req.PropertyID, userID, access.Managers...); err != nil {
			return nil, err
		}
	}

	task := models.Maintenance{
		ID:          uuid.New(),
		UserID:      userID,
		PropertyID:  req.PropertyID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    priority,
		Status:      status,
		DueDate:     req.DueDate,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *MaintenanceService) List(userID uuid.UUID, filter *dto.MaintenanceFilter) ([]models.Maintenance, error) {
	q := s.db.Model(&models.Maintenance{})

	if filter.PropertyID != nil {
		if err := s.gate.Authorize(*filter.PropertyID, userID, access.Managers...); err != nil {
			return nil, err
		}
		q = q.Where("property_id = ?", *filter.PropertyID)
	} else {
		scope, err := s.gate.VisibleTo(userID, access.Managers...)
		if err != nil {
			return nil, err
		}
		q = q.Scopes(scope)
	}

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		q = q.Where("priority = ?", filter.Priority)
	}

	var tasks []models.Maintenance
	if err := q.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *MaintenanceService) Get(taskID, userID uuid.UUID) (*models.Maintenance, error) {
	task, err := s.find(taskID)
	if err != nil {
		return nil, err
	}
	if err := authorizeScoped(s.gate, task.PropertyID, task.UserID, userID, access.Managers...); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *MaintenanceService) Update(taskID, userID uuid.UUID, req *dto.UpdateMaintenanceRequest) (*models.Maintenance, error) {
	task, err := s.find(taskID)
	if err != nil {
		return nil, err
	}
	if err := authorizeMove(s.gate, task.PropertyID, req.PropertyID, task.UserID, userID, access.Managers...); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Priority != nil {
		if !validPriority(*req.Priority) {
			return nil, ErrInvalidPriority
		}
		updates["priority"] = *req.Priority
	}
	if req.Status != nil {
		if !validMaintenanceStatus(*req.Status) {
			return nil, ErrInvalidMaintenanceStatus
		}
		updates["status"] = *req.Status
		if *req.Status == "completed" && task.CompletedAt == nil {
			updates["completed_at"] = time.Now().UTC()
		}
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.PropertyID != nil {
		updates["property_id"] = *req.PropertyID
	}

	if len(updates) > 0 {
		if err := s.db.Model(task).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return task, nil
}

func (s *MaintenanceService) Delete(taskID, userID uuid.UUID) error {
	task, err := s.find(taskID)
	if err != nil {
		return err
	}
	if err := authorizeScoped(s.gate, task.PropertyID, task.UserID, userID, access.Managers...); err != nil {
		return err
	}
	return s.db.Delete(task).Error
}

func (s *MaintenanceService) find(taskID uuid.UUID) (*models.Maintenance, error) {
	var task models.Maintenance
	if err := s.db.First(&task, "id = ?", taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrDenied
		}
		return nil, err
	}
	return &task, nil
}
