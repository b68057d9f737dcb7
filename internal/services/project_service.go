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

var ErrInvalidProjectStatus = errors.New("invalid status, must be one of: planning, in-progress, on-hold, completed, cancelled")

func validProjectStatus(s string) bool {
	switch s {
	case "planning", "in-progress", "on-hold", "completed", "cancelled":
		return true
	}
	return false
}

type ProjectService struct {
	db   *gorm.DB
	gate *access.Gate
}

func NewProjectService(db *gorm.DB, gate *access.Gate) *ProjectService {
	return &ProjectService{db: db, gate: gate}
}

func (s *ProjectService) Create(userID uuid.UUID, req *dto.CreateProjectRequest) (*models.Project, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}

	status := req.Status
	if status == "" {
		status = "planning"
	}
	if !validProjectStatus(status) {
		return nil, ErrInvalidProjectStatus
	}

	if req.PropertyID != nil {
		if err := s.gate.Authorize(*req.PropertyID, userID, access.Managers...); err != nil {
			return nil, err
		}
	}

	project := models.Project{
		ID:               uuid.New(),
		UserID:           userID,
		PropertyID:       req.PropertyID,
		Name:             req.Name,
		Description:      req.Description,
		Status:           status,
		BudgetCents:      req.BudgetCents,
		SpentCents:       req.SpentCents,
		StartDate:        req.StartDate,
		ProjectedEndDate: req.ProjectedEndDate,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

func (s *ProjectService) List(userID uuid.UUID, propertyID *uuid.UUID, status string) ([]models.Project, error) {
	q := s.db.Model(&models.Project{})

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

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var projects []models.Project
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectService) Get(projectID, userID uuid.UUID) (*models.Project, error) {
	project, err := s.find(projectID)
	if err != nil {
		return nil, err
	}
	if err := authorizeScoped(s.gate, project.PropertyID, project.UserID, userID, access.Managers...); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Update(projectID, userID uuid.UUID, req *dto.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.find(projectID)
	if err != nil {
		return nil, err
	}
	if err := authorizeMove(s.gate, project.PropertyID, req.PropertyID, project.UserID, userID, access.Managers...); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if !validProjectStatus(*req.Status) {
			return nil, ErrInvalidProjectStatus
		}
		updates["status"] = *req.Status
		if *req.Status == "completed" && project.CompletedDate == nil && req.CompletedDate == nil {
			updates["completed_date"] = time.Now().UTC()
		}
	}
	if req.BudgetCents != nil {
		updates["budget_cents"] = *req.BudgetCents
	}
	if req.SpentCents != nil {
		updates["spent_cents"] = *req.SpentCents
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.ProjectedEndDate != nil {
		updates["projected_end_date"] = *req.ProjectedEndDate
	}
	if req.CompletedDate != nil {
		updates["completed_date"] = *req.CompletedDate
	}
	if req.PropertyID != nil {
		updates["property_id"] = *req.PropertyID
	}

	if len(updates) > 0 {
		if err := s.db.Model(project).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return project, nil
}

func (s *ProjectService) Delete(projectID, userID uuid.UUID) error {
	project, err := s.find(projectID)
	if err != nil {
		return err
	}
	if err := authorizeScoped(s.gate, project.PropertyID, project.UserID, userID, access.Managers...); err != nil {
		return err
	}
	return s.db.Delete(project).Error
}

func (s *ProjectService) find(projectID uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := s.db.First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrDenied
		}
		return nil, err
	}
	return &project, nil
}
