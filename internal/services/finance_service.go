package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/models"
	"gorm.io/gorm"
)

var ErrBudgetExists = errors.New("a budget already exists for this category, month, year, and property")

// FinanceService covers expenses and budgets. Both are always
// property-scoped; budgets additionally carry a uniqueness key.
type FinanceService struct {
	db   *gorm.DB
	gate *access.Gate
}

func NewFinanceService(db *gorm.DB, gate *access.Gate) *FinanceService {
	return &FinanceService{db: db, gate: gate}
}

func (s *FinanceService) CreateExpense(userID uuid.UUID, req *dto.CreateExpenseRequest) (*models.Expense, error) {
	if req.Title == "" || req.Category == "" {
		return nil, errors.New("title and category are required")
	}
	if req.PropertyID == uuid.Nil {
		return nil, errors.New("property_id is required")
	}

	if err := s.gate.Authorize(req.PropertyID, userID, access.Managers...); err != nil {
		return nil, err
	}

	expense := models.Expense{
		ID:                uuid.New(),
		UserID:            userID,
		PropertyID:        req.PropertyID,
		Title:             req.Title,
		AmountCents:       req.AmountCents,
		Category:          req.Category,
		Date:              req.Date,
		Description:       req.Description,
		Recurring:         req.Recurring,
		RecurringInterval: req.RecurringInterval,
	}
	if err := s.db.Create(&expense).Error; err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *FinanceService) ListExpenses(userID uuid.UUID, propertyID *uuid.UUID, category string) ([]models.Expense, error) {
	q := s.db.Model(&models.Expense{})

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

	var expenses []models.Expense
	if err := q.Order("date DESC").Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

func (s *FinanceService) UpdateExpense(expenseID, userID uuid.UUID, req *dto.UpdateExpenseRequest) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.First(&expense, "id = ?", expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrDenied
		}
		return nil, err
	}
	if err := s.gate.Authorize(expense.PropertyID, userID, access.Managers...); err != nil {
		return nil, err
	}
	if req.PropertyID != nil && *req.PropertyID != expense.PropertyID {
		if err := s.gate.Authorize(*req.PropertyID, userID, access.Managers...); err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{}
	if req.PropertyID != nil {
		updates["property_id"] = *req.PropertyID
	}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.AmountCents != nil {
		updates["amount_cents"] = *req.AmountCents
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Recurring != nil {
		updates["recurring"] = *req.Recurring
	}
	if req.RecurringInterval != nil {
		updates["recurring_interval"] = *req.RecurringInterval
	}

	if len(updates) > 0 {
		if err := s.db.Model(&expense).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &expense, nil
}

func (s *FinanceService) DeleteExpense(expenseID, userID uuid.UUID) error {
	var expense models.Expense
	if err := s.db.First(&expense, "id = ?", expenseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.ErrDenied
		}
		return err
	}
	if err := s.gate.Authorize(expense.PropertyID, userID, access.Managers...); err != nil {
		return err
	}
	return s.db.Delete(&expense).Error
}

func (s *FinanceService) CreateBudget(userID uuid.UUID, req *dto.CreateBudgetRequest) (*models.Budget, error) {
	if req.Category == "" {
		return nil, errors.New("category is required")
	}
	if req.Month < 1 || req.Month > 12 {
		return nil, errors.New("month must be between 1 and 12")
	}
	if req.PropertyID == uuid.Nil {
		return nil, errors.New("property_id is required")
	}

	if err := s.gate.Authorize(req.PropertyID, userID, access.Managers...); err != nil {
		return nil, err
	}

	var existing models.Budget
	err := s.db.Where("property_id = ? AND category = ? AND month = ? AND year = ?",
		req.PropertyID, req.Category, req.Month, req.Year).First(&existing).Error
	if err == nil {
		return nil, ErrBudgetExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	budget := models.Budget{
		ID:          uuid.New(),
		UserID:      userID,
		PropertyID:  req.PropertyID,
		Category:    req.Category,
		AmountCents: req.AmountCents,
		Month:       req.Month,
		Year:        req.Year,
	}
	if err := s.db.Create(&budget).Error; err != nil {
		// The unique key catches the race the pre-check cannot.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrBudgetExists
		}
		return nil, err
	}
	return &budget, nil
}

func (s *FinanceService) ListBudgets(userID uuid.UUID, propertyID *uuid.UUID, month, year int) ([]models.Budget, error) {
	q := s.db.Model(&models.Budget{})

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

	if month > 0 {
		q = q.Where("month = ?", month)
	}
	if year > 0 {
		q = q.Where("year = ?", year)
	}

	var budgets []models.Budget
	if err := q.Order("year DESC, month DESC").Find(&budgets).Error; err != nil {
		return nil, err
	}
	return budgets, nil
}

func (s *FinanceService) UpdateBudget(budgetID, userID uuid.UUID, req *dto.UpdateBudgetRequest) (*models.Budget, error) {
	var budget models.Budget
	if err := s.db.First(&budget, "id = ?", budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.ErrDenied
		}
		return nil, err
	}
	if err := s.gate.Authorize(budget.PropertyID, userID, access.Managers...); err != nil {
		return nil, err
	}

	if req.AmountCents != nil {
		if err := s.db.Model(&budget).Update("amount_cents", *req.AmountCents).Error; err != nil {
			return nil, err
		}
	}
	return &budget, nil
}

func (s *FinanceService) DeleteBudget(budgetID, userID uuid.UUID) error {
	var budget models.Budget
	if err := s.db.First(&budget, "id = ?", budgetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.ErrDenied
		}
		return err
	}
	if err := s.gate.Authorize(budget.PropertyID, userID, access.Managers...); err != nil {
		return err
	}
	return s.db.Delete(&budget).Error
}
