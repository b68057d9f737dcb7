package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/propdesk/propdesk/internal/access"
	"github.com/propdesk/propdesk/internal/dto"
	"github.com/propdesk/propdesk/internal/services"
)

type FinanceHandler struct {
	finance *services.FinanceService
}

func NewFinanceHandler(finance *services.FinanceService) *FinanceHandler {
	return &FinanceHandler{finance: finance}
}

func (h *FinanceHandler) CreateExpense(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req dto.CreateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	expense, err := h.finance.CreateExpense(userID, &req)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusCreated).JSON(expense)
}

func (h *FinanceHandler) ListExpenses(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	propertyID, err := queryUUID(c, "property_id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid property_id")
	}

	expenses, err := h.finance.ListExpenses(userID, propertyID, c.Query("category"))
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(expenses)
}

func (h *FinanceHandler) UpdateExpense(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	expenseID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	var req dto.UpdateExpenseRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	expense, err := h.finance.UpdateExpense(expenseID, userID, &req)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(expense)
}

func (h *FinanceHandler) DeleteExpense(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	expenseID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	if err := h.finance.DeleteExpense(expenseID, userID); err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to delete expense")
	}

	return c.JSON(dto.MessageResponse{Message: "Expense deleted successfully"})
}

func (h *FinanceHandler) CreateBudget(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	var req dto.CreateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	budget, err := h.finance.CreateBudget(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, access.ErrDenied):
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, services.ErrBudgetExists):
			return errorJSON(c, fiber.StatusConflict, err.Error())
		default:
			return errorJSON(c, fiber.StatusBadRequest, err.Error())
		}
	}

	return c.Status(fiber.StatusCreated).JSON(budget)
}

func (h *FinanceHandler) ListBudgets(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}

	propertyID, err := queryUUID(c, "property_id")
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid property_id")
	}

	month, _ := strconv.Atoi(c.Query("month"))
	year, _ := strconv.Atoi(c.Query("year"))

	budgets, err := h.finance.ListBudgets(userID, propertyID, month, year)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Internal server error")
	}

	return c.JSON(budgets)
}

func (h *FinanceHandler) UpdateBudget(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	budgetID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	var req dto.UpdateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Invalid request body")
	}

	budget, err := h.finance.UpdateBudget(budgetID, userID, &req)
	if err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(budget)
}

func (h *FinanceHandler) DeleteBudget(c *fiber.Ctx) error {
	userID, ok := requireUser(c)
	if !ok {
		return nil
	}
	budgetID, ok := paramID(c, "id")
	if !ok {
		return nil
	}

	if err := h.finance.DeleteBudget(budgetID, userID); err != nil {
		if errors.Is(err, access.ErrDenied) {
			return errorJSON(c, fiber.StatusNotFound, err.Error())
		}
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to delete budget")
	}

	return c.JSON(dto.MessageResponse{Message: "Budget deleted successfully"})
}
