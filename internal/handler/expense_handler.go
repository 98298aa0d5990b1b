package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/model"
	"github.com/RonnieLihanda/kipkaren-pos-flow/internal/store"
	"github.com/RonnieLihanda/kipkaren-pos-flow/pkg/logger"
	"github.com/RonnieLihanda/kipkaren-pos-flow/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ExpenseRequest defines the structure for expense creation/update requests
type ExpenseRequest struct {
	Name     string  `json:"name" validate:"required"`
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Notes    string  `json:"notes"`
}

// ListExpenses returns expenses, newest date first.
func ListExpenses(c echo.Context) error {
	log := logger.FromEcho(c)

	defer prometheus.TrackDBOperation("query")(time.Now())
	expenses, err := remote.Expenses(c.Request().Context())
	if err != nil {
		log.Error("Failed to list expenses", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve expenses",
		})
	}

	return c.JSON(http.StatusOK, expenses)
}

// CreateExpense records a new expense.
func CreateExpense(c echo.Context) error {
	log := logger.FromEcho(c)

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}
	if req.Name == "" || req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "name and a positive amount are required",
		})
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())
	expense, err := remote.SaveExpense(c.Request().Context(), &model.Expense{
		Name:     req.Name,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     date,
		Notes:    req.Notes,
	})
	if err != nil {
		log.Error("Failed to create expense", zap.String("name", req.Name), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create expense",
		})
	}

	log.Info("Expense recorded",
		zap.String("expense_id", expense.ID),
		zap.String("name", expense.Name),
		zap.Float64("amount", expense.Amount))
	return c.JSON(http.StatusCreated, expense)
}

// UpdateExpense updates an existing expense.
func UpdateExpense(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	var req ExpenseRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.String("expense_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	ctx := c.Request().Context()
	if _, err := remote.GetExpense(ctx, id); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Expense not found",
		})
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid date, expected YYYY-MM-DD"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())
	expense, err := remote.SaveExpense(ctx, &model.Expense{
		ID:       id,
		Name:     req.Name,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     date,
		Notes:    req.Notes,
	})
	if err != nil {
		log.Error("Failed to update expense", zap.String("expense_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update expense",
		})
	}

	log.Info("Expense updated", zap.String("expense_id", id))
	return c.JSON(http.StatusOK, expense)
}

// DeleteExpense removes an expense.
func DeleteExpense(c echo.Context) error {
	log := logger.FromEcho(c)
	id := c.Param("id")

	defer prometheus.TrackDBOperation("delete")(time.Now())
	if err := remote.DeleteExpense(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "Expense not found",
			})
		}
		log.Error("Failed to delete expense", zap.String("expense_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete expense",
		})
	}

	log.Info("Expense deleted", zap.String("expense_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Expense deleted successfully",
	})
}

// parseDate parses a YYYY-MM-DD field, defaulting to today when empty.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}
