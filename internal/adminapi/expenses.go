package adminapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/domain"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/sales"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/webserver"
)

type expensePayload struct {
	ID       int64           `json:"id"`
	Item     string          `json:"item"`
	Amount   decimal.Decimal `json:"amount"`
	Quantity int             `json:"quantity"`
	Date     string          `json:"date"`
	Category string          `json:"category"`
}

// registerExpenseRoutes registers expense CRUD endpoints. Every mutation
// returns the fresh revenue snapshot alongside its payload.
func registerExpenseRoutes() {
	webserver.ApiGET("/expenses", listExpenses)
	webserver.ApiPOST("/expenses", createExpense)
	webserver.ApiPUT("/expenses", updateExpense)
	webserver.ApiDELETE("/expenses", deleteExpense)
}

func listExpenses(c echo.Context) error {
	var expenses []domain.Expense
	if err := GetDB(c).Order("date DESC").Find(&expenses).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query expenses", err.Error())
	}
	return ok(c, expenses)
}

func validateExpensePayload(payload *expensePayload) (time.Time, error) {
	if strings.TrimSpace(payload.Item) == "" {
		return time.Time{}, domain.NewValidationError("item is required")
	}
	if !payload.Amount.IsPositive() {
		return time.Time{}, domain.NewValidationError("amount must be positive")
	}
	if strings.TrimSpace(payload.Category) == "" {
		return time.Time{}, domain.NewValidationError("category is required")
	}
	date, err := time.Parse(sales.DateLayout, payload.Date)
	if err != nil {
		return time.Time{}, domain.NewValidationError("date must be in YYYY-MM-DD format")
	}
	if payload.Quantity <= 0 {
		payload.Quantity = 1
	}
	return date, nil
}

func createExpense(c echo.Context) error {
	var payload expensePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse expense", err.Error())
	}
	date, err := validateExpensePayload(&payload)
	if err != nil {
		return failError(c, err, "INVALID_REQUEST", "Invalid expense")
	}

	expense := domain.Expense{
		Item:     strings.TrimSpace(payload.Item),
		Amount:   payload.Amount,
		Quantity: payload.Quantity,
		Date:     date,
		Category: payload.Category,
	}
	if err := GetDB(c).Create(&expense).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create expense", err.Error())
	}

	summary, err := GetApp(c).Revenue().Compute(c.Request().Context())
	if err != nil {
		return failError(c, err, "DATABASE_ERROR", "Failed to compute revenue")
	}
	return ok(c, map[string]interface{}{
		"expense": expense,
		"revenue": summary,
	})
}

func updateExpense(c echo.Context) error {
	var payload expensePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse expense", err.Error())
	}
	if payload.ID <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid expense ID", nil)
	}
	date, err := validateExpensePayload(&payload)
	if err != nil {
		return failError(c, err, "INVALID_REQUEST", "Invalid expense")
	}

	var expense domain.Expense
	err = GetDB(c).First(&expense, payload.ID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Expense not found", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query expense", err.Error())
	}

	expense.Item = strings.TrimSpace(payload.Item)
	expense.Amount = payload.Amount
	expense.Quantity = payload.Quantity
	expense.Date = date
	expense.Category = payload.Category
	expense.UpdatedAt = time.Now()

	if err := GetDB(c).Save(&expense).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update expense", err.Error())
	}

	summary, err := GetApp(c).Revenue().Compute(c.Request().Context())
	if err != nil {
		return failError(c, err, "DATABASE_ERROR", "Failed to compute revenue")
	}
	return ok(c, map[string]interface{}{
		"expense": expense,
		"revenue": summary,
	})
}

func deleteExpense(c echo.Context) error {
	var payload struct {
		ID int64 `json:"id"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if payload.ID <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Missing expense ID", nil)
	}

	// Deleting an absent id is a soft success; the row is gone either way.
	if err := GetDB(c).Delete(&domain.Expense{}, payload.ID).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete expense", err.Error())
	}

	summary, err := GetApp(c).Revenue().Compute(c.Request().Context())
	if err != nil {
		return failError(c, err, "DATABASE_ERROR", "Failed to compute revenue")
	}
	return ok(c, map[string]interface{}{
		"message": "Expense deleted successfully",
		"revenue": summary,
	})
}
