package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/domain"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/sales"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/webserver"
)

type salePayload struct {
	ID       int64           `json:"id"`
	Item     string          `json:"item"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Date     string          `json:"date"`
}

// registerSalesRoutes registers the sale workflow endpoints
func registerSalesRoutes() {
	webserver.ApiGET("/sales", listSales)
	webserver.ApiPOST("/sales", createSale)
	webserver.ApiPUT("/sales", updateSale)
	webserver.ApiDELETE("/sales/:id", deleteSale)
}

func listSales(c echo.Context) error {
	views, err := GetApp(c).Sales().List(c.Request().Context())
	if err != nil {
		return failError(c, err, "DATABASE_ERROR", "Failed to query sales")
	}
	return ok(c, views)
}

func createSale(c echo.Context) error {
	var payload salePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse sale", err.Error())
	}

	view, summary, err := GetApp(c).Sales().Record(c.Request().Context(), sales.RecordSaleInput{
		Item:     payload.Item,
		Price:    payload.Price,
		Quantity: payload.Quantity,
		Date:     payload.Date,
	})
	if err != nil {
		return failError(c, err, "SALE_FAILED", "Failed to create sale")
	}

	zap.L().Info("sale recorded",
		zap.Int64("id", view.ID),
		zap.String("item", view.Item),
		zap.Int("quantity", view.Quantity))
	return created(c, map[string]interface{}{
		"sale":    view,
		"revenue": summary,
	})
}

func updateSale(c echo.Context) error {
	var payload salePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse sale", err.Error())
	}
	if payload.ID <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid sale ID", nil)
	}

	appctx := GetApp(c)
	err := appctx.Sales().Update(c.Request().Context(), sales.UpdateSaleInput{
		ID:       payload.ID,
		Item:     payload.Item,
		Price:    payload.Price,
		Quantity: payload.Quantity,
		Date:     payload.Date,
	})
	if err != nil {
		return failError(c, err, "SALE_FAILED", "Failed to update sale")
	}

	summary, err := appctx.Revenue().Compute(c.Request().Context())
	if err != nil {
		return failError(c, err, "DATABASE_ERROR", "Failed to compute revenue")
	}
	return ok(c, map[string]interface{}{
		"message": "Sale updated successfully",
		"revenue": summary,
	})
}

func deleteSale(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid sale ID", nil)
	}

	appctx := GetApp(c)
	outcome, err := appctx.Sales().Delete(c.Request().Context(), id)
	if err != nil {
		return failError(c, err, "DELETE_FAILED", "Failed to delete sale")
	}

	summary, err := appctx.Revenue().Compute(c.Request().Context())
	if err != nil {
		return failError(c, err, "DATABASE_ERROR", "Failed to compute revenue")
	}

	message := "Sale deleted successfully"
	switch outcome {
	case domain.DeleteOutcomeAutoDeleted:
		message = "Invalid sale auto-deleted"
	case domain.DeleteOutcomeAlreadyRemoved:
		message = "Sale not found or already removed"
	}
	return ok(c, map[string]interface{}{
		"message": message,
		"revenue": summary,
	})
}
