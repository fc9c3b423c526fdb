package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/domain"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/inventory"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/webserver"
)

type productPayload struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Category    string           `json:"category"`
	Quantity    int              `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unitPrice"`
	BuyingPrice *decimal.Decimal `json:"buyingPrice"`
}

// registerInventoryRoutes registers catalog CRUD endpoints. Ids travel in
// the request body, matching the UI's fetch calls.
func registerInventoryRoutes() {
	webserver.ApiGET("/inventory", listInventory)
	webserver.ApiPOST("/inventory", createInventoryItem)
	webserver.ApiPUT("/inventory", updateInventoryItem)
	webserver.ApiDELETE("/inventory", deleteInventoryItem)
}

func listInventory(c echo.Context) error {
	products, err := GetApp(c).Inventory().List(c.Request().Context())
	if err != nil {
		return failError(c, err, "DATABASE_ERROR", "Failed to query products")
	}
	return ok(c, products)
}

func createInventoryItem(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}

	product, err := GetApp(c).Inventory().Create(c.Request().Context(), inventory.CreateProductInput{
		Name:        payload.Name,
		Category:    payload.Category,
		Quantity:    payload.Quantity,
		UnitPrice:   payload.UnitPrice,
		BuyingPrice: payload.BuyingPrice,
	})
	if err != nil {
		return failError(c, err, "DATABASE_ERROR", "Failed to create product")
	}
	return created(c, product)
}

func updateInventoryItem(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if payload.ID <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	product, err := GetApp(c).Inventory().Update(c.Request().Context(), inventory.UpdateProductInput{
		ID:          payload.ID,
		Name:        payload.Name,
		Category:    payload.Category,
		Quantity:    payload.Quantity,
		UnitPrice:   payload.UnitPrice,
		BuyingPrice: payload.BuyingPrice,
	})
	if err != nil {
		return failError(c, err, "DATABASE_ERROR", "Failed to update product")
	}
	return ok(c, product)
}

func deleteInventoryItem(c echo.Context) error {
	var payload struct {
		ID int64 `json:"id"`
	}
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if payload.ID <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	outcome, err := GetApp(c).Inventory().Delete(c.Request().Context(), payload.ID)
	if err != nil {
		return failError(c, err, "DELETE_FAILED", "Failed to delete product")
	}

	message := "Product deleted successfully"
	switch outcome {
	case domain.DeleteOutcomeAutoDeleted:
		message = "Invalid product auto-deleted"
	case domain.DeleteOutcomeAlreadyRemoved:
		message = "Product not found or already deleted"
	}
	return ok(c, map[string]interface{}{"message": message})
}
