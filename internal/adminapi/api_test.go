package adminapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Gachagokimani/Cybersmarter-business-system/config"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/app"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/domain"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/webserver"
)

func newTestServer(t *testing.T) *app.Application {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))

	cfg := *config.DefaultAppConfig
	application := app.NewApplication(&cfg)
	application.OverrideDB(db)

	webserver.Init(application)
	Register()
	return application
}

func doRequest(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	webserver.Echo().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func seedProduct(t *testing.T, db *gorm.DB, name string, quantity int, unitPrice string) *domain.Product {
	t.Helper()
	price, err := decimal.NewFromString(unitPrice)
	require.NoError(t, err)
	product := &domain.Product{
		Name:      name,
		Category:  "Electronics",
		Quantity:  quantity,
		UnitPrice: price,
		Status:    domain.StockStatus(quantity),
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestCreateSaleEndpoint(t *testing.T) {
	application := newTestServer(t)
	seedProduct(t, application.DB(), "Mouse", 10, "500")

	rec := doRequest(t, http.MethodPost, "/api/sales", map[string]interface{}{
		"item": "Mouse", "price": 450, "quantity": 3, "date": "2025-01-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	sale := body["sale"].(map[string]interface{})
	assert.Equal(t, "Mouse", sale["item"])
	revenueBody := body["revenue"].(map[string]interface{})
	assert.Equal(t, "1350", fmt.Sprint(revenueBody["grossRevenue"]))
	assert.Equal(t, "1350", fmt.Sprint(revenueBody["netRevenue"]))
}

func TestCreateSaleInsufficientStockEndpoint(t *testing.T) {
	application := newTestServer(t)
	seedProduct(t, application.DB(), "Keyboard", 2, "1500")

	rec := doRequest(t, http.MethodPost, "/api/sales", map[string]interface{}{
		"item": "Keyboard", "price": 1500, "quantity": 5, "date": "2025-01-15",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assert.Equal(t, "Insufficient inventory. Available: 2, Requested: 5", body["error"])
}

func TestCreateSaleUnknownItemEndpoint(t *testing.T) {
	newTestServer(t)

	rec := doRequest(t, http.MethodPost, "/api/sales", map[string]interface{}{
		"item": "Nonexistent", "price": 100, "quantity": 1, "date": "2025-01-15",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", decodeBody(t, rec)["code"])
}

func TestCreateServiceSaleEndpoint(t *testing.T) {
	application := newTestServer(t)

	// KRA iTax is in the default service list; no catalog row needed
	rec := doRequest(t, http.MethodPost, "/api/sales", map[string]interface{}{
		"item": "KRA iTax", "price": 250, "quantity": 1, "date": "2025-01-15",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var product domain.Product
	require.NoError(t, application.DB().Where("name = ?", "KRA iTax").First(&product).Error)
	assert.Equal(t, domain.CategoryService, product.Category)
}

func TestDeleteMissingSaleEndpoint(t *testing.T) {
	newTestServer(t)

	rec := doRequest(t, http.MethodDelete, "/api/sales/9999", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Sale not found or already removed", decodeBody(t, rec)["message"])
}

func TestExpenseLifecycleEndpoint(t *testing.T) {
	newTestServer(t)

	rec := doRequest(t, http.MethodPost, "/api/expenses", map[string]interface{}{
		"item": "Office rent", "amount": 200, "quantity": 1, "date": "2025-01-01", "category": "Rent",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	revenueBody := body["revenue"].(map[string]interface{})
	assert.Equal(t, "200", fmt.Sprint(revenueBody["totalExpenses"]))
	assert.Equal(t, "-200", fmt.Sprint(revenueBody["netRevenue"]))

	rec = doRequest(t, http.MethodGet, "/api/revenue", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "200", fmt.Sprint(decodeBody(t, rec)["totalExpenses"]))
}

func TestUpdateMissingExpenseEndpoint(t *testing.T) {
	newTestServer(t)

	rec := doRequest(t, http.MethodPut, "/api/expenses", map[string]interface{}{
		"id": 9999, "item": "Office rent", "amount": 200, "date": "2025-01-01", "category": "Rent",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "NOT_FOUND", body["code"])
	assert.Equal(t, "Expense not found", body["error"])
}

func TestExpenseValidationEndpoint(t *testing.T) {
	newTestServer(t)

	rec := doRequest(t, http.MethodPost, "/api/expenses", map[string]interface{}{
		"item": "", "amount": 200, "date": "2025-01-01", "category": "Rent",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_REQUEST", decodeBody(t, rec)["code"])
}

func TestInventoryCrudEndpoint(t *testing.T) {
	newTestServer(t)

	rec := doRequest(t, http.MethodPost, "/api/inventory", map[string]interface{}{
		"name": "Router", "category": "Networking", "quantity": 4, "unitPrice": 3500,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeBody(t, rec)
	assert.Equal(t, domain.StockStatusIn, created["status"])
	id := created["id"]

	rec = doRequest(t, http.MethodGet, "/api/inventory", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, "Router", listed[0]["name"])

	rec = doRequest(t, http.MethodDelete, "/api/inventory", map[string]interface{}{"id": id})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product deleted successfully", decodeBody(t, rec)["message"])

	rec = doRequest(t, http.MethodDelete, "/api/inventory", map[string]interface{}{"id": id})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product not found or already deleted", decodeBody(t, rec)["message"])
}

func TestSendReportUnconfiguredEndpoint(t *testing.T) {
	newTestServer(t)

	rec := doRequest(t, http.MethodPost, "/api/email/report", map[string]interface{}{
		"email": "owner@example.com",
		"reportData": []map[string]interface{}{
			{"date": "2025-01-15", "item": "Mouse", "price": 450, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "MAIL_NOT_CONFIGURED", decodeBody(t, rec)["code"])
}

func TestSendReportValidationEndpoint(t *testing.T) {
	newTestServer(t)

	rec := doRequest(t, http.MethodPost, "/api/email/report", map[string]interface{}{
		"email": "not-an-address",
		"reportData": []map[string]interface{}{
			{"date": "2025-01-15", "item": "Mouse", "price": 450, "quantity": 1},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid email format", decodeBody(t, rec)["error"])
}
