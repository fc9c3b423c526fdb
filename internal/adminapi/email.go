package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/mailer"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/webserver"
)

type reportPayload struct {
	Email      string             `json:"email"`
	ReportData []mailer.ReportRow `json:"reportData"`
}

type alertPayload struct {
	Email  string              `json:"email"`
	Alerts []mailer.StockAlert `json:"alerts"`
}

// registerEmailRoutes registers the notification endpoints
func registerEmailRoutes() {
	webserver.ApiPOST("/email/report", sendSalesReport)
	webserver.ApiPOST("/email/inventory-alert", sendInventoryAlert)
}

func sendSalesReport(c echo.Context) error {
	var payload reportPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if payload.Email == "" || len(payload.ReportData) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email and report data are required", nil)
	}
	if !mailer.ValidAddress(payload.Email) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid email format", nil)
	}

	body, err := mailer.RenderSalesReport(payload.ReportData)
	if err != nil {
		return failError(c, err, "RENDER_FAILED", "Failed to render report")
	}
	if err := GetApp(c).Mailer().Send(payload.Email, "Sales Report", body); err != nil {
		return failError(c, err, "SEND_FAILED", "Failed to send report")
	}

	zap.L().Info("sales report sent", zap.String("email", payload.Email), zap.Int("rows", len(payload.ReportData)))
	return ok(c, map[string]interface{}{"message": "Report sent successfully"})
}

func sendInventoryAlert(c echo.Context) error {
	var payload alertPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if payload.Email == "" || len(payload.Alerts) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Email and alerts array are required", nil)
	}
	if !mailer.ValidAddress(payload.Email) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Invalid email format", nil)
	}

	body, err := mailer.RenderInventoryAlert(payload.Alerts)
	if err != nil {
		return failError(c, err, "RENDER_FAILED", "Failed to render alert")
	}
	if err := GetApp(c).Mailer().Send(payload.Email, "Inventory Alert - Low Stock Items", body); err != nil {
		return failError(c, err, "SEND_FAILED", "Failed to send inventory alert")
	}

	zap.L().Info("inventory alert sent", zap.String("email", payload.Email), zap.Int("alerts", len(payload.Alerts)))
	return ok(c, map[string]interface{}{"message": "Inventory alert sent successfully"})
}
