package adminapi

import (
	"github.com/labstack/echo/v4"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/webserver"
)

// registerRevenueRoutes registers the revenue snapshot endpoint
func registerRevenueRoutes() {
	webserver.ApiGET("/revenue", getRevenue)
}

func getRevenue(c echo.Context) error {
	summary, err := GetApp(c).Revenue().Compute(c.Request().Context())
	if err != nil {
		return failError(c, err, "DATABASE_ERROR", "Failed to calculate revenue")
	}
	return ok(c, summary)
}
