package adminapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/app"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/domain"
	"github.com/Gachagokimani/Cybersmarter-business-system/internal/webserver"
)

// GetApp returns the application context injected by the webserver middleware.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(webserver.AppContextKey).(app.AppContext)
}

// GetDB returns a request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return GetApp(c).DB().WithContext(c.Request().Context())
}

type errorResponse struct {
	Code   string      `json:"code"`
	Error  string      `json:"error"`
	Detail interface{} `json:"detail,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	return c.JSON(status, errorResponse{Code: code, Error: message, Detail: detail})
}

// failError maps a service error onto the response taxonomy. Unrecognized
// errors are logged and reported with the fallback code and message.
func failError(c echo.Context, err error, fallbackCode, fallbackMessage string) error {
	var validationErr *domain.ValidationError
	var stockErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &validationErr):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", validationErr.Message, nil)
	case errors.As(err, &stockErr):
		return fail(c, http.StatusBadRequest, "INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient inventory. Available: %d, Requested: %d",
				stockErr.Available, stockErr.Requested), nil)
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, domain.ErrMailNotConfigured):
		return fail(c, http.StatusInternalServerError, "MAIL_NOT_CONFIGURED",
			"Email service not configured. Please set EMAIL_USER and EMAIL_PASSWORD", nil)
	default:
		zap.L().Error(fallbackMessage, zap.Error(err))
		return fail(c, http.StatusInternalServerError, fallbackCode, fallbackMessage, err.Error())
	}
}

// Register attaches all admin API routes to the web server.
func Register() {
	registerSalesRoutes()
	registerInventoryRoutes()
	registerExpenseRoutes()
	registerRevenueRoutes()
	registerEmailRoutes()
}
