// Package webserver hosts the echo HTTP server and the /api route group.
package webserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Gachagokimani/Cybersmarter-business-system/internal/app"
)

// AppContextKey is the echo context key holding the application instance.
const AppContextKey = "appctx"

type WebServer struct {
	appctx app.AppContext
	root   *echo.Echo
	api    *echo.Group
}

var server *WebServer

// JSONSerializer implements echo's JSON serializer on top of jsoniter.
type JSONSerializer struct{}

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

func (JSONSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsonAPI.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (JSONSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := jsonAPI.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unable to parse JSON body").SetInternal(err)
	}
	return nil
}

// Init builds the global web server bound to the application context.
func Init(appctx app.AppContext) {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = JSONSerializer{}
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(requestLogger())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(AppContextKey, appctx)
			return next(c)
		}
	})

	server = &WebServer{
		appctx: appctx,
		root:   e,
		api:    e.Group("/api"),
	}
}

// requestLogger logs every request through the global zap logger.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}
			zap.L().Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)))
			return nil
		}
	}
}

// Listen starts serving on the configured address and blocks.
func Listen() error {
	cfg := server.appctx.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.L().Info("starting web server", zap.String("addr", addr))
	return server.root.Start(addr)
}

// Shutdown stops the server gracefully.
func Shutdown(ctx context.Context) error {
	if server == nil {
		return nil
	}
	return server.root.Shutdown(ctx)
}

// Echo exposes the underlying echo instance (used in handler tests).
func Echo() *echo.Echo {
	return server.root
}

// ApiGET registers a GET handler under the /api group.
func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

// ApiPOST registers a POST handler under the /api group.
func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

// ApiPUT registers a PUT handler under the /api group.
func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

// ApiDELETE registers a DELETE handler under the /api group.
func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}
