package http

import (
	"context"
	"log/slog"
	"net/http"

	"pizzeria/internal/core/domain/model/actor"
	"pizzeria/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving the API, the websocket, the
// API document and the operational endpoints.
func NewRouter(
	ctx context.Context,
	server *Server,
	ws *WebsocketHandler,
	auth *Authenticator,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*echo.Echo, error) {
	doc, err := LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validate, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(logger)
	e.Use(middleware.RequestID())
	e.Use(Observe(m, logger))
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}
	e.GET("/openapi.yaml", ServeOpenAPI)
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))
	e.GET("/ws", ws.Serve)

	orders := e.Group("/orders", auth.Middleware(), RequireRole(actor.Client), validate)
	orders.POST("", server.CreateOrder)
	orders.GET("/my-history", server.GetMyHistory)

	restaurant := e.Group("/restaurant", auth.Middleware(), RequireRole(actor.Restaurant), validate)
	restaurant.GET("/orders", server.GetBranchOrders)
	restaurant.GET("/orders/stats", server.GetBranchStats)
	restaurant.PUT("/orders/:id/status", server.ChangeOrderStatus)
	restaurant.POST("/orders/:id/assign", server.AssignOrder)
	restaurant.GET("/couriers", server.GetBranchCouriers)

	delivery := e.Group("/delivery", auth.Middleware(), RequireRole(actor.Delivery), validate)
	delivery.GET("/my-orders", server.GetCourierOrders)
	delivery.PUT("/orders/:id/status", server.ChangeOrderStatus)

	admin := e.Group("/admin", auth.Middleware(), RequireRole(actor.Admin), validate)
	admin.DELETE("/zones/cache", server.ClearZoneCache)
	admin.PUT("/zones/:zone_id/couriers/:courier_id", server.AssignCourierToZone)

	return e, nil
}
