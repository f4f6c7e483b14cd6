// Package http is the REST and websocket surface of the service. Handlers
// translate requests into commands and queries, and map use case errors to
// status codes: validation 400, access 403, not found 404, conflict 409,
// assignment failure 422 and anything else 500.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler         commands.CreateOrderCommandHandler
	changeOrderStatusHandler   commands.ChangeOrderStatusCommandHandler
	assigner                   commands.CourierAssigner
	assignCourierToZoneHandler commands.AssignCourierToZoneCommandHandler
	clearZoneCacheHandler      commands.ClearZoneCacheCommandHandler

	// Query handlers
	getClientOrdersHandler   queries.GetClientOrdersQueryHandler
	getBranchOrdersHandler   queries.GetBranchOrdersQueryHandler
	getBranchStatsHandler    queries.GetBranchStatsQueryHandler
	getBranchCouriersHandler queries.GetBranchCouriersQueryHandler
	getCourierOrdersHandler  queries.GetCourierOrdersQueryHandler

	logger *slog.Logger
}

func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	assigner commands.CourierAssigner,
	assignCourierToZoneHandler commands.AssignCourierToZoneCommandHandler,
	clearZoneCacheHandler commands.ClearZoneCacheCommandHandler,
	getClientOrdersHandler queries.GetClientOrdersQueryHandler,
	getBranchOrdersHandler queries.GetBranchOrdersQueryHandler,
	getBranchStatsHandler queries.GetBranchStatsQueryHandler,
	getBranchCouriersHandler queries.GetBranchCouriersQueryHandler,
	getCourierOrdersHandler queries.GetCourierOrdersQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:         createOrderHandler,
		changeOrderStatusHandler:   changeOrderStatusHandler,
		assigner:                   assigner,
		assignCourierToZoneHandler: assignCourierToZoneHandler,
		clearZoneCacheHandler:      clearZoneCacheHandler,
		getClientOrdersHandler:     getClientOrdersHandler,
		getBranchOrdersHandler:     getBranchOrdersHandler,
		getBranchStatsHandler:      getBranchStatsHandler,
		getBranchCouriersHandler:   getBranchCouriersHandler,
		getCourierOrdersHandler:    getCourierOrdersHandler,
		logger:                     logger.With("component", "http_server"),
	}
}

// CreateOrder handles POST /orders.
func (s *Server) CreateOrder(c echo.Context) error {
	who, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "Authorization token required")
	}

	var body NewOrderRequest
	if err := c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(who.ID(), body.AddressID, body.BranchID, body.PaymentMethod, body.lines())
	if err != nil {
		return s.fail(c, err)
	}

	created, err := s.createOrderHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusCreated, toOrder(created))
}

// GetMyHistory handles GET /orders/my-history.
func (s *Server) GetMyHistory(c echo.Context) error {
	who, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "Authorization token required")
	}

	query, err := queries.NewGetClientOrdersQuery(who.ID())
	if err != nil {
		return s.fail(c, err)
	}

	views, err := s.getClientOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toOrderDetails(views))
}

// GetBranchOrders handles GET /restaurant/orders?status=.
func (s *Server) GetBranchOrders(c echo.Context) error {
	who, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "Authorization token required")
	}

	var status *string
	if err := runtime.BindQueryParameter("form", true, false, "status", c.QueryParams(), &status); err != nil {
		return invalidParam(c, "status", err)
	}
	raw := ""
	if status != nil {
		raw = *status
	}

	query, err := queries.NewGetBranchOrdersQuery(who, raw)
	if err != nil {
		return s.fail(c, err)
	}

	views, err := s.getBranchOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toOrderDetails(views))
}

// GetBranchStats handles GET /restaurant/orders/stats.
func (s *Server) GetBranchStats(c echo.Context) error {
	who, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "Authorization token required")
	}

	query, err := queries.NewGetBranchStatsQuery(who)
	if err != nil {
		return s.fail(c, err)
	}

	stats, err := s.getBranchStatsHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toBranchStats(stats))
}

// GetBranchCouriers handles GET /restaurant/couriers.
func (s *Server) GetBranchCouriers(c echo.Context) error {
	who, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "Authorization token required")
	}

	query, err := queries.NewGetBranchCouriersQuery(who)
	if err != nil {
		return s.fail(c, err)
	}

	couriers, err := s.getBranchCouriersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toBranchCouriers(couriers))
}

// ChangeOrderStatus handles PUT /restaurant/orders/:id/status and
// PUT /delivery/orders/:id/status. The actor's role decides which
// transitions are legal.
func (s *Server) ChangeOrderStatus(c echo.Context) error {
	who, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "Authorization token required")
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return invalidParam(c, "id", err)
	}

	var body StatusRequest
	if err = c.Bind(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, who, body.Status)
	if err != nil {
		return s.fail(c, err)
	}

	updated, err := s.changeOrderStatusHandler.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toOrder(updated))
}

// AssignOrder handles POST /restaurant/orders/:id/assign, a manual retry of
// the automatic assignment of a dispatched order.
func (s *Server) AssignOrder(c echo.Context) error {
	who, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "Authorization token required")
	}

	orderID, err := pathUUID(c, "id")
	if err != nil {
		return invalidParam(c, "id", err)
	}

	branchID, err := who.RequireBranch()
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewAssignCourierCommand(orderID, branchID)
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.assigner.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, Assignment{
		OrderID:   result.Order.ID(),
		CourierID: result.CourierID,
		ZoneID:    result.ZoneID,
		Order:     toOrder(result.Order),
	})
}

// GetCourierOrders handles GET /delivery/my-orders.
func (s *Server) GetCourierOrders(c echo.Context) error {
	who, ok := actorFrom(c)
	if !ok {
		return unauthorized(c, "Authorization token required")
	}

	query, err := queries.NewGetCourierOrdersQuery(who.ID())
	if err != nil {
		return s.fail(c, err)
	}

	views, err := s.getCourierOrdersHandler.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toOrderDetails(views))
}

// ClearZoneCache handles DELETE /admin/zones/cache?branch_id=.
func (s *Server) ClearZoneCache(c echo.Context) error {
	var raw *string
	if err := runtime.BindQueryParameter("form", true, false, "branch_id", c.QueryParams(), &raw); err != nil {
		return invalidParam(c, "branch_id", err)
	}

	var branchID *kernel.UUID
	if raw != nil && *raw != "" {
		id, err := kernel.UUIDFromString(*raw)
		if err != nil {
			return invalidParam(c, "branch_id", err)
		}
		branchID = &id
	}

	cmd, err := commands.NewClearZoneCacheCommand(branchID)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.clearZoneCacheHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AssignCourierToZone handles PUT /admin/zones/:zone_id/couriers/:courier_id.
func (s *Server) AssignCourierToZone(c echo.Context) error {
	zoneID, err := pathUUID(c, "zone_id")
	if err != nil {
		return invalidParam(c, "zone_id", err)
	}
	courierID, err := pathUUID(c, "courier_id")
	if err != nil {
		return invalidParam(c, "courier_id", err)
	}

	cmd, err := commands.NewAssignCourierToZoneCommand(zoneID, courierID)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.assignCourierToZoneHandler.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id kernel.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	return id, err
}

func invalidParam(c echo.Context, name string, err error) error {
	return badRequest(c, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
}
