// Package http exposes the fulfillment engine over a REST API. Handlers are
// thin: they parse the request, build a command or query, and translate
// domain errors to status codes. The acting user arrives in the X-Actor-Id
// header and is attached to the request context for the notification layer.
package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/notifications"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/ordergroup"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ActorHeader carries the acting user's ID on mutating requests.
const ActorHeader = "X-Actor-Id"

// Error is the JSON error payload returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createOrderHandler         commands.CreateOrderCommandHandler
	createOrderGroupHandler    commands.CreateOrderGroupCommandHandler
	addServiceHandler          commands.AddServiceCommandHandler
	changeServiceStatusHandler commands.ChangeServiceStatusCommandHandler
	removeServiceHandler       commands.RemoveServiceCommandHandler
	restoreServiceHandler      commands.RestoreServiceCommandHandler
	overrideGroupStatusHandler commands.OverrideGroupStatusCommandHandler

	getOrderSummaryHandler      queries.GetOrderSummaryQueryHandler
	getProviderWorkQueueHandler queries.GetProviderWorkQueueQueryHandler
}

// NewServer creates an HTTP server over the given command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	createOrderGroupHandler commands.CreateOrderGroupCommandHandler,
	addServiceHandler commands.AddServiceCommandHandler,
	changeServiceStatusHandler commands.ChangeServiceStatusCommandHandler,
	removeServiceHandler commands.RemoveServiceCommandHandler,
	restoreServiceHandler commands.RestoreServiceCommandHandler,
	overrideGroupStatusHandler commands.OverrideGroupStatusCommandHandler,
	getOrderSummaryHandler queries.GetOrderSummaryQueryHandler,
	getProviderWorkQueueHandler queries.GetProviderWorkQueueQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:          createOrderHandler,
		createOrderGroupHandler:     createOrderGroupHandler,
		addServiceHandler:           addServiceHandler,
		changeServiceStatusHandler:  changeServiceStatusHandler,
		removeServiceHandler:        removeServiceHandler,
		restoreServiceHandler:       restoreServiceHandler,
		overrideGroupStatusHandler:  overrideGroupStatusHandler,
		getOrderSummaryHandler:      getOrderSummaryHandler,
		getProviderWorkQueueHandler: getProviderWorkQueueHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1", ActorMiddleware)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:orderID", s.GetOrderSummary)
	api.POST("/orders/:orderID/groups", s.CreateOrderGroup)

	api.PATCH("/groups/:groupID/status", s.OverrideGroupStatus)
	api.POST("/groups/:groupID/services", s.AddService)

	api.PATCH("/services/:serviceID/status", s.ChangeServiceStatus)
	api.DELETE("/services/:serviceID", s.RemoveService)
	api.POST("/services/:serviceID/restore", s.RestoreService)

	api.GET("/providers/:providerID/work-queue", s.GetProviderWorkQueue)
}

// ActorMiddleware moves the X-Actor-Id header onto the request context.
// A missing header is fine: system-triggered flows have no request actor.
func ActorMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Request().Header.Get(ActorHeader)
		if header == "" {
			return next(ctx)
		}

		actorID, err := kernel.UUIDFromString(header)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid " + ActorHeader + " header",
			})
		}

		request := ctx.Request()
		ctx.SetRequest(request.WithContext(notifications.WithActor(request.Context(), actorID)))
		return next(ctx)
	}
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body struct {
		PlacedBy string `json:"placed_by"`
	}
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	placedBy, err := kernel.UUIDFromString(body.PlacedBy)
	if err != nil {
		return badRequest(ctx, "Invalid placed_by")
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, placedBy)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": orderID.String()})
}

// CreateOrderGroup handles POST /api/v1/orders/:orderID/groups.
func (s *Server) CreateOrderGroup(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	var body struct {
		ProviderID string `json:"provider_id"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	providerID, err := kernel.UUIDFromString(body.ProviderID)
	if err != nil {
		return badRequest(ctx, "Invalid provider_id")
	}

	groupID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderGroupCommand(groupID, orderID, providerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.createOrderGroupHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to create order group")
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": groupID.String()})
}

// AddService handles POST /api/v1/groups/:groupID/services.
func (s *Server) AddService(ctx echo.Context) error {
	groupID, err := kernel.UUIDFromString(ctx.Param("groupID"))
	if err != nil {
		return badRequest(ctx, "Invalid group ID")
	}

	var body struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	price, err := ordergroup.NewPrice(body.Amount, body.Currency)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	serviceID := kernel.NewUUID()
	cmd, err := commands.NewAddServiceCommand(serviceID, groupID, price)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.addServiceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to add service")
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": serviceID.String()})
}

// ChangeServiceStatus handles PATCH /api/v1/services/:serviceID/status.
func (s *Server) ChangeServiceStatus(ctx echo.Context) error {
	serviceID, err := kernel.UUIDFromString(ctx.Param("serviceID"))
	if err != nil {
		return badRequest(ctx, "Invalid service ID")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := ordergroup.StatusFromString(body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status")
	}

	cmd, err := commands.NewChangeServiceStatusCommand(serviceID, status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.changeServiceStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to change service status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RemoveService handles DELETE /api/v1/services/:serviceID. The optional
// permanent=true query switches from soft delete to a hard purge.
func (s *Server) RemoveService(ctx echo.Context) error {
	serviceID, err := kernel.UUIDFromString(ctx.Param("serviceID"))
	if err != nil {
		return badRequest(ctx, "Invalid service ID")
	}

	permanent := ctx.QueryParam("permanent") == "true"

	cmd, err := commands.NewRemoveServiceCommand(serviceID, permanent)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.removeServiceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to remove service")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RestoreService handles POST /api/v1/services/:serviceID/restore.
func (s *Server) RestoreService(ctx echo.Context) error {
	serviceID, err := kernel.UUIDFromString(ctx.Param("serviceID"))
	if err != nil {
		return badRequest(ctx, "Invalid service ID")
	}

	cmd, err := commands.NewRestoreServiceCommand(serviceID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.restoreServiceHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to restore service")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// OverrideGroupStatus handles PATCH /api/v1/groups/:groupID/status.
func (s *Server) OverrideGroupStatus(ctx echo.Context) error {
	groupID, err := kernel.UUIDFromString(ctx.Param("groupID"))
	if err != nil {
		return badRequest(ctx, "Invalid group ID")
	}

	var body struct {
		Status string `json:"status"`
	}
	if err = ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := ordergroup.StatusFromString(body.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status")
	}

	cmd, err := commands.NewOverrideGroupStatusCommand(groupID, status)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err = s.overrideGroupStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return domainError(ctx, err, "Failed to override group status")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrderSummary handles GET /api/v1/orders/:orderID.
func (s *Server) GetOrderSummary(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	query, err := queries.NewGetOrderSummaryQuery(orderID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	summary, err := s.getOrderSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve order")
	}

	groups := make([]orderGroupSummaryResponse, len(summary.Groups))
	for i, group := range summary.Groups {
		groups[i] = orderGroupSummaryResponse{
			ID:           group.ID.String(),
			ProviderID:   group.ProviderID.String(),
			Status:       group.Status,
			ServiceCount: group.ServiceCount,
			TotalAmount:  group.TotalAmount,
		}
	}

	return ctx.JSON(http.StatusOK, orderSummaryResponse{
		ID:       summary.ID.String(),
		PlacedBy: summary.PlacedBy.String(),
		Status:   summary.Status,
		Groups:   groups,
	})
}

// GetProviderWorkQueue handles GET /api/v1/providers/:providerID/work-queue.
func (s *Server) GetProviderWorkQueue(ctx echo.Context) error {
	providerID, err := kernel.UUIDFromString(ctx.Param("providerID"))
	if err != nil {
		return badRequest(ctx, "Invalid provider ID")
	}

	query, err := queries.NewGetProviderWorkQueueQuery(providerID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	queue, err := s.getProviderWorkQueueHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err, "Failed to retrieve work queue")
	}

	response := make([]workQueueItemResponse, len(queue))
	for i, item := range queue {
		response[i] = workQueueItemResponse{
			GroupID:         item.GroupID.String(),
			OrderID:         item.OrderID.String(),
			Status:          item.Status,
			PendingServices: item.PendingServices,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type orderSummaryResponse struct {
	ID       string                      `json:"id"`
	PlacedBy string                      `json:"placed_by"`
	Status   string                      `json:"status"`
	Groups   []orderGroupSummaryResponse `json:"groups"`
}

type orderGroupSummaryResponse struct {
	ID           string `json:"id"`
	ProviderID   string `json:"provider_id"`
	Status       string `json:"status"`
	ServiceCount int    `json:"service_count"`
	TotalAmount  int64  `json:"total_amount"`
}

type workQueueItemResponse struct {
	GroupID         string `json:"group_id"`
	OrderID         string `json:"order_id"`
	Status          string `json:"status"`
	PendingServices int    `json:"pending_services"`
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps application errors to status codes: unknown objects to
// 404, invalid input and state conflicts to 422, everything else to 500.
func domainError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, ordergroup.ErrServiceIsDeleted),
		errors.Is(err, ordergroup.ErrServiceAlreadyDeleted),
		errors.Is(err, ordergroup.ErrServiceNotDeleted):
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}
