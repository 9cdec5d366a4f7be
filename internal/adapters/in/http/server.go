// Package http exposes the dispatch API over REST.
package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	createCourierHandler     commands.CreateCourierCommandHandler
	addCourierStorageHandler commands.AddCourierStorageCommandHandler
	createOrderHandler       commands.CreateOrderCommandHandler

	getAllCouriersHandler       queries.GetAllCouriersQueryHandler
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	createCourierHandler commands.CreateCourierCommandHandler,
	addCourierStorageHandler commands.AddCourierStorageCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	getAllCouriersHandler queries.GetAllCouriersQueryHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
) *Server {
	return &Server{
		createCourierHandler:        createCourierHandler,
		addCourierStorageHandler:    addCourierStorageHandler,
		createOrderHandler:          createOrderHandler,
		getAllCouriersHandler:       getAllCouriersHandler,
		getUncompletedOrdersHandler: getUncompletedOrdersHandler,
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/couriers", s.CreateCourier)
	api.POST("/couriers/:id/storage", s.AddCourierStorage)
	api.GET("/couriers", s.GetCouriers)
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/active", s.GetOrders)
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewCourierRequest is the body for POST /api/v1/couriers.
type NewCourierRequest struct {
	Name  string `json:"name"`
	Speed int    `json:"speed"`
}

// NewStorageRequest is the body for POST /api/v1/couriers/:id/storage.
type NewStorageRequest struct {
	Name        string `json:"name"`
	TotalVolume int    `json:"totalVolume"`
}

// NewOrderRequest is the body for POST /api/v1/orders.
type NewOrderRequest struct {
	Street string `json:"street"`
	Volume int    `json:"volume"`
}

// CourierResponse is a courier read model.
type CourierResponse struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Location LocationResponse `json:"location"`
}

// OrderResponse is an order read model.
type OrderResponse struct {
	ID       string           `json:"id"`
	Location LocationResponse `json:"location"`
}

// LocationResponse is a grid coordinate pair.
type LocationResponse struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateCourier handles POST /api/v1/couriers.
func (s *Server) CreateCourier(ctx echo.Context) error {
	var body NewCourierRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCreateCourierCommand(body.Name, body.Speed)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createCourierHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return internalError(ctx, "failed to create courier")
	}

	return ctx.NoContent(http.StatusCreated)
}

// AddCourierStorage handles POST /api/v1/couriers/:id/storage.
func (s *Server) AddCourierStorage(ctx echo.Context) error {
	courierID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "invalid courier id")
	}

	var body NewStorageRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewAddCourierStorageCommand(courierID, body.Name, body.TotalVolume)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.addCourierStorageHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "courier not found")
		}
		return internalError(ctx, "failed to add storage place")
	}

	return ctx.NoContent(http.StatusCreated)
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "invalid request body")
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), body.Street, body.Volume)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return notFound(ctx, "street not found")
		}
		return internalError(ctx, "failed to create order")
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetCouriers handles GET /api/v1/couriers.
func (s *Server) GetCouriers(ctx echo.Context) error {
	query := queries.NewGetAllCouriersQuery()

	couriers, err := s.getAllCouriersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve couriers")
	}

	response := make([]CourierResponse, len(couriers))
	for i, courier := range couriers {
		response[i] = CourierResponse{
			ID:   courier.ID.String(),
			Name: courier.Name,
			Location: LocationResponse{
				X: int(courier.Location.X()),
				Y: int(courier.Location.Y()),
			},
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrders handles GET /api/v1/orders/active.
func (s *Server) GetOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "failed to retrieve orders")
	}

	response := make([]OrderResponse, len(orders))
	for i, order := range orders {
		response[i] = OrderResponse{
			ID: order.ID.String(),
			Location: LocationResponse{
				X: int(order.Location.X()),
				Y: int(order.Location.Y()),
			},
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{Code: http.StatusBadRequest, Message: message})
}

func notFound(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusNotFound, ErrorResponse{Code: http.StatusNotFound, Message: message})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{Code: http.StatusInternalServerError, Message: message})
}
