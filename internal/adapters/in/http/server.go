// Package http is the inbound HTTP adapter: a thin echo layer that parses
// requests, dispatches to command and query handlers, and maps domain errors
// to status codes. No business rules live here.
package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/inventory"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	addToCartHandler       commands.AddToCartCommandHandler
	removeFromCartHandler  commands.RemoveFromCartCommandHandler
	clearCartHandler       commands.ClearCartCommandHandler
	mergeCartHandler       commands.MergeCartCommandHandler
	createOrderHandler     commands.CreateOrderCommandHandler
	transitionOrderHandler commands.TransitionOrderCommandHandler

	// Query handlers
	getCartHandler              queries.GetCartQueryHandler
	checkAvailabilityHandler    queries.CheckAvailabilityQueryHandler
	getCancellableOrdersHandler queries.GetCancellableOrdersQueryHandler
	getRefundableOrdersHandler  queries.GetRefundableOrdersQueryHandler
	getAttentionOrdersHandler   queries.GetAttentionOrdersQueryHandler

	attentionCutoff time.Duration
}

// NewServer creates an HTTP server with the required command and query
// handlers. attentionCutoff is the default age for the attention endpoint.
func NewServer(
	addToCartHandler commands.AddToCartCommandHandler,
	removeFromCartHandler commands.RemoveFromCartCommandHandler,
	clearCartHandler commands.ClearCartCommandHandler,
	mergeCartHandler commands.MergeCartCommandHandler,
	createOrderHandler commands.CreateOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	getCartHandler queries.GetCartQueryHandler,
	checkAvailabilityHandler queries.CheckAvailabilityQueryHandler,
	getCancellableOrdersHandler queries.GetCancellableOrdersQueryHandler,
	getRefundableOrdersHandler queries.GetRefundableOrdersQueryHandler,
	getAttentionOrdersHandler queries.GetAttentionOrdersQueryHandler,
	attentionCutoff time.Duration,
) *Server {
	return &Server{
		addToCartHandler:            addToCartHandler,
		removeFromCartHandler:       removeFromCartHandler,
		clearCartHandler:            clearCartHandler,
		mergeCartHandler:            mergeCartHandler,
		createOrderHandler:          createOrderHandler,
		transitionOrderHandler:      transitionOrderHandler,
		getCartHandler:              getCartHandler,
		checkAvailabilityHandler:    checkAvailabilityHandler,
		getCancellableOrdersHandler: getCancellableOrdersHandler,
		getRefundableOrdersHandler:  getRefundableOrdersHandler,
		getAttentionOrdersHandler:   getAttentionOrdersHandler,
		attentionCutoff:             attentionCutoff,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/cart/items", s.AddToCart)
	api.DELETE("/cart/items/:productId", s.RemoveFromCart)
	api.DELETE("/cart", s.ClearCart)
	api.POST("/cart/merge", s.MergeCart)
	api.GET("/cart", s.GetCart)
	api.GET("/availability", s.CheckAvailability)
	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/transition", s.TransitionOrder)
	api.GET("/orders/attention", s.GetAttentionOrders)
	api.GET("/orders/cancellable", s.GetCancellableOrders)
	api.GET("/orders/refundable", s.GetRefundableOrders)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ownerRequest struct {
	UserID     string `json:"user_id" query:"user_id"`
	GuestToken string `json:"guest_token" query:"guest_token"`
}

// owner resolves the cart owner from a request: user_id wins when both are
// present, guest_token otherwise.
func (r ownerRequest) owner() (kernel.Owner, error) {
	if r.UserID != "" {
		userID, err := kernel.UUIDFromString(r.UserID)
		if err != nil {
			return kernel.Owner{}, err
		}
		return kernel.NewUserOwner(userID)
	}
	return kernel.NewGuestOwner(r.GuestToken)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type addToCartRequest struct {
	ownerRequest
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// AddToCart handles POST /api/v1/cart/items.
func (s *Server) AddToCart(ctx echo.Context) error {
	var req addToCartRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	owner, err := req.owner()
	if err != nil {
		return badRequest(ctx, "Invalid cart owner: "+err.Error())
	}

	productID, err := kernel.UUIDFromString(req.ProductID)
	if err != nil {
		return badRequest(ctx, "Invalid product ID")
	}

	cmd, err := commands.NewAddToCartCommand(owner, productID, req.Quantity)
	if err != nil {
		return badRequest(ctx, "Invalid cart data: "+err.Error())
	}

	if handleErr := s.addToCartHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusCreated)
}

// RemoveFromCart handles DELETE /api/v1/cart/items/:productId.
func (s *Server) RemoveFromCart(ctx echo.Context) error {
	var req ownerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request")
	}

	owner, err := req.owner()
	if err != nil {
		return badRequest(ctx, "Invalid cart owner: "+err.Error())
	}

	productID, err := kernel.UUIDFromString(ctx.Param("productId"))
	if err != nil {
		return badRequest(ctx, "Invalid product ID")
	}

	cmd, err := commands.NewRemoveFromCartCommand(owner, productID)
	if err != nil {
		return badRequest(ctx, "Invalid cart data: "+err.Error())
	}

	if handleErr := s.removeFromCartHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(ctx echo.Context) error {
	var req ownerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request")
	}

	owner, err := req.owner()
	if err != nil {
		return badRequest(ctx, "Invalid cart owner: "+err.Error())
	}

	cmd, err := commands.NewClearCartCommand(owner)
	if err != nil {
		return badRequest(ctx, "Invalid cart data: "+err.Error())
	}

	if handleErr := s.clearCartHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type mergeCartRequest struct {
	GuestToken string `json:"guest_token"`
	UserID     string `json:"user_id"`
}

// MergeCart handles POST /api/v1/cart/merge.
func (s *Server) MergeCart(ctx echo.Context) error {
	var req mergeCartRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user ID")
	}

	cmd, err := commands.NewMergeCartCommand(req.GuestToken, userID)
	if err != nil {
		return badRequest(ctx, "Invalid merge data: "+err.Error())
	}

	if handleErr := s.mergeCartHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return domainError(ctx, handleErr)
	}

	return ctx.NoContent(http.StatusNoContent)
}

type cartLineResponse struct {
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

type cartResponse struct {
	Lines         []cartLineResponse `json:"lines"`
	TotalQuantity int                `json:"total_quantity"`
}

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(ctx echo.Context) error {
	var req ownerRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request")
	}

	owner, err := req.owner()
	if err != nil {
		return badRequest(ctx, "Invalid cart owner: "+err.Error())
	}

	query, err := queries.NewGetCartQuery(owner)
	if err != nil {
		return badRequest(ctx, "Invalid cart query: "+err.Error())
	}

	cart, err := s.getCartHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := cartResponse{
		Lines:         make([]cartLineResponse, len(cart.Lines)),
		TotalQuantity: cart.TotalQuantity,
	}
	for i, line := range cart.Lines {
		response.Lines[i] = cartLineResponse{
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
			AddedAt:   line.AddedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type availabilityResponse struct {
	ProductID         string `json:"product_id"`
	Requested         int    `json:"requested"`
	QuantityAvailable int    `json:"quantity_available"`
	IsAvailable       bool   `json:"is_available"`
}

// CheckAvailability handles GET /api/v1/availability.
func (s *Server) CheckAvailability(ctx echo.Context) error {
	productID, err := kernel.UUIDFromString(ctx.QueryParam("product_id"))
	if err != nil {
		return badRequest(ctx, "Invalid product ID")
	}

	quantity, err := strconv.Atoi(ctx.QueryParam("quantity"))
	if err != nil {
		return badRequest(ctx, "Invalid quantity")
	}

	query, err := queries.NewCheckAvailabilityQuery(productID, quantity)
	if err != nil {
		return badRequest(ctx, "Invalid availability query: "+err.Error())
	}

	result, err := s.checkAvailabilityHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, availabilityResponse{
		ProductID:         result.ProductID.String(),
		Requested:         result.Requested,
		QuantityAvailable: result.QuantityAvailable,
		IsAvailable:       result.IsAvailable,
	})
}

type createOrderRequest struct {
	UserID string `json:"user_id"`
}

type orderResponse struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
}

// CreateOrder handles POST /api/v1/orders - checkout.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req createOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	userID, err := kernel.UUIDFromString(req.UserID)
	if err != nil {
		return badRequest(ctx, "Invalid user ID")
	}

	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), userID)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponse{
		ID:          created.ID().String(),
		OrderNumber: created.OrderNumber(),
		Status:      created.Status().String(),
	})
}

type transitionOrderRequest struct {
	TargetStatus string `json:"target_status"`
	Actor        string `json:"actor"`
	Reason       string `json:"reason"`
}

// TransitionOrder handles POST /api/v1/orders/:id/transition.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	var req transitionOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID")
	}

	targetStatus, ok := statusFromString(req.TargetStatus)
	if !ok {
		return badRequest(ctx, "Unknown target status: "+req.TargetStatus)
	}

	cmd, err := commands.NewTransitionOrderCommand(orderID, targetStatus, req.Actor, req.Reason)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	updated, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderResponse{
		ID:          updated.ID().String(),
		OrderNumber: updated.OrderNumber(),
		Status:      updated.Status().String(),
	})
}

type attentionOrderResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// GetAttentionOrders handles GET /api/v1/orders/attention. An optional
// older_than query parameter (Go duration syntax) overrides the configured
// cutoff.
func (s *Server) GetAttentionOrders(ctx echo.Context) error {
	cutoff := s.attentionCutoff
	if raw := ctx.QueryParam("older_than"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return badRequest(ctx, "Invalid older_than duration")
		}
		cutoff = parsed
	}

	query, err := queries.NewGetAttentionOrdersQuery(cutoff)
	if err != nil {
		return badRequest(ctx, "Invalid attention query: "+err.Error())
	}

	stuck, err := s.getAttentionOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]attentionOrderResponse, len(stuck))
	for i, o := range stuck {
		response[i] = attentionOrderResponse{
			ID:          o.ID.String(),
			OrderNumber: o.OrderNumber,
			Status:      o.Status.String(),
			UpdatedAt:   o.UpdatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

type orderSummaryResponse struct {
	ID          string    `json:"id"`
	OrderNumber string    `json:"order_number"`
	CreatedAt   time.Time `json:"created_at"`
}

// GetCancellableOrders handles GET /api/v1/orders/cancellable.
func (s *Server) GetCancellableOrders(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.QueryParam("user_id"))
	if err != nil {
		return badRequest(ctx, "Invalid user ID")
	}

	query, err := queries.NewGetCancellableOrdersQuery(userID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	orders, err := s.getCancellableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]orderSummaryResponse, len(orders))
	for i, o := range orders {
		response[i] = orderSummaryResponse{
			ID:          o.ID.String(),
			OrderNumber: o.OrderNumber,
			CreatedAt:   o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetRefundableOrders handles GET /api/v1/orders/refundable.
func (s *Server) GetRefundableOrders(ctx echo.Context) error {
	userID, err := kernel.UUIDFromString(ctx.QueryParam("user_id"))
	if err != nil {
		return badRequest(ctx, "Invalid user ID")
	}

	query, err := queries.NewGetRefundableOrdersQuery(userID)
	if err != nil {
		return badRequest(ctx, "Invalid query: "+err.Error())
	}

	orders, err := s.getRefundableOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return domainError(ctx, err)
	}

	response := make([]orderSummaryResponse, len(orders))
	for i, o := range orders {
		response[i] = orderSummaryResponse{
			ID:          o.ID.String(),
			OrderNumber: o.OrderNumber,
			CreatedAt:   o.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

func statusFromString(raw string) (order.Status, bool) {
	statuses := []order.Status{
		order.StatusPending,
		order.StatusConfirmed,
		order.StatusProcessing,
		order.StatusShipped,
		order.StatusDelivered,
		order.StatusCancelled,
		order.StatusRefunded,
	}
	for _, status := range statuses {
		if status.String() == raw {
			return status, true
		}
	}
	return order.StatusUnknown, false
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// domainError maps core errors to HTTP status codes: not-found to 404,
// rejected transitions and stock or version conflicts to 409, empty cart to
// 422, validation failures to 400, everything else to 500.
func domainError(ctx echo.Context, err error) error {
	var code int
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		code = http.StatusNotFound
	case errors.Is(err, inventory.ErrInsufficientStock),
		errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, errs.ErrVersionIsInvalid),
		errors.Is(err, commands.ErrMergeFailed):
		code = http.StatusConflict
	case errors.Is(err, commands.ErrEmptyCart):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		code = http.StatusBadRequest
	default:
		code = http.StatusInternalServerError
	}

	return ctx.JSON(code, errorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
