// Package http provides the inbound HTTP adapter. It translates REST
// requests into commands and queries, and maps domain errors onto HTTP
// status codes.
package http

import (
	"errors"
	"net/http"
	"time"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/domain/model/batch"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler
	processNextBatchHandler  commands.ProcessNextBatchCommandHandler
	completeBatchHandler     commands.CompleteBatchCommandHandler
	optimizeQueueHandler     commands.OptimizeQueueCommandHandler

	// Query handlers
	getUncompletedOrdersHandler     queries.GetUncompletedOrdersQueryHandler
	getOrdersByRestaurantHandler    queries.GetOrdersByRestaurantQueryHandler
	getOrdersByStatusHandler        queries.GetOrdersByStatusQueryHandler
	getOrderQueueHandler            queries.GetOrderQueueQueryHandler
	getQueueStatusHandler           queries.GetQueueStatusQueryHandler
	getOrderMetricsHandler          queries.GetOrderMetricsQueryHandler
	getAverageProcessingTimeHandler queries.GetAverageProcessingTimeQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	updateOrderStatusHandler commands.UpdateOrderStatusCommandHandler,
	processNextBatchHandler commands.ProcessNextBatchCommandHandler,
	completeBatchHandler commands.CompleteBatchCommandHandler,
	optimizeQueueHandler commands.OptimizeQueueCommandHandler,
	getUncompletedOrdersHandler queries.GetUncompletedOrdersQueryHandler,
	getOrdersByRestaurantHandler queries.GetOrdersByRestaurantQueryHandler,
	getOrdersByStatusHandler queries.GetOrdersByStatusQueryHandler,
	getOrderQueueHandler queries.GetOrderQueueQueryHandler,
	getQueueStatusHandler queries.GetQueueStatusQueryHandler,
	getOrderMetricsHandler queries.GetOrderMetricsQueryHandler,
	getAverageProcessingTimeHandler queries.GetAverageProcessingTimeQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:              createOrderHandler,
		updateOrderStatusHandler:        updateOrderStatusHandler,
		processNextBatchHandler:         processNextBatchHandler,
		completeBatchHandler:            completeBatchHandler,
		optimizeQueueHandler:            optimizeQueueHandler,
		getUncompletedOrdersHandler:     getUncompletedOrdersHandler,
		getOrdersByRestaurantHandler:    getOrdersByRestaurantHandler,
		getOrdersByStatusHandler:        getOrdersByStatusHandler,
		getOrderQueueHandler:            getOrderQueueHandler,
		getQueueStatusHandler:           getQueueStatusHandler,
		getOrderMetricsHandler:          getOrderMetricsHandler,
		getAverageProcessingTimeHandler: getAverageProcessingTimeHandler,
	}
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrdersByStatus)
	api.GET("/orders/active", s.GetActiveOrders)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)

	api.GET("/queue", s.GetOrderQueue)

	api.GET("/restaurants/:id/orders", s.GetOrdersByRestaurant)
	api.GET("/restaurants/:id/queue-status", s.GetQueueStatus)
	api.GET("/restaurants/:id/metrics", s.GetOrderMetrics)
	api.GET("/restaurants/:id/metrics/average", s.GetAverageProcessingTime)
	api.POST("/restaurants/:id/batches/next", s.ProcessNextBatch)
	api.POST("/restaurants/:id/queue/optimize", s.OptimizeQueue)

	api.POST("/batches/:id/complete", s.CompleteBatch)

	e.GET("/health", s.Health)
}

// ErrorResponse is the JSON body returned on request failures.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderItem is the request representation of an order line item.
type NewOrderItem struct {
	Name                string   `json:"name"`
	Quantity            int      `json:"quantity"`
	Modifiers           []string `json:"modifiers,omitempty"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
}

// NewOrderRequest is the request body for order intake.
type NewOrderRequest struct {
	RestaurantID         string         `json:"restaurant_id"`
	OrderType            string         `json:"order_type"`
	Priority             string         `json:"priority"`
	Items                []NewOrderItem `json:"items"`
	EstimatedPrepMinutes int            `json:"estimated_prep_minutes"`
}

// OrderResponse is the JSON representation of an order aggregate.
type OrderResponse struct {
	ID                   string     `json:"id"`
	Number               string     `json:"number"`
	RestaurantID         string     `json:"restaurant_id"`
	OrderType            string     `json:"order_type"`
	Priority             string     `json:"priority"`
	Status               string     `json:"status"`
	EstimatedPrepMinutes int        `json:"estimated_prep_minutes"`
	ActualPrepMinutes    *int       `json:"actual_prep_minutes,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	CompletedAt          *time.Time `json:"completed_at,omitempty"`
}

// BatchResponse is the JSON representation of an order batch.
type BatchResponse struct {
	ID               string   `json:"id"`
	RestaurantID     string   `json:"restaurant_id"`
	Status           string   `json:"status"`
	Priority         int      `json:"priority"`
	EstimatedMinutes int      `json:"estimated_minutes"`
	OrderIDs         []string `json:"order_ids"`
	AssignedStaff    []string `json:"assigned_staff,omitempty"`
}

// CreateOrder handles POST /api/v1/orders - places a new order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var request NewOrderRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	restaurantID, err := kernel.UUIDFromString(request.RestaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}

	orderType, err := order.TypeFromString(request.OrderType)
	if err != nil {
		return badRequest(ctx, "Invalid order type: "+err.Error())
	}

	priority := order.Normal
	if request.Priority != "" {
		priority, err = order.PriorityFromString(request.Priority)
		if err != nil {
			return badRequest(ctx, "Invalid priority: "+err.Error())
		}
	}

	items := make([]order.Item, 0, len(request.Items))
	for _, requestItem := range request.Items {
		item, itemErr := order.NewItem(
			requestItem.Name,
			requestItem.Quantity,
			requestItem.Modifiers,
			requestItem.SpecialInstructions,
		)
		if itemErr != nil {
			return badRequest(ctx, "Invalid item: "+itemErr.Error())
		}
		items = append(items, item)
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(),
		restaurantID,
		orderType,
		priority,
		items,
		request.EstimatedPrepMinutes,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// UpdateOrderStatusRequest is the request body for status updates.
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var request UpdateOrderStatusRequest
	if err := ctx.Bind(&request); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	status, err := parseStatusLabel(request.Status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	cmd, err := commands.NewUpdateOrderStatusCommand(orderID, status)
	if err != nil {
		return badRequest(ctx, "Invalid status update: "+err.Error())
	}

	updated, err := s.updateOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to update order status")
	}

	return ctx.JSON(http.StatusOK, orderToResponse(updated))
}

// GetActiveOrders handles GET /api/v1/orders/active - retrieves all uncompleted orders.
func (s *Server) GetActiveOrders(ctx echo.Context) error {
	query := queries.NewGetUncompletedOrdersQuery()

	orders, err := s.getUncompletedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	type activeOrder struct {
		ID           string `json:"id"`
		Number       string `json:"number"`
		RestaurantID string `json:"restaurant_id"`
		Status       string `json:"status"`
		Priority     string `json:"priority"`
	}

	response := make([]activeOrder, len(orders))
	for i, o := range orders {
		response[i] = activeOrder{
			ID:           o.ID.String(),
			Number:       o.Number,
			RestaurantID: o.RestaurantID.String(),
			Status:       o.Status,
			Priority:     o.Priority,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrdersByStatus handles GET /api/v1/orders?status=<label>.
func (s *Server) GetOrdersByStatus(ctx echo.Context) error {
	label := ctx.QueryParam("status")
	if label == "" {
		return badRequest(ctx, "Missing status query parameter")
	}

	status, err := parseStatusLabel(label)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	query, err := queries.NewGetOrdersByStatusQuery(status)
	if err != nil {
		return badRequest(ctx, "Invalid status: "+err.Error())
	}

	views, err := s.getOrdersByStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orderViewsToResponse(views))
}

// GetOrdersByRestaurant handles GET /api/v1/restaurants/:id/orders.
func (s *Server) GetOrdersByRestaurant(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}

	query, err := queries.NewGetOrdersByRestaurantQuery(restaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}

	views, err := s.getOrdersByRestaurantHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve orders")
	}

	return ctx.JSON(http.StatusOK, orderViewsToResponse(views))
}

// GetOrderQueue handles GET /api/v1/queue - the current priority queue view.
// An optional restaurant_id query parameter scopes the view to one restaurant.
func (s *Server) GetOrderQueue(ctx echo.Context) error {
	query := queries.NewGetOrderQueueQuery()

	if scope := ctx.QueryParam("restaurant_id"); scope != "" {
		restaurantID, err := kernel.UUIDFromString(scope)
		if err != nil {
			return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
		}
		query, err = queries.NewGetOrderQueueQueryForRestaurant(restaurantID)
		if err != nil {
			return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
		}
	}

	entries, err := s.getOrderQueueHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve queue")
	}

	type queueEntry struct {
		OrderID          string `json:"order_id"`
		RestaurantID     string `json:"restaurant_id"`
		Priority         string `json:"priority"`
		EstimatedMinutes int    `json:"estimated_minutes"`
		StaffRequired    int    `json:"staff_required"`
		WaitMinutes      int    `json:"wait_minutes"`
	}

	response := make([]queueEntry, len(entries))
	for i, entry := range entries {
		response[i] = queueEntry{
			OrderID:          entry.OrderID.String(),
			RestaurantID:     entry.RestaurantID.String(),
			Priority:         entry.Priority,
			EstimatedMinutes: entry.EstimatedMinutes,
			StaffRequired:    entry.StaffRequired,
			WaitMinutes:      entry.WaitMinutes,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetQueueStatus handles GET /api/v1/restaurants/:id/queue-status.
func (s *Server) GetQueueStatus(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}

	query, err := queries.NewGetQueueStatusQuery(restaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}

	snapshot, err := s.getQueueStatusHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve queue status")
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"restaurant_id":          snapshot.RestaurantID.String(),
		"queued_orders":          snapshot.QueuedOrders,
		"queued_batches":         snapshot.QueuedBatches,
		"processing_batches":     snapshot.ProcessingBatches,
		"estimated_wait_minutes": snapshot.EstimatedWaitMinutes,
		"kitchen_load_percent":   snapshot.KitchenLoadPercent,
		"captured_at":            snapshot.CapturedAt,
	})
}

// GetOrderMetrics handles GET /api/v1/restaurants/:id/metrics?from=&to=.
// Timestamps use RFC 3339; the window defaults to the last 24 hours.
func (s *Server) GetOrderMetrics(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}

	to := time.Now()
	from := to.Add(-24 * time.Hour)

	if raw := ctx.QueryParam("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(ctx, "Invalid from timestamp: "+err.Error())
		}
	}
	if raw := ctx.QueryParam("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(ctx, "Invalid to timestamp: "+err.Error())
		}
	}

	query, err := queries.NewGetOrderMetricsQuery(restaurantID, from, to)
	if err != nil {
		return badRequest(ctx, "Invalid metrics window: "+err.Error())
	}

	records, err := s.getOrderMetricsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve metrics")
	}

	type metricRecord struct {
		ID                     string    `json:"id"`
		OrderID                string    `json:"order_id"`
		ProcessedAt            time.Time `json:"processed_at"`
		PreparationMinutes     int       `json:"preparation_minutes"`
		QueueWaitMinutes       int       `json:"queue_wait_minutes"`
		TotalProcessingMinutes int       `json:"total_processing_minutes"`
		KitchenLoadPercent     float64   `json:"kitchen_load_percent"`
		StaffCount             int       `json:"staff_count"`
		OrderComplexity        float64   `json:"order_complexity"`
	}

	response := make([]metricRecord, len(records))
	for i, record := range records {
		response[i] = metricRecord{
			ID:                     record.ID.String(),
			OrderID:                record.OrderID.String(),
			ProcessedAt:            record.ProcessedAt,
			PreparationMinutes:     record.PreparationMinutes,
			QueueWaitMinutes:       record.QueueWaitMinutes,
			TotalProcessingMinutes: record.TotalProcessingMinutes,
			KitchenLoadPercent:     record.KitchenLoadPercent,
			StaffCount:             record.StaffCount,
			OrderComplexity:        record.OrderComplexity,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetAverageProcessingTime handles GET /api/v1/restaurants/:id/metrics/average.
func (s *Server) GetAverageProcessingTime(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}

	query, err := queries.NewGetAverageProcessingTimeQuery(restaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}

	average, err := s.getAverageProcessingTimeHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return internalError(ctx, "Failed to retrieve average processing time")
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"restaurant_id":              restaurantID.String(),
		"average_processing_minutes": average,
	})
}

// ProcessNextBatch handles POST /api/v1/restaurants/:id/batches/next -
// starts processing the highest-priority queued batch.
func (s *Server) ProcessNextBatch(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}

	cmd, err := commands.NewProcessNextBatchCommand(restaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}

	started, err := s.processNextBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, services.ErrNoQueuedBatches) {
			return ctx.JSON(http.StatusConflict, ErrorResponse{
				Code:    http.StatusConflict,
				Message: "No batches waiting for processing",
			})
		}
		return domainError(ctx, err, "Failed to process next batch")
	}

	return ctx.JSON(http.StatusOK, batchToResponse(started))
}

// CompleteBatch handles POST /api/v1/batches/:id/complete.
func (s *Server) CompleteBatch(ctx echo.Context) error {
	batchID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid batch ID: "+err.Error())
	}

	cmd, err := commands.NewCompleteBatchCommand(batchID)
	if err != nil {
		return badRequest(ctx, "Invalid batch ID: "+err.Error())
	}

	completed, err := s.completeBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to complete batch")
	}

	return ctx.JSON(http.StatusOK, batchToResponse(completed))
}

// OptimizeQueue handles POST /api/v1/restaurants/:id/queue/optimize -
// regroups the restaurant's queued orders into optimized batches.
func (s *Server) OptimizeQueue(ctx echo.Context) error {
	restaurantID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}

	cmd, err := commands.NewOptimizeQueueCommand(restaurantID)
	if err != nil {
		return badRequest(ctx, "Invalid restaurant ID: "+err.Error())
	}

	batches, err := s.optimizeQueueHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return domainError(ctx, err, "Failed to optimize queue")
	}

	response := make([]BatchResponse, len(batches))
	for i, b := range batches {
		response[i] = batchToResponse(b)
	}

	return ctx.JSON(http.StatusOK, response)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// parseStatusLabel parses a status label from an external caller.
// The legacy "delivered" label is accepted as an alias for completed.
func parseStatusLabel(label string) (order.Status, error) {
	if label == "delivered" {
		return order.Completed, nil
	}
	return order.StatusFromString(label)
}

func orderToResponse(o *order.Order) OrderResponse {
	return OrderResponse{
		ID:                   o.ID().String(),
		Number:               o.Number(),
		RestaurantID:         o.RestaurantID().String(),
		OrderType:            o.OrderType().String(),
		Priority:             o.Priority().String(),
		Status:               o.Status().String(),
		EstimatedPrepMinutes: o.EstimatedPrepMinutes(),
		ActualPrepMinutes:    o.ActualPrepMinutes(),
		CreatedAt:            o.CreatedAt(),
		CompletedAt:          o.CompletedAt(),
	}
}

func batchToResponse(b *batch.Batch) BatchResponse {
	orderIDs := make([]string, 0, b.Len())
	for _, o := range b.Orders() {
		orderIDs = append(orderIDs, o.ID().String())
	}

	staff := b.AssignedStaff()
	staffIDs := make([]string, 0, len(staff))
	for _, id := range staff {
		staffIDs = append(staffIDs, id.String())
	}

	return BatchResponse{
		ID:               b.ID().String(),
		RestaurantID:     b.RestaurantID().String(),
		Status:           b.Status().String(),
		Priority:         b.Priority(),
		EstimatedMinutes: b.EstimatedMinutes(),
		OrderIDs:         orderIDs,
		AssignedStaff:    staffIDs,
	}
}

func orderViewsToResponse(views []queries.OrderView) []OrderResponse {
	response := make([]OrderResponse, len(views))
	for i, view := range views {
		response[i] = OrderResponse{
			ID:                   view.ID.String(),
			Number:               view.Number,
			RestaurantID:         view.RestaurantID.String(),
			OrderType:            view.OrderType,
			Priority:             view.Priority,
			Status:               view.Status,
			EstimatedPrepMinutes: view.EstimatedPrepMinutes,
		}
	}
	return response
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

func internalError(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
		Code:    http.StatusInternalServerError,
		Message: message,
	})
}

// domainError maps domain error classes onto HTTP status codes.
func domainError(ctx echo.Context, err error, fallback string) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: fallback,
		})
	}
}
