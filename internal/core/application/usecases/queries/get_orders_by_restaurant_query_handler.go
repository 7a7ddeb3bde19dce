package queries

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrdersByRestaurantQueryHandler lists a restaurant's orders from the
// database, newest first.
type GetOrdersByRestaurantQueryHandler struct {
	db *gorm.DB
}

// NewGetOrdersByRestaurantQueryHandler creates a handler for restaurant
// order listings.
func NewGetOrdersByRestaurantQueryHandler(db *gorm.DB) GetOrdersByRestaurantQueryHandler {
	return GetOrdersByRestaurantQueryHandler{db: db}
}

// Handle executes the query.
func (h GetOrdersByRestaurantQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByRestaurantQuery,
) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			restaurant_id,
			order_type,
			priority,
			status,
			estimated_prep_minutes
		FROM orders
		WHERE restaurant_id = ?
		ORDER BY created_at DESC
	`, query.RestaurantID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrderViews(rows)
}

// scanOrderViews maps listing rows into OrderView values. Shared by the
// order listing query handlers, which select identical columns.
func scanOrderViews(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
},
) ([]OrderView, error) {
	views := make([]OrderView, 0)

	for rows.Next() {
		var (
			id           uuid.UUID
			restaurantID uuid.UUID
			orderType    int
			priority     int
			status       int
			view         OrderView
		)

		err := rows.Scan(
			&id,
			&view.Number,
			&restaurantID,
			&orderType,
			&priority,
			&status,
			&view.EstimatedPrepMinutes,
		)
		if err != nil {
			return nil, err
		}

		viewID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		viewRestaurantID, idErr := kernel.UUIDFromBytes(restaurantID[:])
		if idErr != nil {
			return nil, idErr
		}

		view.ID = viewID
		view.RestaurantID = viewRestaurantID
		view.OrderType = order.Type(orderType).String()
		view.Priority = order.Priority(priority).String()
		view.Status = order.Status(status).String()
		views = append(views, view)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
