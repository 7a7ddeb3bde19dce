package queries

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderMetricsQueryHandler retrieves metrics records from the database.
type GetOrderMetricsQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderMetricsQueryHandler creates a handler for metrics window queries.
// Requires a GORM database connection for query execution.
func NewGetOrderMetricsQueryHandler(db *gorm.DB) GetOrderMetricsQueryHandler {
	return GetOrderMetricsQueryHandler{db: db}
}

// Handle executes the query and returns the restaurant's records inside
// the window, oldest first.
func (h GetOrderMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderMetricsQuery,
) ([]GetOrderMetricsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	records := make([]GetOrderMetricsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			processed_at,
			preparation_minutes,
			queue_wait_minutes,
			total_processing_minutes,
			kitchen_load_percent,
			staff_count,
			order_complexity
		FROM order_metrics
		WHERE restaurant_id = ?
		  AND processed_at BETWEEN ? AND ?
		ORDER BY processed_at
	`, query.RestaurantID().Bytes(), query.From(), query.To()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			orderID     uuid.UUID
			processedAt time.Time
			record      GetOrderMetricsQueryResponse
		)

		err = rows.Scan(
			&id,
			&orderID,
			&processedAt,
			&record.PreparationMinutes,
			&record.QueueWaitMinutes,
			&record.TotalProcessingMinutes,
			&record.KitchenLoadPercent,
			&record.StaffCount,
			&record.OrderComplexity,
		)
		if err != nil {
			return nil, err
		}

		recordID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		recordOrderID, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		record.ID = recordID
		record.OrderID = recordOrderID
		record.ProcessedAt = processedAt
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
