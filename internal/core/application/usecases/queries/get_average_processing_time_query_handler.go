package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetAverageProcessingTimeQueryHandler computes the restaurant's mean
// processing time from recorded metrics.
type GetAverageProcessingTimeQueryHandler struct {
	db *gorm.DB
}

// NewGetAverageProcessingTimeQueryHandler creates a handler for average
// processing time queries.
func NewGetAverageProcessingTimeQueryHandler(db *gorm.DB) GetAverageProcessingTimeQueryHandler {
	return GetAverageProcessingTimeQueryHandler{db: db}
}

// Handle executes the query.
//
// Only records with a measured total (completed orders) participate in the
// average; a restaurant without completed orders averages to zero.
func (h GetAverageProcessingTimeQueryHandler) Handle(
	ctx context.Context,
	query GetAverageProcessingTimeQuery,
) (float64, error) {
	if err := query.Validate(); err != nil {
		return 0, err
	}

	var average float64
	err := h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(AVG(total_processing_minutes), 0)
		FROM order_metrics
		WHERE restaurant_id = ?
		  AND total_processing_minutes > 0
	`, query.RestaurantID().Bytes()).Scan(&average).Error
	if err != nil {
		return 0, err
	}

	return average, nil
}
