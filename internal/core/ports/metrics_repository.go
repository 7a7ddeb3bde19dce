// Package ports defines repository and messaging interfaces for the kitchen
// scheduling domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/metrics"
)

// MetricsRepository defines the persistence contract for order metrics
// records. Metrics are append-only: records are written once and queried
// later, never updated.
type MetricsRepository interface {
	// Append persists a new metrics record.
	Append(ctx context.Context, record *metrics.Metric) error

	// GetByRestaurant retrieves the restaurant's records captured inside
	// the given time window, oldest first.
	GetByRestaurant(ctx context.Context, restaurantID kernel.UUID, from, to time.Time) ([]*metrics.Metric, error)

	// AverageProcessingMinutes computes the mean total processing time over
	// the restaurant's completed orders. Returns zero when no completed
	// records exist.
	AverageProcessingMinutes(ctx context.Context, restaurantID kernel.UUID) (float64, error)
}
