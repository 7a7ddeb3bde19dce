package metricsrepo

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/metrics"

	"gorm.io/gorm"
)

// GormMetricsRepository implements MetricsRepository using GORM.
type GormMetricsRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormMetricsRepository creates a new GORM metrics repository.
func NewGormMetricsRepository(db *gorm.DB, tracker aggregateTracker) *GormMetricsRepository {
	return &GormMetricsRepository{
		db:      db,
		tracker: tracker,
	}
}

// Append saves a new metrics record to the database. Records are immutable,
// so there is no corresponding update operation.
func (r *GormMetricsRepository) Append(ctx context.Context, record *metrics.Metric) error {
	dto := fromDomain(record)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(record.ID(), record)
	return nil
}

// GetByRestaurant retrieves all metrics records for a restaurant whose
// processing time falls within the [from, to] window, oldest first.
func (r *GormMetricsRepository) GetByRestaurant(ctx context.Context, restaurantID kernel.UUID, from, to time.Time) ([]*metrics.Metric, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []MetricDTO
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND processed_at BETWEEN ? AND ?", restaurantID.Bytes(), from, to).
		Order("processed_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	records := make([]*metrics.Metric, 0, len(dtos))
	for _, dto := range dtos {
		record, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// AverageProcessingMinutes computes the mean total processing time across all
// completed orders for a restaurant. Records for orders still in progress
// carry a zero total and are excluded. Returns 0 when no completed orders
// have been recorded yet.
func (r *GormMetricsRepository) AverageProcessingMinutes(ctx context.Context, restaurantID kernel.UUID) (float64, error) {
	if err := restaurantID.Validate(); err != nil {
		return 0, err
	}

	var average float64
	if err := r.db.WithContext(ctx).
		Model(&MetricDTO{}).
		Select("COALESCE(AVG(total_processing_minutes), 0)").
		Where("restaurant_id = ? AND total_processing_minutes > 0", restaurantID.Bytes()).
		Scan(&average).Error; err != nil {
		return 0, err
	}

	return average, nil
}
