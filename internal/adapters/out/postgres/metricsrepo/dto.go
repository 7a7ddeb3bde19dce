// Package metricsrepo provides data transfer objects and mapping functions for
// order metrics persistence. Metrics records are append-only: the repository
// writes them once and serves windowed reads and aggregates.
package metricsrepo

import (
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/metrics"

	"github.com/google/uuid"
)

// MetricDTO represents the database structure for persisting metrics records.
type MetricDTO struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID                uuid.UUID `gorm:"type:uuid;index"`
	RestaurantID           uuid.UUID `gorm:"type:uuid;index"`
	ProcessedAt            time.Time `gorm:"index"`
	PreparationMinutes     int
	QueueWaitMinutes       int
	TotalProcessingMinutes int
	KitchenLoadPercent     float64
	StaffCount             int
	OrderComplexity        float64
}

// TableName specifies the database table name for metrics records.
func (MetricDTO) TableName() string {
	return "order_metrics"
}

// fromDomain converts a metrics record to its database representation.
func fromDomain(record *metrics.Metric) MetricDTO {
	return MetricDTO{
		ID:                     record.ID().Bytes(),
		OrderID:                record.OrderID().Bytes(),
		RestaurantID:           record.RestaurantID().Bytes(),
		ProcessedAt:            record.ProcessedAt(),
		PreparationMinutes:     record.PreparationMinutes(),
		QueueWaitMinutes:       record.QueueWaitMinutes(),
		TotalProcessingMinutes: record.TotalProcessingMinutes(),
		KitchenLoadPercent:     record.KitchenLoadPercent(),
		StaffCount:             record.StaffCount(),
		OrderComplexity:        record.OrderComplexity(),
	}
}

// toDomain converts a database DTO to a metrics record.
func toDomain(dto MetricDTO) (*metrics.Metric, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	return metrics.RestoreMetric(
		id,
		orderID,
		restaurantID,
		dto.ProcessedAt,
		dto.PreparationMinutes,
		dto.QueueWaitMinutes,
		dto.TotalProcessingMinutes,
		dto.KitchenLoadPercent,
		dto.StaffCount,
		dto.OrderComplexity,
	), nil
}
