// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by restaurant and status.
type OrderDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	// Order numbers are display identifiers and carry no uniqueness
	// guarantee, so the index is non-unique.
	Number               string    `gorm:"index"`
	RestaurantID         uuid.UUID `gorm:"type:uuid;index"`
	OrderType            int
	Priority             int
	Items                []ItemDTO `gorm:"serializer:json;type:jsonb"`
	Status               int       `gorm:"index"`
	EstimatedPrepMinutes int
	ActualPrepMinutes    *int
	CreatedAt            time.Time
	UpdatedAt            time.Time
	CompletedAt          *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one line item inside the order's JSONB items column.
type ItemDTO struct {
	Name                string   `json:"name"`
	Quantity            int      `json:"quantity"`
	Modifiers           []string `json:"modifiers,omitempty"`
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			Name:                item.Name(),
			Quantity:            item.Quantity(),
			Modifiers:           item.Modifiers(),
			SpecialInstructions: item.SpecialInstructions(),
		})
	}

	return OrderDTO{
		ID:                   aggregate.ID().Bytes(),
		Number:               aggregate.Number(),
		RestaurantID:         aggregate.RestaurantID().Bytes(),
		OrderType:            int(aggregate.OrderType()),
		Priority:             int(aggregate.Priority()),
		Items:                itemDTOs,
		Status:               int(aggregate.Status()),
		EstimatedPrepMinutes: aggregate.EstimatedPrepMinutes(),
		ActualPrepMinutes:    aggregate.ActualPrepMinutes(),
		CreatedAt:            aggregate.CreatedAt(),
		UpdatedAt:            aggregate.UpdatedAt(),
		CompletedAt:          aggregate.CompletedAt(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := order.NewItem(
			itemDTO.Name,
			itemDTO.Quantity,
			itemDTO.Modifiers,
			itemDTO.SpecialInstructions,
		)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		restaurantID,
		order.Type(dto.OrderType),
		order.Priority(dto.Priority),
		items,
		order.Status(dto.Status),
		dto.EstimatedPrepMinutes,
		dto.ActualPrepMinutes,
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.CompletedAt,
	)
}
