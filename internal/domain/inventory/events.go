package inventory

import (
	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	AggregateTypeProduct = "Product"

	EventTypeMovementRecorded = "inventory.movement.recorded"
)

// MovementRecordedEvent is raised after a movement changed a product's stock
type MovementRecordedEvent struct {
	shared.BaseDomainEvent
	ProductID    uuid.UUID    `json:"product_id"`
	MovementID   uuid.UUID    `json:"movement_id"`
	MovementType MovementType `json:"movement_type"`
	Quantity     int          `json:"quantity"`
	StockBefore  int          `json:"stock_before"`
	StockAfter   int          `json:"stock_after"`
	Status       StockStatus  `json:"status"`
}

// NewMovementRecordedEvent creates a new MovementRecordedEvent
func NewMovementRecordedEvent(p *Product, m *Movement) *MovementRecordedEvent {
	return &MovementRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMovementRecorded, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		MovementID:      m.ID,
		MovementType:    m.Type,
		Quantity:        m.Quantity,
		StockBefore:     m.StockBefore,
		StockAfter:      m.StockAfter,
		Status:          p.StockStatus(),
	}
}
