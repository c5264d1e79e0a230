package inventory

import (
	"strings"

	"github.com/erp/erpcore/internal/domain/shared"
	"github.com/google/uuid"
)

// MovementType is the kind of stock movement
type MovementType string

const (
	MovementTypeIn         MovementType = "IN"
	MovementTypeOut        MovementType = "OUT"
	MovementTypeAdjustment MovementType = "ADJUSTMENT"
)

// IsValid checks if the type is a known MovementType
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment:
		return true
	}
	return false
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// Movement is an append-only stock change. An ADJUSTMENT sets the stock to
// Quantity (a physical count); IN and OUT add and remove it. Quantity is
// always positive, so an empty shelf is recorded with an OUT of the
// remaining units.
type Movement struct {
	shared.BaseEntity
	Type        MovementType
	Quantity    int
	Reason      string
	Reference   string
	ProductID   uuid.UUID
	CreatedBy   *uuid.UUID
	StockBefore int
	StockAfter  int
}

// NewMovement creates a movement for productID
func NewMovement(productID uuid.UUID, movementType MovementType, quantity int, reason string) (*Movement, error) {
	reason = strings.TrimSpace(reason)

	var v shared.ValidationErrors
	v.Check(productID != uuid.Nil, "productId", "Product is required")
	v.Check(movementType.IsValid(), "type", "Type must be IN, OUT or ADJUSTMENT")
	v.Check(quantity > 0, "quantity", "Quantity must be greater than 0")
	v.Check(reason != "", "reason", "Reason is required")
	v.Check(len(reason) <= 500, "reason", "Reason cannot exceed 500 characters")
	if err := v.Err(); err != nil {
		return nil, err
	}

	return &Movement{
		BaseEntity: shared.NewBaseEntity(),
		Type:       movementType,
		Quantity:   quantity,
		Reason:     reason,
		ProductID:  productID,
	}, nil
}

// WithReference sets an external document reference
func (m *Movement) WithReference(reference string) *Movement {
	m.Reference = strings.TrimSpace(reference)
	return m
}

// RecordedBy sets the user who registered the movement
func (m *Movement) RecordedBy(userID uuid.UUID) *Movement {
	if userID != uuid.Nil {
		id := userID
		m.CreatedBy = &id
	}
	return m
}
