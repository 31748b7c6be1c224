package domain

import (
	"time"

	"github.com/google/uuid"
)

// Order is created once (already Confirmed) and then mutated in place
// through status/assignment updates. Orders are never deleted;
// cancellation and refunds are statuses.
type Order struct {
	ID              uuid.UUID   `json:"id"`
	CustomerName    *string     `json:"customerName,omitempty"`
	CustomerPhone   *string     `json:"customerPhone,omitempty"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          OrderStatus `json:"status"`
	AssignedTo      *string     `json:"assignedTo"`
	PaymentReceived bool        `json:"paymentReceived"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// OrderItem is a line-item snapshot taken at order-creation time. The
// denormalized name and prices are never re-synced from the menu; the
// order is a historical record.
type OrderItem struct {
	MenuItemID             uuid.UUID `json:"menuItemId"`
	Name                   string    `json:"name"`
	Quantity               int       `json:"quantity"`
	PricePerItem           float64   `json:"pricePerItem"`
	OverriddenPricePerItem *float64  `json:"overriddenPricePerItem,omitempty"`
}

// OrderPatch is a partial update applied to an existing order. Only the
// fields that are present are touched.
type OrderPatch struct {
	Status     *OrderStatus
	AssignedTo OptionalString
}
