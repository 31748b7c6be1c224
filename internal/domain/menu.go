package domain

import (
	"time"

	"github.com/google/uuid"
)

// MenuItem carries two stock counters: initial_stock is historical and
// immutable after creation, current_stock is mutated only by the stock
// ledger's conditional decrement and never goes negative.
type MenuItem struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Price        float64   `json:"price"`
	Images       []string  `json:"images"`
	Vegetarian   bool      `json:"vegetarian"`
	Allergens    []string  `json:"allergens"`
	Ingredients  []string  `json:"ingredients"`
	Category     string    `json:"category"`
	InitialStock int       `json:"initialStock"`
	CurrentStock int       `json:"currentStock"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// StockDecrement is the result of a conditional decrement. When the
// precondition fails, Name and Remaining describe the item at failure
// time so callers can build a precise error without a second read;
// both are zero when the item does not exist at all.
type StockDecrement struct {
	MenuItemID uuid.UUID
	Applied    bool
	Name       string
	Remaining  int
}
