package domain

import "encoding/json"

// CartItem is one entry of a submitted cart: unique by menuItemId,
// discarded after the order is placed. Price and Quantity are pointers
// so that absent fields are distinguishable from zero values.
type CartItem struct {
	MenuItemID      string   `json:"menuItemId"`
	Name            string   `json:"name"`
	Price           *float64 `json:"price"`
	Quantity        *int     `json:"quantity"`
	Image           string   `json:"image,omitempty"`
	OverriddenPrice *float64 `json:"overriddenPrice,omitempty"`
}

// PlaceOrderRequest is the POST /orders body. TotalAmount is computed
// by the caller and stored verbatim; it is not recomputed from items.
type PlaceOrderRequest struct {
	Items         []CartItem `json:"items"`
	CustomerName  string     `json:"customerName"`
	CustomerPhone string     `json:"customerPhone"`
	TotalAmount   *float64   `json:"totalAmount"`
}

// UpdateOrderRequest is the PATCH /orders/{orderId} body. AssignedTo
// must distinguish "absent" from an explicit null (which unassigns),
// hence OptionalString instead of a plain pointer.
type UpdateOrderRequest struct {
	Status     *string        `json:"status"`
	AssignedTo OptionalString `json:"assignedTo"`
}

// OptionalString is a presence-aware nullable string. Set reports
// whether the field appeared in the payload at all; Value is nil for an
// explicit JSON null.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
