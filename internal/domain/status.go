package domain

import "strings"

// OrderStatus is stored as a plain string restricted to this set at the
// write layer. The kitchen UI drives the forward progression
// Confirmed -> InProgress -> Ready -> Delivered one step at a time;
// the update operation itself accepts any value from the set.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusConfirmed  OrderStatus = "Confirmed"
	StatusInProgress OrderStatus = "InProgress"
	StatusReady      OrderStatus = "Ready"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
	StatusRefunded   OrderStatus = "Refunded"
)

var AllStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusReady,
	StatusDelivered,
	StatusCancelled,
	StatusRefunded,
}

func (s OrderStatus) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// AllowedStatusList renders the status set for error messages.
func AllowedStatusList() string {
	parts := make([]string, len(AllStatuses))
	for i, s := range AllStatuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
